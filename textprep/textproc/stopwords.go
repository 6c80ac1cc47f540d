package textproc

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrResourceUnavailable indicates the stopword list for the requested
// language could not be loaded from the embedded assets or the filesystem.
var ErrResourceUnavailable = errors.New("stopword resource unavailable")

//go:embed stopwords/*.txt
var stopwordAssets embed.FS

// StopwordSet is an immutable, language-keyed set of lowercase words.
// It is read-only after construction and safe for concurrent use.
type StopwordSet struct {
	language string
	words    map[string]struct{}
}

// LoadStopwords loads the stopword list for a language. This is an explicit
// initialization step: construction of a dataset never triggers it implicitly.
//
// When path is non-empty the list is read from that word-per-line file and
// language is recorded as given. Otherwise the embedded asset for the
// language is used; languages without an embedded asset fail with
// ErrResourceUnavailable.
func LoadStopwords(language, path string) (*StopwordSet, error) {
	if language == "" {
		language = "english"
	}
	language = strings.ToLower(strings.TrimSpace(language))

	var r io.Reader
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrResourceUnavailable, path, err)
		}
		defer f.Close()
		r = f
	} else {
		data, err := stopwordAssets.ReadFile("stopwords/" + language + ".txt")
		if err != nil {
			return nil, fmt.Errorf("%w: no embedded list for language %q", ErrResourceUnavailable, language)
		}
		r = bytes.NewReader(data)
	}

	words := make(map[string]struct{}, 256)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w != "" {
			words[w] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading list for %q: %v", ErrResourceUnavailable, language, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty list for language %q", ErrResourceUnavailable, language)
	}

	slog.Debug("Stopword set loaded", "language", language, "words", len(words), "from_file", path != "")

	return &StopwordSet{language: language, words: words}, nil
}

// Language returns the language the set was loaded for.
func (s *StopwordSet) Language() string { return s.language }

// Len returns the number of words in the set.
func (s *StopwordSet) Len() int { return len(s.words) }

// Contains reports whether the word is a stopword.
func (s *StopwordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Filter removes any token present in the stopword set.
func (s *StopwordSet) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}
