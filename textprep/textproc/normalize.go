package textproc

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Normalizer cleans raw text ahead of vectorization: lowercase, strip every
// character that is neither a word character nor whitespace, drop stopwords,
// rejoin with single spaces. Normalization is idempotent and the normalizer
// holds no mutable state, so concurrent calls are safe.
type Normalizer struct {
	stopwords *StopwordSet
}

// NewNormalizer creates a normalizer over the given stopword set.
// A nil set disables stopword removal.
func NewNormalizer(stopwords *StopwordSet) *Normalizer {
	return &Normalizer{stopwords: stopwords}
}

// Normalize returns the cleaned form of s.
func (n *Normalizer) Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, "")

	fields := strings.Fields(s)
	if n.stopwords != nil {
		fields = n.stopwords.Filter(fields)
	}
	return strings.Join(fields, " ")
}

// Tokens returns the cleaned form of s split into tokens.
func (n *Normalizer) Tokens(s string) []string {
	cleaned := n.Normalize(s)
	if cleaned == "" {
		return nil
	}
	return strings.Fields(cleaned)
}
