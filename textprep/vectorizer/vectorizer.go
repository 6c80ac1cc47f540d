package vectorizer

import (
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/feldspar-ai/textprep/textprep/textproc"
)

// Mode selects the encoding a TextVectorizer produces.
type Mode string

const (
	// ModeOneHot emits a vocabulary-sized 0/1 presence vector.
	ModeOneHot Mode = "onehot"
	// ModeCount emits a vocabulary-sized term-count vector, l2-normalized.
	ModeCount Mode = "count"
	// ModeSequence emits seqLen token indices, zero-padded or truncated.
	ModeSequence Mode = "sequence"
	// ModeWordPiece emits seqLen BERT WordPiece token ids from a vocab file.
	ModeWordPiece Mode = "wordpiece"
)

// ErrEmptyCollection indicates FromCollection received no samples.
var ErrEmptyCollection = errors.New("cannot build vectorizer from empty collection")

// Sample is a single text/label pair the vectorizer learns from.
type Sample struct {
	Text  string
	Label string
}

// TokenizeFunc splits raw text into the tokens vocabularies are built from
// and Vectorize consumes.
type TokenizeFunc func(string) []string

// TextVectorizer converts cleaned text into a fixed-length numeric vector and
// owns the label vocabulary. Read-only after FromCollection, safe for
// concurrent Vectorize calls.
type TextVectorizer struct {
	mode     Mode
	seqLen   int
	vocab    *Vocabulary
	labels   *LabelVocabulary
	tokenize TokenizeFunc
	wp       *wordPieceEncoder
}

type vectorizerOptions struct {
	tokenize       TokenizeFunc
	wordpieceVocab string
}

// Option configures FromCollection.
type Option func(*vectorizerOptions)

// WithTokenizer overrides the tokenize function used for vocabulary building
// and vectorization. The default lowercases and strips punctuation.
func WithTokenizer(fn TokenizeFunc) Option {
	return func(o *vectorizerOptions) { o.tokenize = fn }
}

// WithWordPieceVocab points ModeWordPiece at a BERT vocab.txt file.
func WithWordPieceVocab(path string) Option {
	return func(o *vectorizerOptions) { o.wordpieceVocab = path }
}

// defaultTokenize applies the same lowercasing and punctuation stripping the
// dataset normalizer does (minus stopword removal), so vocabulary entries
// line up with the cleaned text Vectorize receives.
func defaultTokenize(s string) []string {
	return textproc.NewNormalizer(nil).Tokens(s)
}

// FromCollection builds a vectorizer from a record collection: the token
// vocabulary from every tokenized text, the label vocabulary from every label.
// seqLen bounds sequence-style encodings and is ignored by the bag modes.
func FromCollection(samples []Sample, mode Mode, seqLen int, opts ...Option) (*TextVectorizer, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyCollection
	}
	if seqLen <= 0 && (mode == ModeSequence || mode == ModeWordPiece) {
		return nil, fmt.Errorf("mode %q requires a positive sequence length, got %d", mode, seqLen)
	}

	o := vectorizerOptions{tokenize: defaultTokenize}
	for _, opt := range opts {
		opt(&o)
	}

	v := &TextVectorizer{
		mode:     mode,
		seqLen:   seqLen,
		vocab:    NewVocabulary(),
		labels:   NewLabelVocabulary(),
		tokenize: o.tokenize,
	}

	switch mode {
	case ModeOneHot, ModeCount, ModeSequence:
	case ModeWordPiece:
		if o.wordpieceVocab == "" {
			return nil, fmt.Errorf("mode %q requires a wordpiece vocab file", mode)
		}
		wp, err := newWordPieceEncoder(o.wordpieceVocab, seqLen)
		if err != nil {
			return nil, fmt.Errorf("loading wordpiece vocab: %w", err)
		}
		v.wp = wp
	default:
		return nil, fmt.Errorf("unknown vectorizer mode %q", mode)
	}

	for _, s := range samples {
		for _, tok := range v.tokenize(s.Text) {
			v.vocab.Add(tok)
		}
		v.labels.Add(s.Label)
	}

	slog.Debug("Vectorizer built",
		"mode", string(mode),
		"vocab_size", v.vocab.Len(),
		"labels", v.labels.Len(),
		"seq_len", seqLen)

	return v, nil
}

// Mode returns the encoding mode.
func (v *TextVectorizer) Mode() Mode { return v.mode }

// SeqLen returns the configured sequence-length bound.
func (v *TextVectorizer) SeqLen() int { return v.seqLen }

// Vocab returns the token vocabulary.
func (v *TextVectorizer) Vocab() *Vocabulary { return v.vocab }

// Labels returns the label vocabulary.
func (v *TextVectorizer) Labels() *LabelVocabulary { return v.labels }

// Dimensions returns the length of every vector Vectorize produces.
func (v *TextVectorizer) Dimensions() int {
	switch v.mode {
	case ModeSequence, ModeWordPiece:
		return v.seqLen
	default:
		return v.vocab.Len()
	}
}

// Vectorize maps cleaned text to a fixed-length numeric vector of
// Dimensions() entries.
func (v *TextVectorizer) Vectorize(text string) ([]float32, error) {
	switch v.mode {
	case ModeOneHot:
		return v.bag(text, false), nil
	case ModeCount:
		return v.bag(text, true), nil
	case ModeSequence:
		return v.sequence(text), nil
	case ModeWordPiece:
		return v.wp.encode(text)
	default:
		return nil, fmt.Errorf("unknown vectorizer mode %q", v.mode)
	}
}

// bag builds a vocabulary-sized vector; counts are l2-normalized when
// normalize is set, otherwise collapsed to 0/1 presence.
func (v *TextVectorizer) bag(text string, normalize bool) []float32 {
	counts := make([]float64, v.vocab.Len())
	for _, tok := range v.tokenize(text) {
		id, ok := v.vocab.Index(tok)
		if !ok {
			id = v.vocab.UnknownIndex()
		}
		counts[id]++
	}

	if normalize {
		if norm := floats.Norm(counts, 2); norm > 0 {
			floats.Scale(1/norm, counts)
		}
	}

	out := make([]float32, len(counts))
	for i, c := range counts {
		if !normalize && c > 0 {
			out[i] = 1
			continue
		}
		out[i] = float32(c)
	}
	return out
}

// sequence emits token indices padded to seqLen. Out-of-vocabulary tokens are
// decomposed by greedy longest-prefix matching before falling back to UNK.
func (v *TextVectorizer) sequence(text string) []float32 {
	out := make([]float32, v.seqLen)
	pos := 0
	for _, tok := range v.tokenize(text) {
		if pos >= v.seqLen {
			break
		}
		if id, ok := v.vocab.Index(tok); ok {
			out[pos] = float32(id)
			pos++
			continue
		}
		for _, id := range v.vocab.GreedyPieces(tok, 3) {
			if pos >= v.seqLen {
				break
			}
			out[pos] = float32(id)
			pos++
		}
	}
	return out
}
