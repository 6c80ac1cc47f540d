package vectorizer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/armon/go-radix"
)

// ErrUnknownLabel indicates a label string is absent from the label vocabulary.
var ErrUnknownLabel = errors.New("label not present in label vocabulary")

// UnknownToken is the reserved out-of-vocabulary token, always at index 0.
const UnknownToken = "<UNK>"

// Vocabulary maps corpus tokens to dense integer indices. A patricia tree
// mirrors the token set so out-of-vocabulary words can be decomposed by
// longest-prefix matching. Read-only after construction.
type Vocabulary struct {
	index  map[string]int64
	tokens []string
	tree   *radix.Tree
}

// NewVocabulary creates a vocabulary seeded with the UnknownToken at index 0.
func NewVocabulary() *Vocabulary {
	v := &Vocabulary{
		index: make(map[string]int64, 1024),
		tree:  radix.New(),
	}
	v.Add(UnknownToken)
	return v
}

// Add inserts a token and returns its index. Re-adding returns the existing index.
func (v *Vocabulary) Add(token string) int64 {
	if id, ok := v.index[token]; ok {
		return id
	}
	id := int64(len(v.tokens))
	v.index[token] = id
	v.tokens = append(v.tokens, token)
	v.tree.Insert(token, id)
	return id
}

// Index returns the token's index and whether the token is known.
func (v *Vocabulary) Index(token string) (int64, bool) {
	id, ok := v.index[token]
	return id, ok
}

// Token returns the token stored at an index.
func (v *Vocabulary) Token(id int64) (string, error) {
	if id < 0 || id >= int64(len(v.tokens)) {
		return "", fmt.Errorf("vocabulary has no token at index %d", id)
	}
	return v.tokens[id], nil
}

// Len returns the vocabulary size, UnknownToken included.
func (v *Vocabulary) Len() int { return len(v.tokens) }

// UnknownIndex returns the index of the UnknownToken.
func (v *Vocabulary) UnknownIndex() int64 { return 0 }

// TokensWithPrefix returns all known tokens sharing a prefix, sorted.
func (v *Vocabulary) TokensWithPrefix(prefix string) []string {
	var out []string
	v.tree.WalkPrefix(prefix, func(s string, _ interface{}) bool {
		out = append(out, s)
		return false
	})
	sort.Strings(out)
	return out
}

// GreedyPieces decomposes an out-of-vocabulary word into known pieces by
// repeated longest-prefix matching against the patricia tree. Segments with
// no known prefix collapse into a single UnknownToken index. At most maxPieces
// pieces are produced; the remainder of the word is discarded beyond that.
func (v *Vocabulary) GreedyPieces(word string, maxPieces int) []int64 {
	if maxPieces <= 0 {
		maxPieces = 3
	}
	var pieces []int64
	rest := word
	for rest != "" && len(pieces) < maxPieces {
		prefix, raw, ok := v.tree.LongestPrefix(rest)
		if !ok || prefix == "" || prefix == UnknownToken {
			pieces = append(pieces, v.UnknownIndex())
			break
		}
		pieces = append(pieces, raw.(int64))
		rest = rest[len(prefix):]
	}
	if len(pieces) == 0 {
		pieces = append(pieces, v.UnknownIndex())
	}
	return pieces
}

// LabelVocabulary maps label strings to integer indices. Unlike the token
// vocabulary there is no unknown entry: lookups of unseen labels fail.
type LabelVocabulary struct {
	index  map[string]int64
	labels []string
}

// NewLabelVocabulary creates an empty label vocabulary.
func NewLabelVocabulary() *LabelVocabulary {
	return &LabelVocabulary{index: make(map[string]int64, 16)}
}

// Add inserts a label and returns its index. Re-adding returns the existing index.
func (lv *LabelVocabulary) Add(label string) int64 {
	if id, ok := lv.index[label]; ok {
		return id
	}
	id := int64(len(lv.labels))
	lv.index[label] = id
	lv.labels = append(lv.labels, label)
	return id
}

// Lookup returns the index for a label, failing with ErrUnknownLabel when absent.
func (lv *LabelVocabulary) Lookup(label string) (int64, error) {
	id, ok := lv.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return id, nil
}

// Label returns the label stored at an index.
func (lv *LabelVocabulary) Label(id int64) (string, error) {
	if id < 0 || id >= int64(len(lv.labels)) {
		return "", fmt.Errorf("label vocabulary has no entry at index %d", id)
	}
	return lv.labels[id], nil
}

// Len returns the number of distinct labels.
func (lv *LabelVocabulary) Len() int { return len(lv.labels) }
