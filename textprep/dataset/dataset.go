// Package dataset adapts labeled text records for a classification training
// loop: it partitions records into train/val/test splits, normalizes text,
// delegates numeric encoding to a vectorizer and exposes a lazy batch stream.
package dataset

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/feldspar-ai/textprep/textprep/textproc"
	"github.com/feldspar-ai/textprep/textprep/vectorizer"
)

// Record is a single labeled text sample. Immutable once loaded.
type Record struct {
	Text  string
	Label string
}

// Item is one vectorized record: a fixed-length feature vector and the
// label's integer index.
type Item struct {
	Features   []float32
	LabelIndex int64
}

// SplitManager partitions a record collection once at construction and
// serves length/indexing queries against the active split. All state except
// the active-split selection is read-only after construction; GetItem writes
// no shared state and is safe to call concurrently with disjoint indices.
type SplitManager struct {
	id     uuid.UUID
	vec    *vectorizer.TextVectorizer
	norm   *textproc.Normalizer
	splits map[Split]*partition
	active Split
}

// Option configures New and LoadAndBuild.
type Option func(*managerOptions)

type managerOptions struct {
	seed           int64
	language       string
	stopwordFile   string
	wordpieceVocab string
	seqLenGuard    int
	cappedSeqLen   int
}

// WithSeed fixes the split randomization seed. Zero (the default) leaves the
// partitioning unseeded, so splits vary per run.
func WithSeed(seed int64) Option {
	return func(o *managerOptions) { o.seed = seed }
}

// WithLanguage selects the stopword language used by LoadAndBuild.
func WithLanguage(language string) Option {
	return func(o *managerOptions) { o.language = language }
}

// WithStopwordFile loads stopwords from a word-per-line file instead of the
// embedded list.
func WithStopwordFile(path string) Option {
	return func(o *managerOptions) { o.stopwordFile = path }
}

// WithWordPieceVocab points the wordpiece vectorizer mode at a vocab file.
func WithWordPieceVocab(path string) Option {
	return func(o *managerOptions) { o.wordpieceVocab = path }
}

// WithSeqLenGuard overrides the guard/cap pair applied to the observed
// maximum text length in LoadAndBuild.
func WithSeqLenGuard(guard, capped int) Option {
	return func(o *managerOptions) {
		o.seqLenGuard = guard
		o.cappedSeqLen = capped
	}
}

// New constructs a SplitManager over an already-loaded record collection and
// vectorizer. The stopword set must have been loaded by the caller
// (textproc.LoadStopwords); construction itself performs no resource I/O.
// The active split starts at train.
func New(records []Record, vec *vectorizer.TextVectorizer, stopwords *textproc.StopwordSet, opts ...Option) (*SplitManager, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	if vec == nil {
		return nil, ErrNilVectorizer
	}

	var o managerOptions
	for _, opt := range opts {
		opt(&o)
	}

	splits := splitRecords(records, o.seed)
	if err := verifyPartition(splits, len(records)); err != nil {
		return nil, fmt.Errorf("partitioning records: %w", err)
	}

	m := &SplitManager{
		id:     uuid.New(),
		vec:    vec,
		norm:   textproc.NewNormalizer(stopwords),
		splits: splits,
		active: SplitTrain,
	}

	slog.Info("Dataset constructed",
		"dataset_id", m.id.String(),
		"records", len(records),
		"train", len(splits[SplitTrain].records),
		"val", len(splits[SplitVal].records),
		"test", len(splits[SplitTest].records),
		"seeded", o.seed != 0)

	return m, nil
}

// ID returns the manager's instance identifier, used for log correlation.
func (m *SplitManager) ID() uuid.UUID { return m.id }

// Vectorizer returns the external vectorizer the manager delegates to.
func (m *SplitManager) Vectorizer() *vectorizer.TextVectorizer { return m.vec }

// ActiveSplit returns the currently selected split.
func (m *SplitManager) ActiveSplit() Split { return m.active }

// SetSplit selects which partition subsequent Size/GetItem calls observe.
func (m *SplitManager) SetSplit(split Split) error {
	switch split {
	case SplitTrain, SplitVal, SplitTest:
		m.active = split
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSplit, split)
	}
}

// Size returns the record count of the active split.
func (m *SplitManager) Size() int {
	return len(m.splits[m.active].records)
}

// SplitSize returns the record count of a named split.
func (m *SplitManager) SplitSize(split Split) (int, error) {
	p, ok := m.splits[split]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSplit, split)
	}
	return len(p.records), nil
}

// GetItem vectorizes the index-th record of the active split: normalize the
// text, encode it, look the label up in the label vocabulary.
func (m *SplitManager) GetItem(index int) (Item, error) {
	return m.item(m.active, index)
}

// item serves GetItem and the batch stream, which pins the split it was
// created over regardless of later SetSplit calls.
func (m *SplitManager) item(split Split, index int) (Item, error) {
	records := m.splits[split].records
	if index < 0 || index >= len(records) {
		return Item{}, fmt.Errorf("%w: index %d, split %s has %d records",
			ErrIndexOutOfRange, index, split, len(records))
	}

	rec := records[index]
	features, err := m.vec.Vectorize(m.norm.Normalize(rec.Text))
	if err != nil {
		return Item{}, fmt.Errorf("vectorizing record %d: %w", index, err)
	}

	labelIndex, err := m.vec.Labels().Lookup(rec.Label)
	if err != nil {
		return Item{}, err
	}

	return Item{Features: features, LabelIndex: labelIndex}, nil
}
