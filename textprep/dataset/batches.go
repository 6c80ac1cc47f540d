package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sourcegraph/conc/pool"

	internal "github.com/feldspar-ai/textprep/textprep"
	"github.com/feldspar-ai/textprep/textprep/device"
)

// BatchConfig controls a single batch stream over the active split.
type BatchConfig struct {
	BatchSize int
	// Shuffle randomizes sample order; the order is redrawn on every pass.
	Shuffle bool
	// DropLast discards a trailing chunk smaller than BatchSize.
	DropLast bool
	// Device names the placement batches are transferred to ("cpu", "onnx").
	Device string
	// Workers bounds the goroutines vectorizing items of a batch.
	Workers int
	// Seed fixes the shuffle order when non-zero.
	Seed int64
}

// BatchStream is a lazy, finite sequence of device-resident batches covering
// the split that was active when the stream was created. Next returns io.EOF
// when the pass is exhausted; Reset starts a fresh pass (reshuffled when
// configured). A stream is restartable but not resumable mid-pass.
type BatchStream struct {
	m         *SplitManager
	split     Split
	cfg       BatchConfig
	placement device.Placement
	rng       *rand.Rand
	order     []int
	pos       int
}

// GenerateBatches creates a batch stream over the active split.
func (m *SplitManager) GenerateBatches(cfg BatchConfig) (*BatchStream, error) {
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = internal.DefaultWorkers
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &BatchStream{
		m:         m,
		split:     m.active,
		cfg:       cfg,
		placement: device.Select(cfg.Device),
		rng:       rand.New(rand.NewSource(seed)),
	}
	s.Reset()

	slog.Debug("Batch stream created",
		"dataset_id", m.id.String(),
		"split", string(s.split),
		"batch_size", cfg.BatchSize,
		"shuffle", cfg.Shuffle,
		"drop_last", cfg.DropLast,
		"device", s.placement.Name())

	return s, nil
}

// Reset starts a fresh pass over the split, redrawing the sample order when
// shuffling is enabled.
func (s *BatchStream) Reset() {
	n := len(s.m.splits[s.split].records)
	if s.cfg.Shuffle {
		s.order = s.rng.Perm(n)
	} else {
		s.order = make([]int, n)
		for i := range s.order {
			s.order[i] = i
		}
	}
	s.pos = 0
}

// Len returns the number of batches a full pass yields.
func (s *BatchStream) Len() int {
	n := len(s.order)
	if s.cfg.DropLast {
		return n / s.cfg.BatchSize
	}
	return (n + s.cfg.BatchSize - 1) / s.cfg.BatchSize
}

// Next yields the next batch of the pass, transferred to the configured
// device. It returns io.EOF once the split is exhausted.
func (s *BatchStream) Next() (device.Tensors, error) {
	remaining := len(s.order) - s.pos
	if remaining == 0 || (s.cfg.DropLast && remaining < s.cfg.BatchSize) {
		return nil, io.EOF
	}

	size := s.cfg.BatchSize
	if remaining < size {
		size = remaining
	}
	indices := s.order[s.pos : s.pos+size]
	s.pos += size

	// Vectorize the batch's items with a bounded worker pool. GetItem is
	// side-effect-free, so disjoint indices may run concurrently.
	items := make([]Item, size)
	p := pool.New().WithErrors().WithMaxGoroutines(s.cfg.Workers)
	for slot, recordIdx := range indices {
		slot, recordIdx := slot, recordIdx
		p.Go(func() error {
			item, err := s.m.item(s.split, recordIdx)
			if err != nil {
				return err
			}
			items[slot] = item
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	cols := s.m.vec.Dimensions()
	features := make([]float32, size*cols)
	labels := make([]int64, size)
	for i, item := range items {
		copy(features[i*cols:(i+1)*cols], item.Features)
		labels[i] = item.LabelIndex
	}

	return s.placement.Place(features, size, cols, labels)
}
