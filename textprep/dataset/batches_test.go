package dataset

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feldspar-ai/textprep/textprep/textproc"
	"github.com/feldspar-ai/textprep/textprep/vectorizer"
)

// drain consumes a full pass, returning the batch sizes in order.
func drain(t *testing.T, s *BatchStream) []int {
	t.Helper()

	var sizes []int
	for {
		batch, err := s.Next()
		if err == io.EOF {
			return sizes
		}
		require.NoError(t, err)
		sizes = append(sizes, batch.Rows())
		require.NoError(t, batch.Close())
	}
}

func TestGenerateBatchesValidation(t *testing.T) {
	m := newTestManager(t)

	_, err := m.GenerateBatches(BatchConfig{BatchSize: 0})
	assert.Error(t, err)

	_, err = m.GenerateBatches(BatchConfig{BatchSize: -3})
	assert.Error(t, err)
}

func TestGenerateBatchesDropLast(t *testing.T) {
	m10 := newTenRecordManager(t)

	s, err := m10.GenerateBatches(BatchConfig{BatchSize: 4, Shuffle: true, DropLast: true, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []int{4, 4}, drain(t, s))
}

func TestGenerateBatchesKeepLast(t *testing.T) {
	m10 := newTenRecordManager(t)

	s, err := m10.GenerateBatches(BatchConfig{BatchSize: 4, Shuffle: true, DropLast: false, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{4, 4, 2}, drain(t, s))
}

func TestBatchStreamRestartable(t *testing.T) {
	m10 := newTenRecordManager(t)

	s, err := m10.GenerateBatches(BatchConfig{BatchSize: 4, Shuffle: true, DropLast: true, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4}, drain(t, s))

	// Exhausted stream keeps returning EOF until reset.
	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)

	s.Reset()
	assert.Equal(t, []int{4, 4}, drain(t, s), "reset starts a fresh full pass")
}

func TestBatchStreamUnshuffledOrder(t *testing.T) {
	m := newTestManager(t)

	s, err := m.GenerateBatches(BatchConfig{BatchSize: 2, Shuffle: false, DropLast: false})
	require.NoError(t, err)

	var streamed []int64
	for {
		batch, err := s.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		streamed = append(streamed, batch.Labels()...)
		require.NoError(t, batch.Close())
	}

	var direct []int64
	for i := 0; i < m.Size(); i++ {
		item, err := m.GetItem(i)
		require.NoError(t, err)
		direct = append(direct, item.LabelIndex)
	}
	assert.Equal(t, direct, streamed, "unshuffled stream preserves split order")
}

func TestBatchStreamPinsSplit(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.SetSplit(SplitVal))
	valSize := m.Size()

	s, err := m.GenerateBatches(BatchConfig{BatchSize: 1, Shuffle: false, DropLast: false})
	require.NoError(t, err)

	// Switching the active split must not affect an existing stream.
	require.NoError(t, m.SetSplit(SplitTrain))
	assert.Len(t, drain(t, s), valSize)
}

func TestBatchTensorShape(t *testing.T) {
	m := newTestManager(t)

	s, err := m.GenerateBatches(BatchConfig{BatchSize: 2, Shuffle: false, DropLast: true, Device: "cpu"})
	require.NoError(t, err)

	batch, err := s.Next()
	require.NoError(t, err)
	defer batch.Close()

	assert.Equal(t, "cpu", batch.Device())
	assert.Equal(t, 2, batch.Rows())
	assert.Equal(t, m.Vectorizer().Dimensions(), batch.Cols())

	rows, cols := batch.Features().Dims()
	assert.Equal(t, batch.Rows(), rows)
	assert.Equal(t, batch.Cols(), cols)
	assert.Len(t, batch.Labels(), 2)
}

func TestGenerateBatchesShuffleCoversAll(t *testing.T) {
	m10 := newTenRecordManager(t)

	s, err := m10.GenerateBatches(BatchConfig{BatchSize: 5, Shuffle: true, DropLast: false, Seed: 99})
	require.NoError(t, err)

	var total int
	for {
		batch, err := s.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		total += batch.Rows()
		require.NoError(t, batch.Close())
	}
	assert.Equal(t, 10, total, "a full shuffled pass covers the whole split")
}

// newTenRecordManager returns a manager whose train split holds exactly 10
// records, so batch-count arithmetic is easy to assert. 16 records partition
// as test=3, val=3, train=10.
func newTenRecordManager(t *testing.T) *SplitManager {
	t.Helper()

	records := makeRecords(16)
	samples := make([]vectorizer.Sample, len(records))
	for i, r := range records {
		samples[i] = vectorizer.Sample{Text: r.Text, Label: r.Label}
	}

	vec, err := vectorizer.FromCollection(samples, vectorizer.ModeOneHot, 0)
	require.NoError(t, err)

	stopwords, err := textproc.LoadStopwords("english", "")
	require.NoError(t, err)

	m, err := New(records, vec, stopwords, WithSeed(42))
	require.NoError(t, err)

	require.NoError(t, m.SetSplit(SplitTrain))
	require.Equal(t, 10, m.Size())
	return m
}
