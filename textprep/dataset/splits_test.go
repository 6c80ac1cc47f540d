package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{Text: fmt.Sprintf("sample text %d", i), Label: "a"}
	}
	return records
}

func TestSplitRecordsPartition(t *testing.T) {
	for _, n := range []int{10, 100, 101, 997} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			splits := splitRecords(makeRecords(n), 42)

			total := len(splits[SplitTrain].records) +
				len(splits[SplitVal].records) +
				len(splits[SplitTest].records)
			assert.Equal(t, n, total, "split sizes must sum to the input count")

			require.NoError(t, verifyPartition(splits, n))
		})
	}
}

func TestSplitRecordsRatios(t *testing.T) {
	splits := splitRecords(makeRecords(100), 42)

	assert.Equal(t, 20, len(splits[SplitTest].records))
	assert.Equal(t, 20, len(splits[SplitVal].records))
	assert.Equal(t, 60, len(splits[SplitTrain].records))
}

func TestSplitRecordsSeedReproducible(t *testing.T) {
	records := makeRecords(50)

	first := splitRecords(records, 7)
	second := splitRecords(records, 7)
	assert.Equal(t, first[SplitTrain].records, second[SplitTrain].records)
	assert.Equal(t, first[SplitVal].records, second[SplitVal].records)
	assert.Equal(t, first[SplitTest].records, second[SplitTest].records)
}

func TestVerifyPartitionDetectsOverlap(t *testing.T) {
	splits := splitRecords(makeRecords(20), 42)
	// Corrupt the partition: copy a test member into train.
	splits[SplitTrain].members.Add(splits[SplitTest].members.Minimum())

	assert.Error(t, verifyPartition(splits, 20))
}
