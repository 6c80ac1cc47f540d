package dataset

import (
	"fmt"
	"math/rand"
	"time"

	roaring "github.com/RoaringBitmap/roaring"
)

// Split identifies one of the three fixed partitions.
type Split string

const (
	SplitTrain Split = "train"
	SplitVal   Split = "val"
	SplitTest  Split = "test"
)

// partition holds the records of one split plus a bitmap of the original
// record indices assigned to it, used to verify the partitioning.
type partition struct {
	records []Record
	members *roaring.Bitmap
}

// splitRecords partitions records into train/val/test by randomized index
// permutation: 20% test, then 25% of the remainder val, i.e. 60/20/20
// overall. A zero seed leaves the split unseeded (time-based), matching the
// historical behavior; callers wanting reproducible splits pass a seed.
func splitRecords(records []Record, seed int64) map[Split]*partition {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	n := len(records)
	perm := rng.Perm(n)

	nTest := int(float64(n) * 0.2)
	nVal := int(float64(n-nTest) * 0.25)

	splits := map[Split]*partition{
		SplitTrain: {members: roaring.New()},
		SplitVal:   {members: roaring.New()},
		SplitTest:  {members: roaring.New()},
	}
	for i, idx := range perm {
		var target Split
		switch {
		case i < nTest:
			target = SplitTest
		case i < nTest+nVal:
			target = SplitVal
		default:
			target = SplitTrain
		}
		p := splits[target]
		p.records = append(p.records, records[idx])
		p.members.Add(uint32(idx))
	}
	return splits
}

// verifyPartition checks that the three splits are pairwise disjoint and
// together cover every input record exactly once.
func verifyPartition(splits map[Split]*partition, total int) error {
	names := []Split{SplitTrain, SplitVal, SplitTest}
	union := roaring.New()
	for i, a := range names {
		for _, b := range names[i+1:] {
			if overlap := roaring.And(splits[a].members, splits[b].members); !overlap.IsEmpty() {
				return fmt.Errorf("splits %s and %s overlap on %d records", a, b, overlap.GetCardinality())
			}
		}
		union.Or(splits[a].members)
	}
	if got := int(union.GetCardinality()); got != total {
		return fmt.Errorf("splits cover %d of %d records", got, total)
	}
	return nil
}
