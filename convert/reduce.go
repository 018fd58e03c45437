package convert

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the minimum element count before MaxInt32 fans out
// across goroutines; below it a sequential scan wins.
const parallelThreshold = 1 << 15

// MaxInt32 reduces vals to its maximum. The empty reduction returns -1, the
// identity for vertex-id columns (ids are never negative), so
// 1 + MaxInt32(nil) is the zero vertex count.
//
// Large inputs are reduced in parallel chunks, one per available CPU.
//
// Complexity: O(E) work, O(E / P) span.
func MaxInt32(vals []int32) int32 {
	if len(vals) < parallelThreshold {
		return maxSeq(vals)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(vals) {
		workers = len(vals)
	}
	partial := make([]int32, workers)
	chunk := (len(vals) + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if hi > len(vals) {
			hi = len(vals)
		}
		g.Go(func() error {
			partial[w] = maxSeq(vals[lo:hi])

			return nil
		})
	}
	// Chunk reducers cannot fail; Wait is purely a barrier here.
	_ = g.Wait()

	return maxSeq(partial)
}

func maxSeq(vals []int32) int32 {
	best := int32(-1)
	for _, v := range vals {
		if v > best {
			best = v
		}
	}

	return best
}
