// Package graph_test provides benchmarks for representation derivation.
package graph_test

import (
	"math/rand"
	"testing"

	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/katalvlaran/trigraph/column"
	"github.com/katalvlaran/trigraph/graph"
)

// BenchmarkAddAdjacencyList measures the COO→CSR derivation on a random
// 100k-edge graph over 10k vertices.
func BenchmarkAddAdjacencyList(b *testing.B) {
	const (
		numEdges    = 100_000
		numVertices = 10_000
	)
	mem := memory.NewGoAllocator()
	rng := rand.New(rand.NewSource(1))
	srcVals := make([]int32, numEdges)
	dstVals := make([]int32, numEdges)
	for i := range srcVals {
		srcVals[i] = rng.Int31n(numVertices)
		dstVals[i] = rng.Int31n(numVertices)
	}
	src := column.NewInt32(mem, srcVals)
	dst := column.NewInt32(mem, dstVals)
	defer src.Release()
	defer dst.Release()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := graph.New()
		if err := h.ViewAsEdgeList(src, dst, nil); err != nil {
			b.Fatal(err)
		}
		if err := h.AddAdjacencyList(); err != nil {
			b.Fatal(err)
		}
		if err := h.Close(); err != nil {
			b.Fatal(err)
		}
	}
}
