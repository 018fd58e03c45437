// Package graph manages a single logical graph held in up to three
// interchangeable physical layouts: an unordered edge list (COO), a forward
// compressed adjacency list (CSR) and a transposed compressed adjacency list
// (CSC).
//
// A Handle starts empty. Exactly one View operation installs the first
// representation:
//
//	h := graph.New()
//	defer h.Close()
//	err := h.ViewAsEdgeList(src, dst, weights) // or ViewAsAdjacencyList
//
// Later Add operations lazily derive the missing layouts from whichever one
// exists, running the convert package's kernels on the handle's execution
// stream and caching the result. Add is idempotent: a second call returns
// the cached layout untouched. Delete operations release one layout's
// buffers without affecting the others.
//
// Derivation sources are fixed: the edge list is always preferred when
// deriving the transposed adjacency list, and the adjacency list is always
// the source when deriving an edge list, so coexisting layouts always
// describe the same edge multiset.
//
// Scalar properties ride along: the vertex count is cached after the first
// computation (offset length minus one, or a max-reduction over the edge
// columns), and the negative-weight flag is a tri-state set by a
// dtype-dispatched scan when weights are installed.
//
// A Handle is not internally synchronized. All operations on one Handle must
// be serialized by the caller; operations on different handles are
// independent, even when they share one stream.Allocator.
//
// Every precondition is validated eagerly and reported as a sentinel error
// matched with errors.Is; a failed operation leaves the handle exactly as it
// was.
package graph
