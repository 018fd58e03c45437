// Package trigraph maintains one logical in-memory graph across three
// interchangeable physical layouts — edge list (COO), forward compressed
// adjacency (CSR) and transposed compressed adjacency (CSC) — and converts
// between them on demand.
//
// 🚀 What is trigraph?
//
//	A columnar graph container built on Apache Arrow buffers:
//		• graph/   — the Handle: install one layout, lazily derive the rest,
//		             delete layouts independently, read cached properties
//		• convert/ — COO↔CSR/CSC conversion kernels, numeric-type dispatch,
//		             negative-weight scan, parallel max reduction
//		• column/  — reference-counted typed buffers over arrow.Array
//		• stream/  — stream-ordered execution and allocation under the hood
//
// ✨ Why trigraph?
//
//   - One graph, no redundant state – layouts are derived, cached and
//     released individually; coexisting layouts always agree
//   - Deterministic conversions – stable grouping by source vertex, weights
//     permuted together with their edges
//   - Typed failure modes – sentinel errors matched with errors.Is, never
//     partial mutation on failure
//
// Quick ASCII example, the directed triangle:
//
//	0 ──▶ 1
//	 ╲    │
//	  ▼   ▼
//	    2
//
// installs as src=[0 0 1], dst=[1 2 2] and compresses to
// offsets=[0 2 3 3], indices=[1 2 2].
//
// trigraph implements no graph algorithms; consumers request the layout an
// algorithm needs and read its buffers through read-only views.
//
//	go get github.com/katalvlaran/trigraph
package trigraph
