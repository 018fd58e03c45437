// Package convert implements the layout conversions between the edge-list
// (COO) and compressed offset/index (CSR/CSC) encodings of a graph, plus the
// numeric-type dispatch shared by every weight-typed operation.
//
// The conversions:
//
//   - ToCompressed / ToCompressedWeighted group an edge list by source vertex
//     into (offsets[V+1], indices[E][, weights[E]]) via a stable counting
//     sort: edges with equal source keep their original relative order, so
//     results are deterministic. Weights are permuted identically to the
//     index column. Feeding (dest, src) instead of (src, dest) yields the
//     transposed (CSC) form.
//   - ExpandOffsets inverts the compression, expanding an offset array back
//     into the per-edge source column.
//
// Six weight kinds are supported: int8, int16, int32, int64, float32 and
// float64. The dispatch table in this package is built once and keyed by the
// Arrow type tag; both the negative-value scan (HasNegative) and the weighted
// conversion entry point (CompressWeighted) go through it. An unrecognized
// tag fails with ErrUnsupportedType, never by silently dropping weights.
//
// Vertex ids are int32 throughout. Malformed indices (negative or otherwise
// out of contract) are validated by callers before conversion.
package convert
