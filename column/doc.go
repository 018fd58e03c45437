// Package column adapts Apache Arrow arrays to the buffer contract used by
// the rest of trigraph.
//
// A Buffer is a thin, reference-counted descriptor over an arrow.Array:
// typed contiguous data, an optional validity bitmap, and a null count.
// Buffers are shared by shallow View (refcount bump), never deep-copied;
// exactly one logical owner releases each underlying allocation.
//
// The package provides:
//
//   - Constructors from Go slices for the six supported numeric kinds
//     (int8/16/32/64, float32/64), allocating through a memory.Allocator.
//   - Typed accessors (Int32Values, Float64Values, ...) that fail with
//     ErrTypeMismatch instead of panicking on a wrong dtype.
//   - Schema predicates (IsInt32, SameType, HasNulls) used by graph-level
//     precondition checks.
//
// column never mutates the dtype or length of a wrapped array in place;
// derived layouts always materialize new arrays.
package column
