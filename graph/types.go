package graph

import (
	"github.com/katalvlaran/trigraph/column"
)

// Flag is a tri-state scalar property: unknown until computed, then pinned.
type Flag uint8

const (
	// FlagUnknown means the property has not been computed yet.
	FlagUnknown Flag = iota
	// FlagFalse means the property was computed and does not hold.
	FlagFalse
	// FlagTrue means the property was computed and holds.
	FlagTrue
)

// String implements fmt.Stringer.
func (f Flag) String() string {
	switch f {
	case FlagFalse:
		return "false"
	case FlagTrue:
		return "true"
	default:
		return "unknown"
	}
}

// EdgeList is the COO representation: parallel source/destination columns
// plus an optional weight column of equal length. Index columns are int32
// and never contain nulls.
type EdgeList struct {
	Src     *column.Buffer
	Dst     *column.Buffer
	Weights *column.Buffer // nil when the graph is unweighted
}

// NumEdges returns E.
func (e *EdgeList) NumEdges() int32 {
	return int32(e.Src.Len())
}

// Weighted reports whether a weight column is attached.
func (e *EdgeList) Weighted() bool { return e.Weights != nil }

// release drops this representation's ownership of its buffers.
func (e *EdgeList) release() {
	e.Src.Release()
	e.Dst.Release()
	if e.Weights != nil {
		e.Weights.Release()
	}
}

// CompressedList is the CSR representation (and, with source/destination
// roles swapped, the CSC one): an int32 offset column of length V+1, an
// int32 index column of length E and an optional weight column of length E.
//
// Offsets are non-decreasing, start at 0 and end at E; index values are
// vertex ids in [0, V).
type CompressedList struct {
	Offsets *column.Buffer
	Indices *column.Buffer
	Weights *column.Buffer // nil when the graph is unweighted
}

// NumVertices returns V, the offset column length minus one.
func (c *CompressedList) NumVertices() int32 {
	return int32(c.Offsets.Len()) - 1
}

// NumEdges returns E.
func (c *CompressedList) NumEdges() int32 {
	return int32(c.Indices.Len())
}

// Weighted reports whether a weight column is attached.
func (c *CompressedList) Weighted() bool { return c.Weights != nil }

// Degree returns offsets[v+1]-offsets[v]: the out-degree of v in the
// forward layout, its in-degree in the transposed one.
// Fails with ErrVertexOutOfRange for v outside [0, V).
func (c *CompressedList) Degree(v int32) (int32, error) {
	offs, err := c.Offsets.Int32Values()
	if err != nil {
		return 0, err
	}
	if v < 0 || int(v)+1 >= len(offs) {
		return 0, ErrVertexOutOfRange
	}

	return offs[v+1] - offs[v], nil
}

// release drops this representation's ownership of its buffers.
func (c *CompressedList) release() {
	c.Offsets.Release()
	c.Indices.Release()
	if c.Weights != nil {
		c.Weights.Release()
	}
}
