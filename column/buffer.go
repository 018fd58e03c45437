package column

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
)

// Buffer is a reference-counted descriptor over a typed Arrow array.
//
// The zero value is not usable; obtain Buffers from Wrap or the New*
// constructors. A Buffer owns one reference to its underlying array;
// View hands out additional shallow references, and Release drops this
// Buffer's reference.
type Buffer struct {
	arr arrow.Array
}

// Wrap takes one reference on arr and returns a Buffer owning it.
// Returns ErrNilArray if arr is nil.
//
// Complexity: O(1)
func Wrap(arr arrow.Array) (*Buffer, error) {
	if arr == nil {
		return nil, ErrNilArray
	}
	arr.Retain()

	return &Buffer{arr: arr}, nil
}

// NewInt8 materializes vals into a fresh int8 Buffer allocated via mem.
func NewInt8(mem memory.Allocator, vals []int8) *Buffer {
	bld := array.NewInt8Builder(mem)
	defer bld.Release()
	bld.AppendValues(vals, nil)

	return &Buffer{arr: bld.NewInt8Array()}
}

// NewInt16 materializes vals into a fresh int16 Buffer allocated via mem.
func NewInt16(mem memory.Allocator, vals []int16) *Buffer {
	bld := array.NewInt16Builder(mem)
	defer bld.Release()
	bld.AppendValues(vals, nil)

	return &Buffer{arr: bld.NewInt16Array()}
}

// NewInt32 materializes vals into a fresh int32 Buffer allocated via mem.
// Vertex index buffers throughout trigraph use this dtype.
func NewInt32(mem memory.Allocator, vals []int32) *Buffer {
	bld := array.NewInt32Builder(mem)
	defer bld.Release()
	bld.AppendValues(vals, nil)

	return &Buffer{arr: bld.NewInt32Array()}
}

// NewInt64 materializes vals into a fresh int64 Buffer allocated via mem.
func NewInt64(mem memory.Allocator, vals []int64) *Buffer {
	bld := array.NewInt64Builder(mem)
	defer bld.Release()
	bld.AppendValues(vals, nil)

	return &Buffer{arr: bld.NewInt64Array()}
}

// NewFloat32 materializes vals into a fresh float32 Buffer allocated via mem.
func NewFloat32(mem memory.Allocator, vals []float32) *Buffer {
	bld := array.NewFloat32Builder(mem)
	defer bld.Release()
	bld.AppendValues(vals, nil)

	return &Buffer{arr: bld.NewFloat32Array()}
}

// NewFloat64 materializes vals into a fresh float64 Buffer allocated via mem.
func NewFloat64(mem memory.Allocator, vals []float64) *Buffer {
	bld := array.NewFloat64Builder(mem)
	defer bld.Release()
	bld.AppendValues(vals, nil)

	return &Buffer{arr: bld.NewFloat64Array()}
}

// Len returns the number of elements in the buffer.
//
// Complexity: O(1)
func (b *Buffer) Len() int { return b.arr.Len() }

// DataType returns the Arrow data type of the buffer.
func (b *Buffer) DataType() arrow.DataType { return b.arr.DataType() }

// TypeID returns the Arrow type tag, the key used by the convert dispatch
// table.
func (b *Buffer) TypeID() arrow.Type { return b.arr.DataType().ID() }

// NullN returns the number of null entries recorded in the validity bitmap.
func (b *Buffer) NullN() int { return b.arr.NullN() }

// Array exposes the wrapped arrow.Array for read-only use. The returned
// array is valid until this Buffer (and every View of it) is released.
func (b *Buffer) Array() arrow.Array { return b.arr }

// View returns a shallow reference-counted view sharing the same underlying
// allocation. The view must be released independently.
//
// Complexity: O(1); no data is copied.
func (b *Buffer) View() *Buffer {
	b.arr.Retain()

	return &Buffer{arr: b.arr}
}

// Release drops this Buffer's reference. The underlying allocation is freed
// once every owner and view has released. The Buffer must not be used after
// Release returns.
func (b *Buffer) Release() {
	b.arr.Release()
}

// IsInt32 reports whether the buffer's dtype is int32.
func (b *Buffer) IsInt32() bool { return b.TypeID() == arrow.INT32 }

// HasNulls reports whether any entry is null.
func (b *Buffer) HasNulls() bool { return b.arr.NullN() > 0 }

// SameType reports whether a and b share the exact same dtype.
// A nil pair is considered mismatched.
func SameType(a, b *Buffer) bool {
	if a == nil || b == nil {
		return false
	}

	return arrow.TypeEqual(a.DataType(), b.DataType())
}

// Int32Values returns the raw int32 slice backing the buffer.
// Fails with ErrTypeMismatch for any other dtype.
//
// Complexity: O(1); the slice aliases the buffer, callers must not mutate it.
func (b *Buffer) Int32Values() ([]int32, error) {
	typed, ok := b.arr.(*array.Int32)
	if !ok {
		return nil, ErrTypeMismatch
	}

	return typed.Int32Values(), nil
}

// Float64Values returns the raw float64 slice backing the buffer.
// Fails with ErrTypeMismatch for any other dtype.
func (b *Buffer) Float64Values() ([]float64, error) {
	typed, ok := b.arr.(*array.Float64)
	if !ok {
		return nil, ErrTypeMismatch
	}

	return typed.Float64Values(), nil
}
