// SPDX-License-Identifier: MIT

package convert

import (
	"fmt"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/katalvlaran/trigraph/column"
)

// kernel bundles the two weight-typed operations behind one dtype tag:
// the negative-value scan and the weighted conversion. Built once; every
// dispatching call site goes through this table.
type kernel struct {
	hasNegative func(arr arrow.Array) bool
	compress    func(mem memory.Allocator, src, dest []int32, weights arrow.Array) (Compressed, arrow.Array, error)
}

// makeKernel instantiates a kernel for element type W given the typed value
// accessor and the typed builder for that Arrow array kind.
func makeKernel[W Numeric](
	values func(arrow.Array) []W,
	build func(memory.Allocator, []W) arrow.Array,
) kernel {
	return kernel{
		hasNegative: func(arr arrow.Array) bool {
			for _, v := range values(arr) {
				if v < 0 {
					return true
				}
			}

			return false
		},
		compress: func(mem memory.Allocator, src, dest []int32, weights arrow.Array) (Compressed, arrow.Array, error) {
			comp, perm, err := ToCompressedWeighted(src, dest, values(weights))
			if err != nil {
				return Compressed{}, nil, err
			}

			return comp, build(mem, perm), nil
		},
	}
}

// kernels maps the six supported weight dtypes to their instantiations.
var kernels = map[arrow.Type]kernel{
	arrow.INT8: makeKernel(
		func(a arrow.Array) []int8 { return a.(*array.Int8).Int8Values() },
		func(mem memory.Allocator, v []int8) arrow.Array {
			b := array.NewInt8Builder(mem)
			defer b.Release()
			b.AppendValues(v, nil)

			return b.NewArray()
		},
	),
	arrow.INT16: makeKernel(
		func(a arrow.Array) []int16 { return a.(*array.Int16).Int16Values() },
		func(mem memory.Allocator, v []int16) arrow.Array {
			b := array.NewInt16Builder(mem)
			defer b.Release()
			b.AppendValues(v, nil)

			return b.NewArray()
		},
	),
	arrow.INT32: makeKernel(
		func(a arrow.Array) []int32 { return a.(*array.Int32).Int32Values() },
		func(mem memory.Allocator, v []int32) arrow.Array {
			b := array.NewInt32Builder(mem)
			defer b.Release()
			b.AppendValues(v, nil)

			return b.NewArray()
		},
	),
	arrow.INT64: makeKernel(
		func(a arrow.Array) []int64 { return a.(*array.Int64).Int64Values() },
		func(mem memory.Allocator, v []int64) arrow.Array {
			b := array.NewInt64Builder(mem)
			defer b.Release()
			b.AppendValues(v, nil)

			return b.NewArray()
		},
	),
	arrow.FLOAT32: makeKernel(
		func(a arrow.Array) []float32 { return a.(*array.Float32).Float32Values() },
		func(mem memory.Allocator, v []float32) arrow.Array {
			b := array.NewFloat32Builder(mem)
			defer b.Release()
			b.AppendValues(v, nil)

			return b.NewArray()
		},
	),
	arrow.FLOAT64: makeKernel(
		func(a arrow.Array) []float64 { return a.(*array.Float64).Float64Values() },
		func(mem memory.Allocator, v []float64) arrow.Array {
			b := array.NewFloat64Builder(mem)
			defer b.Release()
			b.AppendValues(v, nil)

			return b.NewArray()
		},
	),
}

// Supported reports whether dtype tag t has a compiled kernel.
func Supported(t arrow.Type) bool {
	_, ok := kernels[t]

	return ok
}

// HasNegative reports whether any element of buf is below zero, dispatched
// by the buffer's dtype tag. Fails with ErrUnsupportedType for dtypes
// outside the supported set; it never treats such a buffer as weightless.
func HasNegative(buf *column.Buffer) (bool, error) {
	k, ok := kernels[buf.TypeID()]
	if !ok {
		return false, fmt.Errorf("scan dtype %s: %w", buf.DataType(), ErrUnsupportedType)
	}

	return k.hasNegative(buf.Array()), nil
}

// CompressWeighted runs the weighted conversion for (src, dest, weights),
// dispatched by the weight buffer's dtype. The permuted weights come back as
// a fresh Buffer allocated through mem; offsets and indices stay plain
// slices for the caller to materialize.
func CompressWeighted(mem memory.Allocator, src, dest []int32, weights *column.Buffer) (Compressed, *column.Buffer, error) {
	k, ok := kernels[weights.TypeID()]
	if !ok {
		return Compressed{}, nil, fmt.Errorf("weight dtype %s: %w", weights.DataType(), ErrUnsupportedType)
	}

	comp, permuted, err := k.compress(mem, src, dest, weights.Array())
	if err != nil {
		return Compressed{}, nil, err
	}
	out, err := column.Wrap(permuted)
	if err != nil {
		return Compressed{}, nil, err
	}
	// Wrap retained its own reference; drop the builder's.
	permuted.Release()

	return comp, out, nil
}
