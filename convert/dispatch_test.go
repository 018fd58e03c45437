package convert_test

import (
	"testing"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trigraph/column"
	"github.com/katalvlaran/trigraph/convert"
)

func TestSupported(t *testing.T) {
	for _, id := range []arrow.Type{
		arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.FLOAT32, arrow.FLOAT64,
	} {
		require.True(t, convert.Supported(id), "dtype %s", id)
	}
	require.False(t, convert.Supported(arrow.UINT32))
	require.False(t, convert.Supported(arrow.STRING))
	require.False(t, convert.Supported(arrow.BOOL))
}

func TestHasNegative_AllKinds(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	cases := []struct {
		name string
		buf  *column.Buffer
		want bool
	}{
		{"int8 negative", column.NewInt8(mem, []int8{1, -3}), true},
		{"int8 clean", column.NewInt8(mem, []int8{0, 3}), false},
		{"int16 negative", column.NewInt16(mem, []int16{-1}), true},
		{"int32 clean", column.NewInt32(mem, []int32{7, 0}), false},
		{"int64 negative", column.NewInt64(mem, []int64{5, -9, 2}), true},
		{"float32 clean", column.NewFloat32(mem, []float32{0.5, 2}), false},
		{"float64 negative", column.NewFloat64(mem, []float64{-1.0, 2.0}), true},
		{"empty", column.NewFloat64(mem, nil), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer tc.buf.Release()
			got, err := convert.HasNegative(tc.buf)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestHasNegative_UnsupportedDtype(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	// A uint32 column has no kernel; the scan must refuse, not guess.
	bld := newUint32(mem, []uint32{1, 2})
	defer bld.Release()

	_, err := convert.HasNegative(bld)
	require.ErrorIs(t, err, convert.ErrUnsupportedType)
}

func TestCompressWeighted_DispatchesByDtype(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	src := []int32{1, 0}
	dest := []int32{0, 1}

	weights := column.NewInt64(mem, []int64{10, 1})
	defer weights.Release()

	comp, perm, err := convert.CompressWeighted(mem, src, dest, weights)
	require.NoError(t, err)
	defer perm.Release()

	require.Equal(t, []int32{0, 1, 2}, comp.Offsets)
	require.Equal(t, []int32{1, 0}, comp.Indices)
	require.Equal(t, arrow.INT64, perm.TypeID())

	typed, ok := perm.Array().(interface{ Int64Values() []int64 })
	require.True(t, ok)
	require.Equal(t, []int64{1, 10}, typed.Int64Values())
}

func TestCompressWeighted_UnsupportedDtype(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	weights := newUint32(mem, []uint32{1})
	defer weights.Release()

	_, _, err := convert.CompressWeighted(mem, []int32{0}, []int32{1}, weights)
	require.ErrorIs(t, err, convert.ErrUnsupportedType)
}

// newUint32 builds a uint32 column, a dtype deliberately outside the
// supported weight kinds.
func newUint32(mem memory.Allocator, vals []uint32) *column.Buffer {
	bld := array.NewUint32Builder(mem)
	defer bld.Release()
	bld.AppendValues(vals, nil)
	arr := bld.NewArray()
	buf, err := column.Wrap(arr)
	if err != nil {
		panic(err)
	}
	arr.Release()

	return buf
}

func TestCompressWeighted_LengthMismatch(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	weights := column.NewFloat32(mem, []float32{1, 2, 3})
	defer weights.Release()

	_, _, err := convert.CompressWeighted(mem, []int32{0}, []int32{1}, weights)
	require.ErrorIs(t, err, convert.ErrLengthMismatch)
}
