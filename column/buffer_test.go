package column_test

import (
	"testing"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trigraph/column"
)

func TestNewInt32_BasicProperties(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := column.NewInt32(mem, []int32{0, 1, 2})
	defer buf.Release()

	require.Equal(t, 3, buf.Len())
	require.Equal(t, arrow.INT32, buf.TypeID())
	require.True(t, buf.IsInt32())
	require.False(t, buf.HasNulls())
	require.Equal(t, 0, buf.NullN())

	vals, err := buf.Int32Values()
	require.NoError(t, err)
	require.Equal(t, []int32{0, 1, 2}, vals)
}

func TestView_SharesUnderlyingAllocation(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := column.NewInt32(mem, []int32{4, 5})
	view := buf.View()

	// Releasing the owner must keep the view alive.
	buf.Release()
	vals, err := view.Int32Values()
	require.NoError(t, err)
	require.Equal(t, []int32{4, 5}, vals)

	view.Release()
}

func TestInt32Values_TypeMismatch(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := column.NewFloat64(mem, []float64{1.5})
	defer buf.Release()

	_, err := buf.Int32Values()
	require.ErrorIs(t, err, column.ErrTypeMismatch)

	vals, err := buf.Float64Values()
	require.NoError(t, err)
	require.Equal(t, []float64{1.5}, vals)
}

func TestSameType(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a := column.NewInt32(mem, []int32{1})
	defer a.Release()
	b := column.NewInt32(mem, []int32{2})
	defer b.Release()
	c := column.NewInt64(mem, []int64{3})
	defer c.Release()

	require.True(t, column.SameType(a, b))
	require.False(t, column.SameType(a, c))
	require.False(t, column.SameType(a, nil))
}

func TestWrap_NilArray(t *testing.T) {
	_, err := column.Wrap(nil)
	require.ErrorIs(t, err, column.ErrNilArray)
}

func TestWrap_RetainsReference(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := column.NewInt16(mem, []int16{7})
	wrapped, err := column.Wrap(buf.Array())
	require.NoError(t, err)

	buf.Release()
	require.Equal(t, 1, wrapped.Len())
	require.Equal(t, arrow.INT16, wrapped.TypeID())
	wrapped.Release()
}
