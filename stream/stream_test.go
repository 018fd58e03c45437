package stream_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trigraph/stream"
)

func TestStream_RunsTasksInSubmissionOrder(t *testing.T) {
	s := stream.New()
	defer s.Close()

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		require.NoError(t, s.Submit("append", func() error {
			got = append(got, i)

			return nil
		}))
	}
	require.NoError(t, s.Sync())
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestStream_FailurePoisonsStream(t *testing.T) {
	s := stream.New()
	defer s.Close()

	boom := errors.New("kernel fault")
	ran := false
	require.NoError(t, s.Submit("fail", func() error { return boom }))
	require.NoError(t, s.Submit("after", func() error {
		ran = true

		return nil
	}))

	err := s.Sync()
	require.ErrorIs(t, err, stream.ErrDeviceFailure)
	require.False(t, ran, "tasks after a failure must be skipped")

	// The poison is permanent.
	require.ErrorIs(t, s.Sync(), stream.ErrDeviceFailure)
	require.ErrorIs(t, s.Err(), stream.ErrDeviceFailure)
}

func TestStream_PanicBecomesDeviceFailure(t *testing.T) {
	s := stream.New()
	defer s.Close()

	require.NoError(t, s.Submit("explode", func() error { panic("oom") }))
	require.ErrorIs(t, s.Sync(), stream.ErrDeviceFailure)
}

func TestStream_SubmitAfterClose(t *testing.T) {
	s := stream.New()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Close is idempotent")

	err := s.Submit("late", func() error { return nil })
	require.ErrorIs(t, err, stream.ErrClosed)
}

func TestAllocator_StreamOrderedAllocateFree(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	alloc := stream.NewAllocator(mem)
	s := stream.New()

	buf, err := alloc.Allocate(128, s)
	require.NoError(t, err)
	require.Len(t, buf, 128)

	alloc.Free(buf, s)
	require.NoError(t, s.Sync())
	require.NoError(t, s.Close())
	mem.AssertSize(t, 0)
}

func TestAllocator_BindSatisfiesArrowContract(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	alloc := stream.NewAllocator(mem)
	s := stream.New()
	defer s.Close()

	bound := alloc.Bind(s)
	buf := bound.Allocate(64)
	require.Len(t, buf, 64)
	buf = bound.Reallocate(256, buf)
	require.Len(t, buf, 256)
	bound.Free(buf)
	require.NoError(t, s.Sync())
	mem.AssertSize(t, 0)
}

func TestAllocator_FreeAfterCloseRunsInline(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	alloc := stream.NewAllocator(mem)
	s := stream.New()

	buf, err := alloc.Allocate(64, s)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// The queue is drained after Close, so the free must not be dropped.
	alloc.Free(buf, s)
	mem.AssertSize(t, 0)
}

func TestAllocator_ConcurrentStreams(t *testing.T) {
	alloc := stream.NewAllocator(nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := stream.New()
			defer s.Close()
			for j := 0; j < 50; j++ {
				buf, err := alloc.Allocate(32, s)
				require.NoError(t, err)
				alloc.Free(buf, s)
			}
			require.NoError(t, s.Sync())
		}()
	}
	wg.Wait()
}
