package stream

import (
	"sync"

	"github.com/apache/arrow/go/v14/arrow/memory"
)

// Allocator provides stream-ordered allocate/free on top of an Arrow
// memory.Allocator. A single Allocator may serve any number of streams
// concurrently; the underlying allocator is guarded by a mutex.
type Allocator struct {
	mu  sync.Mutex
	mem memory.Allocator
}

// NewAllocator wraps mem. A nil mem falls back to memory.NewGoAllocator().
func NewAllocator(mem memory.Allocator) *Allocator {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	return &Allocator{mem: mem}
}

// Allocate performs a stream-ordered allocation of size bytes on s and
// blocks until it completes. Allocation failure is fatal for the stream
// and surfaces as an ErrDeviceFailure-wrapped error; it is not retried.
func (a *Allocator) Allocate(size int, s *Stream) ([]byte, error) {
	var buf []byte
	if err := s.Submit("allocate", func() error {
		a.mu.Lock()
		defer a.mu.Unlock()
		buf = a.mem.Allocate(size)

		return nil
	}); err != nil {
		return nil, err
	}
	if err := s.Sync(); err != nil {
		return nil, err
	}

	return buf, nil
}

// Reallocate performs a stream-ordered resize of data to size bytes on s
// and blocks until it completes.
func (a *Allocator) Reallocate(size int, data []byte, s *Stream) ([]byte, error) {
	var buf []byte
	if err := s.Submit("reallocate", func() error {
		a.mu.Lock()
		defer a.mu.Unlock()
		buf = a.mem.Reallocate(size, data)

		return nil
	}); err != nil {
		return nil, err
	}
	if err := s.Sync(); err != nil {
		return nil, err
	}

	return buf, nil
}

// Free schedules a stream-ordered free of data on s. It does not block;
// the free runs after all work already queued on s.
//
// On a closed stream the queue has already drained, so the free runs
// immediately instead of being dropped. On a poisoned stream queued frees
// are skipped like any other task: device failure is fatal and reclaiming
// the wrapped allocator's memory is left to the process.
func (a *Allocator) Free(data []byte, s *Stream) {
	err := s.Submit("free", func() error {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.mem.Free(data)

		return nil
	})
	if err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.mem.Free(data)
	}
}

// Arrow returns a memory.Allocator that hits the wrapped allocator directly
// under the Allocator's lock. It is meant for use inside a stream task,
// where ordering is already provided by the enclosing task; outside of tasks
// use Bind instead.
func (a *Allocator) Arrow() memory.Allocator {
	return &lockedAllocator{alloc: a}
}

// lockedAllocator serializes raw allocator access across streams.
type lockedAllocator struct {
	alloc *Allocator
}

func (l *lockedAllocator) Allocate(size int) []byte {
	l.alloc.mu.Lock()
	defer l.alloc.mu.Unlock()

	return l.alloc.mem.Allocate(size)
}

func (l *lockedAllocator) Reallocate(size int, data []byte) []byte {
	l.alloc.mu.Lock()
	defer l.alloc.mu.Unlock()

	return l.alloc.mem.Reallocate(size, data)
}

func (l *lockedAllocator) Free(data []byte) {
	l.alloc.mu.Lock()
	defer l.alloc.mu.Unlock()
	l.alloc.mem.Free(data)
}

// Bind ties the Allocator to one Stream and returns a memory.Allocator whose
// calls all run stream-ordered on that stream. This is how Arrow builders
// allocate through a stream without knowing about it.
//
// The bound allocator must not be used from inside a task running on the
// same stream: its calls submit and wait on that stream.
func (a *Allocator) Bind(s *Stream) memory.Allocator {
	return &boundAllocator{alloc: a, s: s}
}

// boundAllocator adapts (Allocator, Stream) to the memory.Allocator
// interface. Per that contract, allocation failure panics; here a poisoned
// or closed stream is such a failure.
type boundAllocator struct {
	alloc *Allocator
	s     *Stream
}

func (b *boundAllocator) Allocate(size int) []byte {
	buf, err := b.alloc.Allocate(size, b.s)
	if err != nil {
		panic(err)
	}

	return buf
}

func (b *boundAllocator) Reallocate(size int, data []byte) []byte {
	buf, err := b.alloc.Reallocate(size, data, b.s)
	if err != nil {
		panic(err)
	}

	return buf
}

func (b *boundAllocator) Free(data []byte) {
	b.alloc.Free(data, b.s)
}
