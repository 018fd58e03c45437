package stream

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultQueueDepth is the task queue capacity used when WithQueueDepth is
// not given.
const DefaultQueueDepth = 64

// task is one unit of stream-ordered work.
type task struct {
	name string
	fn   func() error
}

// Option configures a Stream before its worker starts.
type Option func(*Stream)

// WithLogger injects a structured logger for per-task diagnostics.
// A nil logger (the default) keeps the stream silent.
func WithLogger(logger *log.Logger) Option {
	return func(s *Stream) { s.logger = logger }
}

// WithQueueDepth sets the capacity of the task queue.
// Panics if depth <= 0 (programmer error).
func WithQueueDepth(depth int) Option {
	if depth <= 0 {
		panic("stream: queue depth must be > 0")
	}

	return func(s *Stream) { s.tasks = make(chan task, depth) }
}

// Stream is a serial FIFO executor for accelerator-style work.
//
// Tasks run one at a time in submission order on a dedicated goroutine.
// The first task failure poisons the stream: remaining and future tasks are
// skipped and every subsequent Sync reports the original failure wrapped
// around ErrDeviceFailure. A Stream is safe for concurrent Submit/Sync from
// multiple goroutines, though trigraph handles serialize access themselves.
type Stream struct {
	tasks  chan task
	wg     sync.WaitGroup
	logger *log.Logger

	mu     sync.Mutex
	err    error
	closed bool
}

// New starts a Stream and its worker goroutine.
//
// Complexity: O(1)
func New(opts ...Option) *Stream {
	s := &Stream{}
	for _, opt := range opts {
		opt(s)
	}
	if s.tasks == nil {
		s.tasks = make(chan task, DefaultQueueDepth)
	}
	go s.run()

	return s
}

// Submit enqueues fn under a diagnostic name. It never blocks on the work
// itself, only on queue capacity. Returns ErrClosed after Close.
func (s *Stream) Submit(name string, fn func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return ErrClosed
	}
	s.wg.Add(1)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Debug("enqueue", "task", name)
	}
	s.tasks <- task{name: name, fn: fn}

	return nil
}

// Sync blocks until every task enqueued so far has completed and returns the
// stream's failure state. Once poisoned, every Sync reports the same error.
func (s *Stream) Sync() error {
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Err reports the stream's failure state without waiting.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Close drains the queue, stops the worker and marks the stream closed.
// Idempotent. Returns the stream's failure state, like Sync.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return s.Err()
	}
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
	close(s.tasks)

	return s.Err()
}

// run is the worker loop; exactly one per Stream.
func (s *Stream) run() {
	for t := range s.tasks {
		s.execute(t)
		s.wg.Done()
	}
}

// execute runs one task unless the stream is already poisoned.
func (s *Stream) execute(t task) {
	s.mu.Lock()
	poisoned := s.err != nil
	s.mu.Unlock()
	if poisoned {
		if s.logger != nil {
			s.logger.Debug("skip (stream poisoned)", "task", t.name)
		}

		return
	}

	if err := runGuarded(t.fn); err != nil {
		s.mu.Lock()
		s.err = fmt.Errorf("%w: task %q: %v", ErrDeviceFailure, t.name, err)
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Error("task failed", "task", t.name, "err", err)
		}
	}
}

// runGuarded converts a panicking task into an error so one bad kernel
// cannot take down the worker goroutine.
func runGuarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return fn()
}
