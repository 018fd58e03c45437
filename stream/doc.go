// Package stream models the execution side of trigraph: work against the
// accelerator is queued on an execution Stream and runs in submission order,
// while the public graph operations block until the queued work completes.
//
// A Stream is a serial FIFO executor. Submit enqueues a named unit of work;
// Sync blocks until everything enqueued so far has run and reports the first
// failure, wrapped around ErrDeviceFailure. A failed Stream is poisoned:
// remaining and future work is skipped and every later Sync reports the
// original failure. There is no cancellation and no retry.
//
// Allocator provides the stream-ordered allocate/free contract on top of an
// Arrow memory.Allocator. Bind ties an Allocator to one Stream and satisfies
// memory.Allocator itself, so Arrow builders allocate through the stream
// transparently. One Allocator may be shared by any number of streams;
// it is safe for concurrent use.
//
// Streams are silent by default; inject a *log.Logger for per-task
// diagnostics.
package stream
