// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/trigraph/stream"
)

// EdgeValidator is the pluggable indexing check run over the (src, dest)
// index pairs when an edge list is installed. A non-nil return fails the
// install with ErrInvalidEdges and leaves the handle untouched.
type EdgeValidator func(src, dest []int32) error

// DefaultEdgeValidator rejects negative vertex ids, the only structural
// violation detectable before the vertex count is known.
func DefaultEdgeValidator(src, dest []int32) error {
	for i := range src {
		if src[i] < 0 || dest[i] < 0 {
			return fmt.Errorf("edge %d: negative vertex id (%d, %d)", i, src[i], dest[i])
		}
	}

	return nil
}

// Option configures a Handle at construction time.
type Option func(*Handle)

// WithAllocator installs a shared stream-ordered allocator. One allocator
// may serve handles on different streams concurrently. The default is a
// fresh allocator over the Go heap.
func WithAllocator(alloc *stream.Allocator) Option {
	return func(h *Handle) { h.alloc = alloc }
}

// WithStream runs the handle's work on a caller-owned stream. The handle
// will not close it; without this option the handle creates and owns one.
func WithStream(s *stream.Stream) Option {
	return func(h *Handle) { h.str = s }
}

// WithLogger enables structured diagnostics for the handle and, when the
// handle owns its stream, for the stream's tasks. Nil keeps both silent.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handle) { h.logger = logger }
}

// WithEdgeValidator replaces the indexing check run by ViewAsEdgeList.
// Panics on a nil validator (programmer error); use a no-op func to disable.
func WithEdgeValidator(v EdgeValidator) Option {
	if v == nil {
		panic("graph: nil edge validator")
	}

	return func(h *Handle) { h.validate = v }
}
