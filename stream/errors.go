// SPDX-License-Identifier: MIT

package stream

import "errors"

var (
	// ErrDeviceFailure indicates a queued unit of work failed. The failure is
	// fatal for the stream: it is never retried and the stream stays poisoned.
	ErrDeviceFailure = errors.New("stream: device execution failure")
	// ErrClosed indicates a Submit or Sync on a stream after Close.
	ErrClosed = errors.New("stream: stream closed")
)
