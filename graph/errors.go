// SPDX-License-Identifier: MIT

package graph

import "errors"

// Sentinel errors for handle operations. All are returned wrapped with
// call-site context; match with errors.Is. Device-side failures surface as
// stream.ErrDeviceFailure joined under ErrConversionFailed.
var (
	// ErrInvalidState indicates an operation not valid for the current
	// representation set: a second View on a populated handle, or a
	// derivation whose source layout is missing.
	ErrInvalidState = errors.New("graph: operation invalid for current representations")

	// ErrSchemaMismatch indicates a dtype or size violation between paired
	// buffers (non-int32 index columns, differing lengths, null entries).
	ErrSchemaMismatch = errors.New("graph: buffer dtype or size mismatch")

	// ErrEmptyInput indicates a zero-length required buffer.
	ErrEmptyInput = errors.New("graph: required buffer is empty")

	// ErrInvalidEdges indicates the structural indexing check over the
	// (src, dest) pairs failed.
	ErrInvalidEdges = errors.New("graph: edge index validation failed")

	// ErrUnsupportedType indicates a numeric kind outside the supported set
	// (int8/16/32/64, float32/64 for weights; int32 for indices).
	ErrUnsupportedType = errors.New("graph: unsupported numeric type")

	// ErrConversionFailed indicates the format converter failed, typically
	// because of an allocation or execution failure on the stream.
	ErrConversionFailed = errors.New("graph: representation conversion failed")

	// ErrVertexOutOfRange indicates a vertex id outside [0, V).
	ErrVertexOutOfRange = errors.New("graph: vertex id out of range")
)
