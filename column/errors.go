package column

import "errors"

var (
	// ErrNilArray indicates a nil arrow.Array was passed to Wrap.
	ErrNilArray = errors.New("column: nil arrow array")
	// ErrTypeMismatch indicates a typed accessor was called on a Buffer of a
	// different dtype.
	ErrTypeMismatch = errors.New("column: buffer dtype mismatch")
)
