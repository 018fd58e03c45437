package convert

import "errors"

var (
	// ErrLengthMismatch indicates paired edge columns of different lengths.
	ErrLengthMismatch = errors.New("convert: edge columns differ in length")
	// ErrUnsupportedType indicates a weight dtype outside the six supported
	// numeric kinds.
	ErrUnsupportedType = errors.New("convert: unsupported numeric type")
)
