package embedding

import "errors"

var (
	// ErrInvalidDimensions is returned when vector dimensions don't match the table
	ErrInvalidDimensions = errors.New("invalid vector dimensions")

	// ErrIndexOutOfRange is returned when a vocabulary entry points past the matrix
	ErrIndexOutOfRange = errors.New("vocabulary index out of range")
)
