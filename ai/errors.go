package ai

import "errors"

var (
	// ErrEmptyInstruction indicates the instruction was empty after trimming.
	ErrEmptyInstruction = errors.New("instruction cannot be empty")

	// ErrUnknownOperation indicates the classifier selected an operation
	// outside the fixed set.
	ErrUnknownOperation = errors.New("unknown operation")
)
