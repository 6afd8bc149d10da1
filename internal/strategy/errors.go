package strategy

import "errors"

// Domain errors for the strategy package.
var (
	// ErrIndexOutOfRange is returned by Select for an index outside the
	// user's catalog replica. The strategy is unchanged.
	ErrIndexOutOfRange = errors.New("strategy: index out of range")

	// ErrStrategyClosed is returned when a strategy that has already been
	// finished is modified, run, or finished again.
	ErrStrategyClosed = errors.New("strategy: closed")

	// ErrUnterminated is returned by RunAll when the picks contain no
	// finish signal.
	ErrUnterminated = errors.New("strategy: no finish signal")

	// ErrExecutionNotFound is returned when an execution ID does not exist.
	ErrExecutionNotFound = errors.New("strategy: execution not found")
)
