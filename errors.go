// Package trackrelay implements the shared per-stage real-time processing
// engine for a three-stage track-data pipeline: record codec, bounded event
// queues, RT thread scheduling, group-filtered UDP multicast transport, and
// the stage A/B/C domain workers that compute the pipeline's delay budget.
package trackrelay

import "github.com/behrlich/trackrelay/internal/errkind"

// Error, ErrorCode and the constructor/predicate functions are re-exported
// from internal/errkind for public API use.
type (
	Error     = errkind.Error
	ErrorCode = errkind.Code
)

const (
	ErrCodeDecodeFailure     = errkind.CodeDecodeFailure
	ErrCodeInvalidRecord     = errkind.CodeInvalidRecord
	ErrCodeSendFailure       = errkind.CodeSendFailure
	ErrCodeQueueOverflow     = errkind.CodeQueueOverflow
	ErrCodeSocketFailure     = errkind.CodeSocketFailure
	ErrCodeSchedulingFailure = errkind.CodeSchedulingFailure
)

// NewError creates a new structured error.
func NewError(op string, code ErrorCode, msg string) *Error {
	return errkind.NewOp(op, code, msg)
}

// NewStageError creates a new stage-scoped structured error.
func NewStageError(op, stage string, code ErrorCode, msg string) *Error {
	return errkind.NewStage(op, stage, code, msg)
}

// WrapError wraps an existing error with trackrelay context.
func WrapError(op string, code ErrorCode, inner error) *Error {
	return errkind.Wrap(op, code, inner)
}

// IsCode reports whether err is (or wraps) a structured Error of the given code.
func IsCode(err error, code ErrorCode) bool {
	return errkind.Is(err, code)
}
