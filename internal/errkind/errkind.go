// Package errkind defines the structured error type shared by every
// trackrelay package, so a decode failure in internal/wire, a queue
// overflow in internal/queue, and a bind failure in internal/transport all
// carry the same shape. The top-level package re-exports these types as
// its public API.
package errkind

import (
	"errors"
	"fmt"
)

// Code categorizes a pipeline error by the kind of failure it represents.
type Code string

const (
	CodeDecodeFailure     Code = "decode failure"
	CodeInvalidRecord     Code = "invalid record"
	CodeSendFailure       Code = "send failure"
	CodeQueueOverflow     Code = "queue overflow"
	CodeSocketFailure     Code = "socket construction failure"
	CodeSchedulingFailure Code = "rt scheduling/affinity failure"
)

// Error is a structured pipeline error carrying the owning stage and the
// originating operation.
type Error struct {
	Op    string // operation that failed, e.g. "receiver.bind"
	Stage string // owning stage name, e.g. "stageA" ("" if not applicable)
	Code  Code
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.Stage != "" {
		parts = append(parts, fmt.Sprintf("stage=%s", e.Stage))
	}

	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}

	if len(parts) > 0 {
		return fmt.Sprintf("trackrelay: %s (%s)", msg, parts[0])
	}
	return fmt.Sprintf("trackrelay: %s", msg)
}

// Unwrap supports errors.Is/As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is compares structured errors by Code, so errors.Is treats any two
// *Error values of the same Code as equivalent regardless of Op/Stage/Msg.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// New creates a new structured error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// NewOp creates a new structured error scoped to an operation.
func NewOp(op string, code Code, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// NewStage creates a new stage-scoped structured error.
func NewStage(op, stage string, code Code, msg string) *Error {
	return &Error{Op: op, Stage: stage, Code: code, Msg: msg}
}

// Wrap wraps an existing error with trackrelay context, preserving the code
// of an inner *Error if present.
func Wrap(op string, code Code, inner error) *Error {
	if inner == nil {
		return nil
	}
	if ie, ok := inner.(*Error); ok {
		return &Error{Op: op, Stage: ie.Stage, Code: ie.Code, Msg: ie.Msg, Inner: ie.Inner}
	}
	return &Error{Op: op, Code: code, Msg: inner.Error(), Inner: inner}
}

// Is reports whether err is (or wraps) a structured Error of the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
