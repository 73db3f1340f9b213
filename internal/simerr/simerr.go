// Package simerr provides a structured error type for the
// scenario/config errors described in spec.md §7: bad CLI flags,
// malformed scenario files, out-of-range parameters. These are always
// fatal (reported to stderr, process exits non-zero) and are distinct
// from simulated-runtime events (SEGV, SEGPROT, ...), which are
// per-process counters/trace lines and never abort a run.
package simerr

import (
	"errors"
	"fmt"
)

// Code categorizes an Error at a level coarser than its message.
type Code string

const (
	CodeBadFlag       Code = "bad flag"
	CodeBadScenario   Code = "malformed scenario"
	CodeBadRandomFile Code = "malformed random file"
	CodeOutOfRange    Code = "parameter out of range"
	CodeIO            Code = "I/O error"
)

// Error is a structured setup error carrying the operation that failed,
// a coarse Code, a human-readable Msg, and optionally a wrapped Inner
// error plus free-form Context (e.g. "line", "file").
type Error struct {
	Op      string
	Code    Code
	Msg     string
	Inner   error
	Context map[string]string
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op == "" {
		return fmt.Sprintf("ossim: %s", msg)
	}
	return fmt.Sprintf("ossim: %s: %s", e.Op, msg)
}

// Unwrap supports errors.Is/As against Inner.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.Code == te.Code
	}
	return false
}

// New creates an Error with no wrapped cause.
func New(op string, code Code, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// Newf creates an Error with a formatted message.
func Newf(op string, code Code, format string, args ...any) *Error {
	return &Error{Op: op, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// WithContext attaches a key/value pair (e.g. "line", "42") and returns
// the same Error for chaining.
func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// Wrap wraps an existing error under a new operation name. A nil inner
// error yields a nil *Error, so Wrap is safe to call unconditionally.
func Wrap(op string, code Code, inner error) *Error {
	if inner == nil {
		return nil
	}
	if se, ok := inner.(*Error); ok {
		return &Error{Op: op, Code: se.Code, Msg: se.Msg, Inner: se, Context: se.Context}
	}
	return &Error{Op: op, Code: code, Msg: inner.Error(), Inner: inner}
}

// IsCode reports whether err is (or wraps) an *Error with the given Code.
func IsCode(err error, code Code) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
