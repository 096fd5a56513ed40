package common

import (
	"errors"
	"fmt"

	"cms-ui/logger"
)

// ErrUnauthorized marks failed credential checks and missing, invalid
// or expired session tokens. Handlers translate it to HTTP 401.
var ErrUnauthorized = errors.New("invalid username or password")

// ValidationError reports a malformed settings or navigation payload.
// Handlers translate it to HTTP 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationErrorf(format string, a ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, a...)}
}

// FatalError marks conditions that must abort the operation instead of
// degrading silently: entropy failure, or a production deployment with
// no durable tier reachable for a write that must be durable.
type FatalError struct {
	Msg   string
	Cause error
}

func (e *FatalError) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}

func NewFatalError(msg string, cause error) error {
	return &FatalError{Msg: msg, Cause: cause}
}

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
