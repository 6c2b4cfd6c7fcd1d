// Package judgeerr defines the closed set of error kinds the judge
// distinguishes when deciding whether to fail a case, abort a batch, or
// propagate. Modeled on sandbox.EnforcementError's typed-error-with-Error()
// shape rather than a grab bag of fmt.Errorf strings.
package judgeerr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories the judge recognizes.
type Kind int

const (
	// NotFound: a referenced file (input, answer, checker, interactor,
	// target) is missing. Fails the case/batch before spawning.
	NotFound Kind = iota
	// IO: a pipe or file read/write failure other than expected EOF or
	// broken-pipe. Propagates and aborts.
	IO
	// Argument: an unknown compare mode or unknown sandbox profile.
	// Rejected early, before any process is spawned.
	Argument
	// UserProgram: the checker or interactor produced output the judge
	// could not interpret as a verdict token. Aborts the case with a
	// diagnostic; never silently classified.
	UserProgram
	// Utf8: non-UTF-8 bytes where text was required (checker stdout).
	Utf8
	// Environment: a required external tool (sandbox binary, checker,
	// interactor) could not be located or started. Fails the batch.
	Environment
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case IO:
		return "io"
	case Argument:
		return "argument"
	case UserProgram:
		return "user_program"
	case Utf8:
		return "utf8"
	case Environment:
		return "environment"
	default:
		return "unknown"
	}
}

// Error is a judge error tagged with its Kind, so callers can decide
// "abort case" vs "abort batch" without string-matching messages.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a judgeerr.Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a judgeerr.Error that wraps an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Is reports whether err wraps a judgeerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var je *Error
	if !errors.As(err, &je) {
		return false
	}
	return je.Kind == kind
}
