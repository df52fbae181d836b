package workflow

import (
	"errors"
	"fmt"
)

// Process exit codes. Each fatal failure site gets its own code so the
// caller can tell them apart; user cancellation exits zero.
const (
	ExitOK = 0

	// ExitDelegatedFailure covers failures of the package manager or the
	// installed tool, whose own output is the only detail surfaced.
	ExitDelegatedFailure = 1

	ExitRunAsRoot         = 10
	ExitUnsupportedOS     = 11
	ExitDescriptorMissing = 12
	ExitBadTrustKey       = 13
	ExitToolUnresolved    = 14
	ExitInterrupted       = 130
)

// ErrCanceled is returned by a step when the operator declines to
// continue. It stops the workflow but is a normal, zero-exit outcome.
var ErrCanceled = errors.New("canceled by operator")

// FatalError aborts the workflow immediately and carries the process exit
// code for its failure site.
type FatalError struct {
	Code int
	Err  error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatalf builds a FatalError with the given exit code.
func Fatalf(code int, format string, args ...interface{}) *FatalError {
	return &FatalError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode maps a workflow error to the process exit status.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrCanceled) {
		return ExitOK
	}

	var fatal *FatalError
	if errors.As(err, &fatal) {
		return fatal.Code
	}

	return ExitDelegatedFailure
}
