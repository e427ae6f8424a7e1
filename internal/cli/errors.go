package cli

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// ErrForbidden is returned when the active role may not use a collection.
var ErrForbidden = errors.New("role may not access collection")

// ErrAppendOnly is returned by set and delete on the audit log.
var ErrAppendOnly = errors.New("collection is append-only")

// systemError marks a failure of storage or I/O rather than of user input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

// sysErr wraps err as a system error with context.
func sysErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: fmt.Errorf("%s: %w", context, err)}
}

// ExitCode maps an error returned by a command to the process exit code.
// Bad input, unknown names and rejected data exit 1; storage and I/O
// failures exit 2.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
