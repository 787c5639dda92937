package engine

import (
	"context"
	"errors"
	"io"
	"syscall"
)

// ReadError is a failure while pulling a line from the input.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "read input: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is a failure while writing to the output or issuing terminal
// control. Op names what was being written.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

func writeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &WriteError{Op: op, Err: err}
}

// IsBrokenPipe reports whether err is a broken or closed pipe, i.e. the
// downstream consumer (like `head`) went away early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// IsInterrupted reports whether err came from cancelling the run context.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
