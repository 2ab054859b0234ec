package app

import (
	"errors"
	"fmt"
)

// ErrQuit signals a normal, user-requested exit from Run.
var ErrQuit = errors.New("quit requested")

// ErrAlreadyRunning is returned by Run when the event loop is active.
var ErrAlreadyRunning = errors.New("application already running")

// InitError reports a component that failed to initialize during New.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
