package session

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when a summary is requested while another is in flight.
	ErrBusy = errors.New("a summary is already being generated")

	// ErrNoEngine is returned when the inference engine failed to initialize.
	ErrNoEngine = errors.New("inference engine unavailable")

	// ErrEmptyWindow is returned when there are no messages to summarize.
	ErrEmptyWindow = errors.New("no messages to summarize")
)

// ParseError reports window-size text that is not a positive integer.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid message count %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid message count %q: must be a positive integer", e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }
