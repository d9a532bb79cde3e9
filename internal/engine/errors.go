package engine

import "fmt"

// InitError means the local model could not be loaded. Summaries are
// unavailable for the rest of the session.
type InitError struct {
	ServerURL string
	Model     string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize engine (server=%s model=%s): %v", e.ServerURL, e.Model, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// InferenceError is a failed summarization call.
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference (model=%s): %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
