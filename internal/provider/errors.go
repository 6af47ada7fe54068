package provider

import (
	"errors"
	"fmt"
)

// ErrNoQuestions indicates the provider returned an empty result for a
// request that needs at least one item.
var ErrNoQuestions = errors.New("no questions available")

// ErrRequest indicates the remote question bank rejected a request or
// could not be reached.
type ErrRequest struct {
	Status int
	Body   string
	Err    error
}

func (e *ErrRequest) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question bank request failed: %v", e.Err)
	}
	return fmt.Sprintf("question bank returned %d: %s", e.Status, e.Body)
}

func (e *ErrRequest) Unwrap() error { return e.Err }

// ErrInvalidPayload indicates the remote returned data that does not
// conform to the expected shape even after normalization.
type ErrInvalidPayload struct {
	Err error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid question bank payload: %v", e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }
