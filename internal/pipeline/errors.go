package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure for fault attribution at the HTTP
// boundary.
type Kind int

const (
	// KindInternal is any unexpected failure; server fault.
	KindInternal Kind = iota
	// KindInput is malformed or missing request data; client fault.
	KindInput
	// KindInference is a failed model invocation or an output whose shape
	// does not match the vocabulary; server fault.
	KindInference
	// KindIO is a persistence failure; server fault.
	KindIO
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func inputError(message string, err error) *Error {
	return &Error{Kind: KindInput, Message: message, Err: err}
}

func inferenceError(message string, err error) *Error {
	return &Error{Kind: KindInference, Message: message, Err: err}
}

func internalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the classification for err, defaulting to KindInternal for
// anything the pipeline did not classify itself.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindInternal
}
