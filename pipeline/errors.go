package pipeline

import (
	"errors"
	"fmt"
)

// ErrorKind tags a pipeline failure so the transport layer can map it
// onto a response without inspecting messages.
type ErrorKind string

const (
	KindEmptyInput     ErrorKind = "empty_input"
	KindExtraction     ErrorKind = "extraction_error"
	KindClassification ErrorKind = "classification_error"
	KindGeneration     ErrorKind = "generation_error"
	KindService        ErrorKind = "service_error"
)

// Error is the tagged failure type for a pipeline run. Every stage
// fails fast: no partial result accompanies an Error.
type Error struct {
	Kind    ErrorKind
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

// KindOf extracts the failure kind from an error chain; unrecognized
// errors report as service errors.
func KindOf(err error) ErrorKind {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return KindService
}
