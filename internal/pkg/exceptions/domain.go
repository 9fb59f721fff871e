package exceptions

import (
	"errors"
	"fmt"
)

var (
	ErrNIKRequired        = errors.New("nik is required")
	ErrInvalidNIK         = errors.New("nik is too short")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrUnknownPatient     = errors.New("nik does not match the loaded patient record")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrDraftNotFound      = errors.New("draft not found")
)

type ErrorKind string

const (
	KindNetwork  ErrorKind = "network"
	KindTimeout  ErrorKind = "timeout"
	KindHTTP     ErrorKind = "http"
	KindNotFound ErrorKind = "not_found"
	KindDecode   ErrorKind = "decode"
)

// FetchError reports a failed read of a patient record. Message is safe to
// show to the user; Err keeps the underlying cause for logs.
type FetchError struct {
	Kind       ErrorKind
	NIK        string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch patient %s (%s): %s: %v", e.NIK, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch patient %s (%s): %s", e.NIK, e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrPatientNotFound:
		return e.Kind == KindNotFound
	case ErrRequestTimeout:
		return e.Kind == KindTimeout
	}
	return false
}

// SubmissionError reports a failed write of an encounter. Message carries the
// server provided message when there was one.
type SubmissionError struct {
	Kind       ErrorKind
	NIK        string
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submit medical record %s (%s): %s: %v", e.NIK, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("submit medical record %s (%s): %s", e.NIK, e.Kind, e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func (e *SubmissionError) Is(target error) bool {
	return target == ErrRequestTimeout && e.Kind == KindTimeout
}

// UserMessage returns the text a presentation layer should show for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Message
	}
	var submissionErr *SubmissionError
	if errors.As(err, &submissionErr) {
		return submissionErr.Message
	}
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return validationErrs[0].Field + " " + validationErrs[0].Message
	}
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.ClientMessage
	}
	return err.Error()
}
