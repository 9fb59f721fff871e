package exceptions

import (
	"context"
	"emr-service/internal/pkg/constvars"
	"errors"
	"fmt"
)

// ToCustomError translates domain errors into the HTTP facing CustomError.
// Errors that already are a CustomError are returned unchanged; anything
// unrecognised yields nil.
func ToCustomError(err error) *CustomError {
	if err == nil {
		return nil
	}

	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		mapped := BuildNewCustomError(err, constvars.StatusUnprocessableEntity, constvars.ErrClientValidationFailed, constvars.ErrDevValidationFailed)
		mapped.Errors = validationErrs
		return mapped
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return BuildNewCustomError(err, remoteStatusCode(fetchErr.Kind), fetchErr.Message, remoteDevMessage(fetchErr.Kind, fetchErr.NIK, fetchErr.StatusCode))
	}

	var submissionErr *SubmissionError
	if errors.As(err, &submissionErr) {
		return BuildNewCustomError(err, remoteStatusCode(submissionErr.Kind), submissionErr.Message, remoteDevMessage(submissionErr.Kind, submissionErr.NIK, submissionErr.StatusCode))
	}

	switch {
	case errors.Is(err, ErrNIKRequired):
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientNoNIKProvided, constvars.ErrDevNIKRequired)
	case errors.Is(err, ErrInvalidNIK):
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidNIK, fmt.Sprintf(constvars.ErrDevNIKTooShort, constvars.NIKMinLength))
	case errors.Is(err, ErrUnknownPatient):
		return BuildNewCustomError(err, constvars.StatusPreconditionFailed, constvars.ErrClientUnknownPatient, constvars.ErrDevServerProcess)
	case errors.Is(err, ErrSubmissionInFlight):
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSubmissionInFlight, constvars.ErrDevServerProcess)
	case errors.Is(err, ErrWorkspaceNotFound):
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientWorkspaceNotFound, constvars.ErrDevServerProcess)
	case errors.Is(err, ErrDraftNotFound):
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientDraftNotFound, constvars.ErrDevServerProcess)
	case errors.Is(err, context.DeadlineExceeded):
		return ErrServerDeadlineExceeded(err)
	}
	return nil
}

func remoteStatusCode(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return constvars.StatusNotFound
	case KindTimeout:
		return constvars.StatusGatewayTimeout
	default:
		return constvars.StatusBadGateway
	}
}

func remoteDevMessage(kind ErrorKind, nik string, statusCode int) string {
	switch kind {
	case KindNotFound:
		return fmt.Sprintf(constvars.ErrDevPatientNotFound, nik)
	case KindTimeout:
		return fmt.Sprintf(constvars.ErrDevRemoteTimeout, nik)
	case KindDecode:
		return fmt.Sprintf(constvars.ErrDevDecodePatientRecord, nik)
	case KindHTTP:
		return fmt.Sprintf(constvars.ErrDevRemoteStatus, statusCode, nik)
	default:
		return fmt.Sprintf(constvars.ErrDevRemoteNetwork, nik)
	}
}
