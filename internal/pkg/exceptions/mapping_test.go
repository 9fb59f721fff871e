package exceptions

import (
	"context"
	"emr-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCustomError(t *testing.T) {
	t.Run("validation errors become 422 with field list", func(t *testing.T) {
		err := ValidationErrors{{Field: "diagnosis.doctor", Tag: "required", Message: "is required"}}

		customErr := ToCustomError(err)

		require.NotNil(t, customErr)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		assert.Equal(t, []FieldError(err), customErr.Errors)
	})

	t.Run("not found fetch maps to 404", func(t *testing.T) {
		err := &FetchError{Kind: KindNotFound, NIK: "3201234567890123", Message: constvars.ErrClientPatientNotFound}

		customErr := ToCustomError(err)

		require.NotNil(t, customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
		assert.Equal(t, constvars.ErrClientPatientNotFound, customErr.ClientMessage)
	})

	t.Run("submission timeout maps to 504", func(t *testing.T) {
		err := &SubmissionError{Kind: KindTimeout, NIK: "3201234567890123", Message: constvars.ErrClientSaveRecordTimeout}

		customErr := ToCustomError(err)

		require.NotNil(t, customErr)
		assert.Equal(t, constvars.StatusGatewayTimeout, customErr.StatusCode)
	})

	t.Run("server message of failed submission is kept", func(t *testing.T) {
		err := &SubmissionError{Kind: KindHTTP, StatusCode: 500, NIK: "3201234567890123", Message: "db unavailable"}

		customErr := ToCustomError(fmt.Errorf("wrapped: %w", err))

		require.NotNil(t, customErr)
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
		assert.Equal(t, "db unavailable", customErr.ClientMessage)
	})

	t.Run("sentinels map to their status codes", func(t *testing.T) {
		cases := map[error]int{
			ErrInvalidNIK:            constvars.StatusBadRequest,
			ErrNIKRequired:           constvars.StatusBadRequest,
			ErrUnknownPatient:        constvars.StatusPreconditionFailed,
			ErrSubmissionInFlight:    constvars.StatusConflict,
			ErrWorkspaceNotFound:     constvars.StatusNotFound,
			context.DeadlineExceeded: constvars.StatusGatewayTimeout,
		}
		for err, status := range cases {
			customErr := ToCustomError(err)
			require.NotNil(t, customErr, err.Error())
			assert.Equal(t, status, customErr.StatusCode, err.Error())
		}
	})

	t.Run("unknown errors are left to the caller", func(t *testing.T) {
		assert.Nil(t, ToCustomError(errors.New("boom")))
		assert.Nil(t, ToCustomError(nil))
	})
}

func TestFetchErrorMatchesSentinels(t *testing.T) {
	notFound := &FetchError{Kind: KindNotFound}
	timeout := &FetchError{Kind: KindTimeout}
	network := &FetchError{Kind: KindNetwork}

	assert.ErrorIs(t, notFound, ErrPatientNotFound)
	assert.ErrorIs(t, timeout, ErrRequestTimeout)
	assert.False(t, errors.Is(network, ErrPatientNotFound))
	assert.False(t, errors.Is(network, ErrRequestTimeout))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "db unavailable", UserMessage(&SubmissionError{Kind: KindHTTP, Message: "db unavailable"}))
	assert.Equal(t, constvars.ErrClientFailedToFetchPatient, UserMessage(fmt.Errorf("x: %w", &FetchError{Message: constvars.ErrClientFailedToFetchPatient})))
	assert.Equal(t, "disposition.nextAppointment must not be earlier than today", UserMessage(ValidationErrors{{Field: "disposition.nextAppointment", Message: "must not be earlier than today"}}))
	assert.Equal(t, "", UserMessage(nil))
}
