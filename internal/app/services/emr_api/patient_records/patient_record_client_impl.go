package patient_records

import (
	"bytes"
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type patientRecordClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
}

// NewPatientRecordClient builds a client for {baseUrl}/api/pasien. A zero
// maxRequestsPerSecond disables outbound pacing.
func NewPatientRecordClient(baseUrl string, timeout time.Duration, maxRequestsPerSecond int, logger *zap.Logger) contracts.PatientRecordClient {
	client := &patientRecordClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/") + constvars.ResourcePasien,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
	if maxRequestsPerSecond > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), maxRequestsPerSecond)
	}
	return client
}

type serverMessage struct {
	Message string `json:"message"`
}

func (c *patientRecordClient) FindPatientByNIK(ctx context.Context, nik string) (*models.PatientRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRecordClient.FindPatientByNIK called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNIKKey, nik),
	)

	fail := func(kind exceptions.ErrorKind, statusCode int, message string, err error) error {
		fetchErr := &exceptions.FetchError{Kind: kind, NIK: nik, StatusCode: statusCode, Message: message, Err: err}
		c.Log.Error("patientRecordClient.FindPatientByNIK failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
			zap.String(constvars.LoggingErrorKindKey, string(kind)),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			zap.Error(err),
		)
		return fetchErr
	}

	if err := c.wait(ctx); err != nil {
		kind := transportErrorKind(err)
		return nil, fail(kind, 0, fetchMessage(kind), err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, c.resourceURL(nik), nil)
	if err != nil {
		return nil, fail(exceptions.KindNetwork, 0, constvars.ErrClientFailedToFetchPatient, exceptions.ErrCreateHTTPRequest(err))
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		kind := transportErrorKind(err)
		return nil, fail(kind, 0, fetchMessage(kind), err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		kind := transportErrorKind(err)
		return nil, fail(kind, resp.StatusCode, fetchMessage(kind), err)
	}

	if resp.StatusCode == constvars.StatusNotFound {
		return nil, fail(exceptions.KindNotFound, resp.StatusCode, constvars.ErrClientPatientNotFound, nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := extractServerMessage(bodyBytes, constvars.ErrClientFailedToFetchPatient)
		return nil, fail(exceptions.KindHTTP, resp.StatusCode, message, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	record := new(models.PatientRecord)
	err = json.Unmarshal(bodyBytes, record)
	if err != nil {
		return nil, fail(exceptions.KindDecode, resp.StatusCode, constvars.ErrClientMalformedPatientRecord, err)
	}
	err = record.Validate(nik)
	if err != nil {
		return nil, fail(exceptions.KindDecode, resp.StatusCode, constvars.ErrClientMalformedPatientRecord, err)
	}

	c.Log.Info("patientRecordClient.FindPatientByNIK succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNIKKey, nik),
	)
	return record, nil
}

func (c *patientRecordClient) AppendEncounter(ctx context.Context, nik string, encounter *models.ValidatedEncounter) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRecordClient.AppendEncounter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNIKKey, nik),
	)

	fail := func(kind exceptions.ErrorKind, statusCode int, message string, err error) error {
		submissionErr := &exceptions.SubmissionError{Kind: kind, NIK: nik, StatusCode: statusCode, Message: message, Err: err}
		c.Log.Error("patientRecordClient.AppendEncounter failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
			zap.String(constvars.LoggingErrorKindKey, string(kind)),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			zap.Error(err),
		)
		return submissionErr
	}

	requestJSON, err := json.Marshal(encounter)
	if err != nil {
		return fail(exceptions.KindNetwork, 0, constvars.ErrClientFailedToSaveRecord, exceptions.ErrCannotMarshalJSON(err))
	}

	if err := c.wait(ctx); err != nil {
		kind := transportErrorKind(err)
		return fail(kind, 0, submitMessage(kind), err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.resourceURL(nik), bytes.NewBuffer(requestJSON))
	if err != nil {
		return fail(exceptions.KindNetwork, 0, constvars.ErrClientFailedToSaveRecord, exceptions.ErrCreateHTTPRequest(err))
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		kind := transportErrorKind(err)
		return fail(kind, 0, submitMessage(kind), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		message := extractServerMessage(bodyBytes, constvars.ErrClientFailedToSaveRecord)
		return fail(exceptions.KindHTTP, resp.StatusCode, message, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	io.Copy(io.Discard, resp.Body)

	c.Log.Info("patientRecordClient.AppendEncounter succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNIKKey, nik),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
	)
	return nil
}

func (c *patientRecordClient) resourceURL(nik string) string {
	return fmt.Sprintf("%s/%s", c.BaseUrl, url.PathEscape(nik))
}

func (c *patientRecordClient) wait(ctx context.Context) error {
	if c.Limiter == nil {
		return nil
	}
	return c.Limiter.Wait(ctx)
}

func extractServerMessage(body []byte, fallback string) string {
	var payload serverMessage
	if err := json.Unmarshal(body, &payload); err != nil || strings.TrimSpace(payload.Message) == "" {
		return fallback
	}
	return payload.Message
}

func transportErrorKind(err error) exceptions.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return exceptions.KindTimeout
	}
	return exceptions.KindNetwork
}

func fetchMessage(kind exceptions.ErrorKind) string {
	if kind == exceptions.KindTimeout {
		return constvars.ErrClientFetchPatientTimeout
	}
	return constvars.ErrClientFailedToFetchPatient
}

func submitMessage(kind exceptions.ErrorKind) string {
	if kind == exceptions.KindTimeout {
		return constvars.ErrClientSaveRecordTimeout
	}
	return constvars.ErrClientFailedToSaveRecord
}
