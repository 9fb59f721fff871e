package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"len":           "must be %s characters long",
	"numeric":       "must be a number",
	"oneof":         "must be one of [%s]",
	"datetime":      "must be a valid date (YYYY-MM-DD)",
	"uuid4":         "must be a valid UUID",
	"not_past_date": "must not be earlier than today",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
}

// Messages surfaced to users of the record screens.
const (
	ErrClientNoNIKProvided          = "No NIK provided"
	ErrClientInvalidNIK             = "Please enter a valid NIK (minimum 10 digits)"
	ErrClientFailedToFetchPatient   = "Failed to fetch patient"
	ErrClientPatientNotFound        = "Patient not found"
	ErrClientFetchPatientTimeout    = "Fetching patient took too long, please try again"
	ErrClientMalformedPatientRecord = "Patient record returned by the server is malformed"
	ErrClientFailedToSaveRecord     = "Failed to save medical record"
	ErrClientSaveRecordTimeout      = "Saving medical record took too long, please try again"
	ErrClientSubmissionInFlight     = "A medical record for this patient is already being saved"
	ErrClientUnknownPatient         = "Search and load the patient before adding a medical record"
	ErrClientWorkspaceNotFound      = "Workspace not found or expired"
	ErrClientDraftNotFound          = "No saved draft for this patient"
	ErrClientValidationFailed       = "Please correct the highlighted fields"
	ErrClientCannotProcessRequest   = "Cannot process the request, please try again"
	ErrClientSomethingWrongWithApp  = "Something went wrong with the application, please try again later"
	ErrClientServerLongRespond      = "The server took too long to respond, please try again"
	ErrClientTooManyRequests        = "Too many requests, you are temporarily blocked"
	ErrClientRequestEntityTooLarge  = "Request body is too large"
)

// Messages kept in logs and non-production responses.
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevReadHTTPResponse         = "failed to read HTTP response body"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevServerProcess            = "server failed to process the request"
	ErrDevNIKRequired              = "nik is required"
	ErrDevNIKTooShort              = "nik is shorter than %d characters"
	ErrDevPatientNotFound          = "remote record service returned 404 for nik %s"
	ErrDevRemoteStatus             = "remote record service returned HTTP %d for nik %s"
	ErrDevRemoteTimeout            = "remote record service timed out for nik %s"
	ErrDevRemoteNetwork            = "remote record service unreachable for nik %s"
	ErrDevDecodePatientRecord      = "cannot decode patient record for nik %s"
	ErrDevPatientRecordKeyMismatch = "personalInfo.nik %q does not match requested nik %q"
	ErrDevUnknownPatient           = "nik %s does not match the loaded patient record"
	ErrDevSubmissionInFlight       = "submission already in flight for nik %s"
	ErrDevWorkspaceNotFound        = "workspace %s not found"
	ErrDevDraftNotFound            = "draft not found for key %s"
	ErrDevRedisGetData             = "failed to get data from redis"
	ErrDevRedisSetData             = "failed to set data to redis"
	ErrDevRedisDeleteData          = "failed to delete data from redis"
	ErrDevRedisUnlock              = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage   = "failed to publish message to rabbitmq queue %s"
	ErrDevRabbitMQOpenChannel      = "failed to open rabbitmq channel"
	ErrDevTooManyRequests          = "rate limit exceeded for %s"
	ErrDevRequestEntityTooLarge    = "request body exceeds %d megabytes"
)
