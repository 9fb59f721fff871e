package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingIsClientRequestIDKey  = "is_client_request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingNIKKey                = "nik"
	LoggingURLKey                = "url"
	LoggingWorkspaceIDKey        = "workspace_id"
	LoggingSequenceKey           = "sequence"
	LoggingLatestSequenceKey     = "latest_sequence"
	LoggingErrorKindKey          = "error_kind"
	LoggingSubmissionStateKey    = "submission_state"
	LoggingValidationErrorsKey   = "validation_errors"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingEventTypeKey          = "event_type"
	LoggingEventIDKey            = "event_id"
	LoggingQueueNameKey          = "queue_name"
	LoggingPanicKey              = "panic"
	LoggingMessageKey            = "message"
	LoggingIdleTimeoutKey        = "idle_timeout"
	LoggingEvictedCountKey       = "evicted_count"
)
