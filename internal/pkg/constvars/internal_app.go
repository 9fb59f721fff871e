package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_WORKSPACE_ID_KEY         ContextKey = "workspace_id"
)

const (
	REQUEST_ID_PREFIX = "EMR_SVC_"
)

const (
	URLParamWorkspaceID = "workspace_id"
	URLParamNIK         = "nik"
)

// Remote EMR resource served by the record backend.
const (
	ResourcePasien = "/api/pasien"
)

const (
	NIKMinLength    = 10
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
	DefaultTimezone = "Asia/Jakarta"
)

const (
	LabStatusFormNormal   = "normal"
	LabStatusFormAbnormal = "abnormal"
	LabStatusFormCritical = "critical"
)

const (
	DispositionStatusDischarged  = "discharged"
	DispositionStatusAdmitted    = "admitted"
	DispositionStatusTransferred = "transferred"
	DispositionStatusReferred    = "referred"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

const (
	UnitBeatsPerMinute = "bpm"
	UnitCelsius        = "°C"
	UnitKilogram       = "kg"
	UnitCentimeter     = "cm"
	UnitMillimeterHg   = "mmHg"
)

const (
	RedisKeySubmissionLockFormat = "emr:submission_lock:%s"
	RedisKeyDraftFormat          = "emr:draft:%s:%s"
)

const (
	EventMedicalRecordSubmitted = "medical_record.submitted"
	EventMedicalRecordFailed    = "medical_record.failed"
	EventPatientFetched         = "patient.fetched"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)
