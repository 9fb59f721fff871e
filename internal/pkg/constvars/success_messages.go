package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"
)

const (
	WorkspaceCreatedSuccessMessage   = "workspace created successfully"
	WorkspaceClosedSuccessMessage    = "workspace closed successfully"
	PatientFetchedSuccessMessage     = "patient record loaded successfully"
	PatientStateSuccessMessage       = "patient state retrieved successfully"
	MedicalRecordSavedSuccessMessage = "medical record saved successfully"
	MedicalRecordValidSuccessMessage = "medical record is valid"
	MedicalRecordDraftSuccessMessage = "medical record draft retrieved successfully"
	HealthCheckSuccessMessage        = "ok"
)
