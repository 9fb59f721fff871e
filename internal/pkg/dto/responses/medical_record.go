package responses

import "emr-service/internal/app/models"

type MedicalRecordSubmission struct {
	NIK    string                   `json:"nik"`
	Result *models.SubmissionResult `json:"result"`
	State  models.SubmissionState   `json:"state"`
}

type MedicalRecordValidation struct {
	Valid     bool                       `json:"valid"`
	Encounter *models.ValidatedEncounter `json:"encounter,omitempty"`
}
