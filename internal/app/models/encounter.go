package models

import "time"

// ValidatedEncounter is one new entry per record category, produced only by
// a successful validation. Its JSON form is the append request body.
type ValidatedEncounter struct {
	Diagnosis         Diagnosis        `json:"diagnosis"`
	Vitals            VitalSign        `json:"vitals"`
	LabResults        LabResult        `json:"labResults"`
	Treatments        Treatment        `json:"treatments"`
	ConsultationNotes ConsultationNote `json:"consultationNotes"`
	Disposition       Disposition      `json:"disposition"`
}

type SubmissionState string

const (
	SubmissionStateIdle       SubmissionState = "idle"
	SubmissionStateValidating SubmissionState = "validating"
	SubmissionStateSubmitting SubmissionState = "submitting"
	SubmissionStateSucceeded  SubmissionState = "succeeded"
	SubmissionStateFailed     SubmissionState = "failed"
)

type SubmissionResult struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}
