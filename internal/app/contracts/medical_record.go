package contracts

import (
	"context"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/dto/responses"
)

// MedicalRecordSubmission validates and writes one encounter for the patient
// loaded in the same workspace.
type MedicalRecordSubmission interface {
	Validate(draft *requests.DraftEncounter) (*models.ValidatedEncounter, error)
	Submit(ctx context.Context, nik string, encounter *models.ValidatedEncounter) (*models.SubmissionResult, error)
	Process(ctx context.Context, nik string, draft *requests.DraftEncounter) (*models.SubmissionResult, error)
	State() models.SubmissionState
	Draft(ctx context.Context, nik string) (*requests.DraftEncounter, error)
}

type MedicalRecordUsecase interface {
	ValidateMedicalRecord(ctx context.Context, workspaceID string, draft *requests.DraftEncounter) (*models.ValidatedEncounter, error)
	SubmitMedicalRecord(ctx context.Context, workspaceID string, draft *requests.DraftEncounter) (*responses.MedicalRecordSubmission, error)
	GetDraft(ctx context.Context, workspaceID string) (*requests.DraftEncounter, error)
}

type DraftStore interface {
	Save(ctx context.Context, key string, draft *requests.DraftEncounter) error
	Get(ctx context.Context, key string) (*requests.DraftEncounter, error)
	Delete(ctx context.Context, key string) error
}
