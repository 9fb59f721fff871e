package contracts

import (
	"context"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/dto/requests"
)

// PatientRecordClient talks to the remote record backend. Each call is a
// single attempt.
type PatientRecordClient interface {
	FindPatientByNIK(ctx context.Context, nik string) (*models.PatientRecord, error)
	AppendEncounter(ctx context.Context, nik string, encounter *models.ValidatedEncounter) error
}

type PatientDirectory interface {
	Fetch(ctx context.Context, nik string) (*models.PatientRecord, error)
	SetNIK(ctx context.Context, nik string)
	State() models.FetchState
	Subscribe(observer func(models.FetchState)) (unsubscribe func())
	Wait()
}

type PatientUsecase interface {
	SearchPatient(ctx context.Context, workspaceID string, request *requests.SearchPatient) (*models.FetchState, error)
	GetPatientState(ctx context.Context, workspaceID string) (*models.FetchState, error)
	FindPatientByNIK(ctx context.Context, nik string) (*models.PatientRecord, error)
}
