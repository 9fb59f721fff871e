package medical_records

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/dto/responses"
	"emr-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type medicalRecordUsecase struct {
	WorkspaceRegistry contracts.WorkspaceRegistry
	Log               *zap.Logger
}

func NewMedicalRecordUsecase(workspaceRegistry contracts.WorkspaceRegistry, logger *zap.Logger) contracts.MedicalRecordUsecase {
	return &medicalRecordUsecase{
		WorkspaceRegistry: workspaceRegistry,
		Log:               logger,
	}
}

func (uc *medicalRecordUsecase) ValidateMedicalRecord(ctx context.Context, workspaceID string, draft *requests.DraftEncounter) (*models.ValidatedEncounter, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("medicalRecordUsecase.ValidateMedicalRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceIDKey, workspaceID),
	)

	workspace, err := uc.WorkspaceRegistry.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return workspace.Submission.Validate(draft)
}

// SubmitMedicalRecord writes draft for the patient currently loaded in the
// workspace.
func (uc *medicalRecordUsecase) SubmitMedicalRecord(ctx context.Context, workspaceID string, draft *requests.DraftEncounter) (*responses.MedicalRecordSubmission, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("medicalRecordUsecase.SubmitMedicalRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceIDKey, workspaceID),
	)

	workspace, err := uc.WorkspaceRegistry.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	nik := workspace.Directory.State().NIK
	if nik == "" {
		uc.Log.Warn("medicalRecordUsecase.SubmitMedicalRecord no patient loaded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWorkspaceIDKey, workspaceID),
		)
		return nil, exceptions.ErrUnknownPatient
	}

	result, err := workspace.Submission.Process(ctx, nik, draft)
	response := &responses.MedicalRecordSubmission{
		NIK:    nik,
		Result: result,
		State:  workspace.Submission.State(),
	}
	if err != nil {
		uc.Log.Error("medicalRecordUsecase.SubmitMedicalRecord failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
			zap.String(constvars.LoggingSubmissionStateKey, string(response.State)),
			zap.Error(err),
		)
		return response, err
	}

	uc.Log.Info("medicalRecordUsecase.SubmitMedicalRecord succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNIKKey, nik),
	)
	return response, nil
}

func (uc *medicalRecordUsecase) GetDraft(ctx context.Context, workspaceID string) (*requests.DraftEncounter, error) {
	workspace, err := uc.WorkspaceRegistry.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	nik := workspace.Directory.State().NIK
	if nik == "" {
		return nil, exceptions.ErrDraftNotFound
	}
	return workspace.Submission.Draft(ctx, nik)
}
