package patients

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/exceptions"
	"emr-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRecordClient contracts.PatientRecordClient
	WorkspaceRegistry   contracts.WorkspaceRegistry
	EventPublisher      contracts.EventPublisher
	Log                 *zap.Logger
}

func NewPatientUsecase(
	patientRecordClient contracts.PatientRecordClient,
	workspaceRegistry contracts.WorkspaceRegistry,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		PatientRecordClient: patientRecordClient,
		WorkspaceRegistry:   workspaceRegistry,
		EventPublisher:      eventPublisher,
		Log:                 logger,
	}
}

// ValidateSearchNIK applies the search box rule: a NIK shorter than ten
// characters never reaches the record backend.
func ValidateSearchNIK(request *requests.SearchPatient) error {
	utils.SanitizeSearchPatient(request)
	if request.NIK == "" {
		return exceptions.ErrNIKRequired
	}
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInvalidNIK
	}
	return nil
}

func (uc *patientUsecase) SearchPatient(ctx context.Context, workspaceID string, request *requests.SearchPatient) (*models.FetchState, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.SearchPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceIDKey, workspaceID),
	)

	err := ValidateSearchNIK(request)
	if err != nil {
		uc.Log.Warn("patientUsecase.SearchPatient rejected NIK",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, request.NIK),
			zap.Error(err),
		)
		return nil, err
	}

	workspace, err := uc.WorkspaceRegistry.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	_, err = workspace.Directory.Fetch(ctx, request.NIK)
	state := workspace.Directory.State()
	if err != nil {
		return &state, err
	}

	uc.publish(ctx, workspaceID, request.NIK)
	uc.Log.Info("patientUsecase.SearchPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNIKKey, request.NIK),
	)
	return &state, nil
}

func (uc *patientUsecase) GetPatientState(ctx context.Context, workspaceID string) (*models.FetchState, error) {
	workspace, err := uc.WorkspaceRegistry.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	state := workspace.Directory.State()
	return &state, nil
}

func (uc *patientUsecase) FindPatientByNIK(ctx context.Context, nik string) (*models.PatientRecord, error) {
	request := &requests.SearchPatient{NIK: nik}
	err := ValidateSearchNIK(request)
	if err != nil {
		return nil, err
	}
	return uc.PatientRecordClient.FindPatientByNIK(ctx, request.NIK)
}

func (uc *patientUsecase) publish(ctx context.Context, workspaceID, nik string) {
	if uc.EventPublisher == nil {
		return
	}
	err := uc.EventPublisher.Publish(ctx, &models.DomainEvent{
		ID:          uuid.NewString(),
		Type:        constvars.EventPatientFetched,
		NIK:         nik,
		WorkspaceID: workspaceID,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		uc.Log.Warn("patientUsecase.publish failed",
			zap.String(constvars.LoggingNIKKey, nik),
			zap.Error(err),
		)
	}
}
