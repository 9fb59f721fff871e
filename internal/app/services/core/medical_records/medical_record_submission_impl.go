package medical_records

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type medicalRecordSubmission struct {
	WorkspaceID         string
	PatientRecordClient contracts.PatientRecordClient
	PatientDirectory    contracts.PatientDirectory
	Validator           *EncounterValidator
	LockerService       contracts.LockerService
	DraftStore          contracts.DraftStore
	EventPublisher      contracts.EventPublisher
	LockExpiration      time.Duration
	Log                 *zap.Logger

	mu    sync.Mutex
	state models.SubmissionState
}

func NewMedicalRecordSubmission(
	workspaceID string,
	patientRecordClient contracts.PatientRecordClient,
	patientDirectory contracts.PatientDirectory,
	encounterValidator *EncounterValidator,
	lockerService contracts.LockerService,
	draftStore contracts.DraftStore,
	eventPublisher contracts.EventPublisher,
	lockExpiration time.Duration,
	logger *zap.Logger,
) contracts.MedicalRecordSubmission {
	return &medicalRecordSubmission{
		WorkspaceID:         workspaceID,
		PatientRecordClient: patientRecordClient,
		PatientDirectory:    patientDirectory,
		Validator:           encounterValidator,
		LockerService:       lockerService,
		DraftStore:          draftStore,
		EventPublisher:      eventPublisher,
		LockExpiration:      lockExpiration,
		Log:                 logger,
		state:               models.SubmissionStateIdle,
	}
}

func (s *medicalRecordSubmission) Validate(draft *requests.DraftEncounter) (*models.ValidatedEncounter, error) {
	s.setState(models.SubmissionStateValidating)
	defer s.setState(models.SubmissionStateIdle)

	return s.Validator.Validate(draft)
}

// Submit appends encounter to the record of nik. The patient must be the one
// currently loaded in the workspace, and only one submit per NIK may run at
// a time; an overlapping call returns ErrSubmissionInFlight without writing.
func (s *medicalRecordSubmission) Submit(ctx context.Context, nik string, encounter *models.ValidatedEncounter) (*models.SubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("medicalRecordSubmission.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceIDKey, s.WorkspaceID),
		zap.String(constvars.LoggingNIKKey, nik),
	)

	if !s.PatientDirectory.State().HasRecordFor(nik) {
		s.Log.Warn("medicalRecordSubmission.Submit rejected unknown patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
		)
		return nil, exceptions.ErrUnknownPatient
	}

	lockKey := fmt.Sprintf(constvars.RedisKeySubmissionLockFormat, nik)
	acquired, lockValue, err := s.LockerService.TryLock(ctx, lockKey, s.LockExpiration)
	if err != nil {
		s.Log.Error("medicalRecordSubmission.Submit error acquiring lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		s.Log.Warn("medicalRecordSubmission.Submit rejected overlapping submission",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
		)
		return nil, exceptions.ErrSubmissionInFlight
	}
	defer s.unlock(context.WithoutCancel(ctx), requestID, lockKey, lockValue)

	s.setState(models.SubmissionStateSubmitting)
	err = s.PatientRecordClient.AppendEncounter(ctx, nik, encounter)
	if err != nil {
		s.setState(models.SubmissionStateFailed)
		result := &models.SubmissionResult{
			Success:     false,
			Message:     exceptions.UserMessage(err),
			SubmittedAt: time.Now(),
		}
		s.Log.Error("medicalRecordSubmission.Submit failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
			zap.Error(err),
		)
		s.publish(ctx, constvars.EventMedicalRecordFailed, nik, result.Message)
		return result, err
	}

	s.setState(models.SubmissionStateSucceeded)
	result := &models.SubmissionResult{
		Success:     true,
		Message:     constvars.MedicalRecordSavedSuccessMessage,
		SubmittedAt: time.Now(),
	}

	draftKey := s.draftKey(nik)
	err = s.DraftStore.Delete(ctx, draftKey)
	if err != nil {
		s.Log.Warn("medicalRecordSubmission.Submit error clearing draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, draftKey),
			zap.Error(err),
		)
	}

	s.publish(ctx, constvars.EventMedicalRecordSubmitted, nik, "")
	s.Log.Info("medicalRecordSubmission.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNIKKey, nik),
	)
	return result, nil
}

// Process stores draft, validates it and submits the result. The stored
// draft survives every failure so the form can be shown again unchanged.
func (s *medicalRecordSubmission) Process(ctx context.Context, nik string, draft *requests.DraftEncounter) (*models.SubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if draft != nil {
		draftKey := s.draftKey(nik)
		err := s.DraftStore.Save(ctx, draftKey, draft)
		if err != nil {
			s.Log.Warn("medicalRecordSubmission.Process error saving draft",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, draftKey),
				zap.Error(err),
			)
		}
	}

	encounter, err := s.Validate(draft)
	if err != nil {
		var fieldErrs exceptions.ValidationErrors
		if errors.As(err, &fieldErrs) {
			s.Log.Info("medicalRecordSubmission.Process validation failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Strings(constvars.LoggingValidationErrorsKey, fieldErrs.Fields()),
			)
		}
		return nil, err
	}

	return s.Submit(ctx, nik, encounter)
}

// State reports the workflow state. A finished outcome is reported once;
// the workflow is idle again afterwards.
func (s *medicalRecordSubmission) State() models.SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	if state == models.SubmissionStateSucceeded || state == models.SubmissionStateFailed {
		s.state = models.SubmissionStateIdle
	}
	return state
}

func (s *medicalRecordSubmission) Draft(ctx context.Context, nik string) (*requests.DraftEncounter, error) {
	return s.DraftStore.Get(ctx, s.draftKey(nik))
}

func (s *medicalRecordSubmission) setState(state models.SubmissionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *medicalRecordSubmission) draftKey(nik string) string {
	return fmt.Sprintf(constvars.RedisKeyDraftFormat, s.WorkspaceID, nik)
}

func (s *medicalRecordSubmission) unlock(ctx context.Context, requestID, lockKey, lockValue string) {
	err := s.LockerService.Unlock(ctx, lockKey, lockValue)
	if err != nil {
		s.Log.Error("medicalRecordSubmission.unlock failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
	}
}

func (s *medicalRecordSubmission) publish(ctx context.Context, eventType, nik, message string) {
	if s.EventPublisher == nil {
		return
	}
	err := s.EventPublisher.Publish(ctx, &models.DomainEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		NIK:         nik,
		WorkspaceID: s.WorkspaceID,
		Message:     message,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		s.Log.Warn("medicalRecordSubmission.publish failed",
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.String(constvars.LoggingNIKKey, nik),
			zap.Error(err),
		)
	}
}
