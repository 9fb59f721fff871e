package controllers

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/dto/responses"
	"emr-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MedicalRecordController struct {
	Log                  *zap.Logger
	MedicalRecordUsecase contracts.MedicalRecordUsecase
	RequestTimeout       time.Duration
}

func NewMedicalRecordController(logger *zap.Logger, medicalRecordUsecase contracts.MedicalRecordUsecase, requestTimeout time.Duration) *MedicalRecordController {
	return &MedicalRecordController{
		Log:                  logger,
		MedicalRecordUsecase: medicalRecordUsecase,
		RequestTimeout:       requestTimeout,
	}
}

func (ctrl *MedicalRecordController) SubmitMedicalRecord(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	workspaceID := chi.URLParam(r, constvars.URLParamWorkspaceID)

	draft := new(requests.DraftEncounter)
	err := decodeJSON(r, draft)
	if err != nil {
		ctrl.Log.Error("MedicalRecordController.SubmitMedicalRecord error parsing request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.MedicalRecordUsecase.SubmitMedicalRecord(ctx, workspaceID, draft)
	if err != nil {
		ctrl.Log.Error("MedicalRecordController.SubmitMedicalRecord error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWorkspaceIDKey, workspaceID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.MedicalRecordSavedSuccessMessage, response)
}

// ValidateMedicalRecord runs the form rules without writing anything.
func (ctrl *MedicalRecordController) ValidateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, constvars.URLParamWorkspaceID)

	draft := new(requests.DraftEncounter)
	err := decodeJSON(r, draft)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	encounter, err := ctrl.MedicalRecordUsecase.ValidateMedicalRecord(r.Context(), workspaceID, draft)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := responses.MedicalRecordValidation{
		Valid:     true,
		Encounter: encounter,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MedicalRecordValidSuccessMessage, response)
}

func (ctrl *MedicalRecordController) GetDraft(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, constvars.URLParamWorkspaceID)

	draft, err := ctrl.MedicalRecordUsecase.GetDraft(r.Context(), workspaceID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MedicalRecordDraftSuccessMessage, draft)
}
