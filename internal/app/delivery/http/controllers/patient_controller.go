package controllers

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
	RequestTimeout time.Duration
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase, requestTimeout time.Duration) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
		RequestTimeout: requestTimeout,
	}
}

// SearchPatient loads the record for the submitted NIK into the workspace
// and returns the resulting fetch state.
func (ctrl *PatientController) SearchPatient(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	workspaceID := chi.URLParam(r, constvars.URLParamWorkspaceID)

	request := new(requests.SearchPatient)
	err := decodeJSON(r, request)
	if err != nil {
		ctrl.Log.Error("PatientController.SearchPatient error parsing request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	state, err := ctrl.PatientUsecase.SearchPatient(ctx, workspaceID, request)
	if err != nil {
		ctrl.Log.Error("PatientController.SearchPatient error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWorkspaceIDKey, workspaceID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientFetchedSuccessMessage, state)
}

func (ctrl *PatientController) GetPatientState(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, constvars.URLParamWorkspaceID)

	state, err := ctrl.PatientUsecase.GetPatientState(r.Context(), workspaceID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientStateSuccessMessage, state)
}

// FindPatientByNIK is the stateless lookup; it does not touch any workspace.
func (ctrl *PatientController) FindPatientByNIK(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	nik := chi.URLParam(r, constvars.URLParamNIK)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	record, err := ctrl.PatientUsecase.FindPatientByNIK(ctx, nik)
	if err != nil {
		ctrl.Log.Error("PatientController.FindPatientByNIK error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientFetchedSuccessMessage, record)
}
