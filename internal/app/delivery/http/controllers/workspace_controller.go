package controllers

import (
	"emr-service/internal/app/contracts"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/responses"
	"emr-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WorkspaceController struct {
	Log               *zap.Logger
	WorkspaceRegistry contracts.WorkspaceRegistry
}

func NewWorkspaceController(logger *zap.Logger, workspaceRegistry contracts.WorkspaceRegistry) *WorkspaceController {
	return &WorkspaceController{
		Log:               logger,
		WorkspaceRegistry: workspaceRegistry,
	}
}

func (ctrl *WorkspaceController) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	workspace, err := ctrl.WorkspaceRegistry.Create(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := responses.Workspace{
		ID:         workspace.ID,
		CreatedAt:  workspace.CreatedAt,
		LastSeenAt: workspace.LastSeenAt,
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.WorkspaceCreatedSuccessMessage, response)
}

func (ctrl *WorkspaceController) CloseWorkspace(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, constvars.URLParamWorkspaceID)

	err := ctrl.WorkspaceRegistry.Close(r.Context(), workspaceID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WorkspaceClosedSuccessMessage, nil)
}
