package controllers

import (
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/utils"
	"net/http"
)

type HealthController struct {
	Version string
}

func NewHealthController(version string) *HealthController {
	return &HealthController{Version: version}
}

func (ctrl *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
		"version": ctrl.Version,
	})
}
