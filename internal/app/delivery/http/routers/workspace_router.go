package routers

import (
	"emr-service/internal/app/delivery/http/controllers"
	"emr-service/internal/app/delivery/http/middlewares"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func attachWorkspaceRoutes(
	router chi.Router,
	workspaceController *controllers.WorkspaceController,
	patientController *controllers.PatientController,
	medicalRecordController *controllers.MedicalRecordController,
	writeLimiter *middlewares.RateLimiter,
) {
	router.Post("/", workspaceController.CreateWorkspace)

	router.Route("/{workspace_id}", func(r chi.Router) {
		r.Delete("/", workspaceController.CloseWorkspace)
		r.Post("/search", patientController.SearchPatient)
		r.Get("/patient", patientController.GetPatientState)

		r.Route("/medical-records", func(r chi.Router) {
			attachMedicalRecordRoutes(r, medicalRecordController, writeLimiter)
		})
	})
}

func attachMedicalRecordRoutes(router chi.Router, medicalRecordController *controllers.MedicalRecordController, writeLimiter *middlewares.RateLimiter) {
	submit := http.Handler(http.HandlerFunc(medicalRecordController.SubmitMedicalRecord))
	if writeLimiter != nil {
		submit = writeLimiter.Limit(submit)
	}

	router.Method(http.MethodPost, "/", submit)
	router.Post("/validate", medicalRecordController.ValidateMedicalRecord)
	router.Get("/draft", medicalRecordController.GetDraft)
}
