package routers

import (
	"emr-service/internal/app/config"
	"emr-service/internal/app/delivery/http/controllers"
	"emr-service/internal/app/delivery/http/middlewares"
	"emr-service/internal/pkg/constvars"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	workspaceController *controllers.WorkspaceController,
	patientController *controllers.PatientController,
	medicalRecordController *controllers.MedicalRecordController,
	healthController *controllers.HealthController,
) {
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)

	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins(internalConfig.App.CORSAllowedOrigins),
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.LimitRequestBody)

	writeLimiter := newWriteLimiter(internalConfig, middlewares)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Get("/healthz", healthController.HealthCheck)

			r.Route("/workspaces", func(r chi.Router) {
				attachWorkspaceRoutes(r, workspaceController, patientController, medicalRecordController, writeLimiter)
			})

			r.Route("/patients", func(r chi.Router) {
				attachPatientRoutes(r, patientController)
			})
		})
	})
}

func allowedOrigins(origins string) []string {
	var result []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			result = append(result, origin)
		}
	}
	if len(result) == 0 {
		return []string{"*"}
	}
	return result
}

func newWriteLimiter(internalConfig *config.InternalConfig, mw *middlewares.Middlewares) *middlewares.RateLimiter {
	perMinute := internalConfig.App.WriteRateLimitPerMinute
	if perMinute <= 0 {
		return nil
	}
	return middlewares.NewRateLimiter(
		perMinute,
		time.Minute/time.Duration(perMinute),
		time.Duration(internalConfig.App.WriteRateLimitBlockSeconds)*time.Second,
		mw.Log,
	)
}
