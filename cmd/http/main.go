package main

import (
	"context"
	"emr-service/internal/app/config"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/delivery/http/controllers"
	"emr-service/internal/app/delivery/http/middlewares"
	"emr-service/internal/app/delivery/http/routers"
	"emr-service/internal/app/drivers/database"
	"emr-service/internal/app/drivers/logger"
	"emr-service/internal/app/drivers/messaging"
	"emr-service/internal/app/services/core/medical_records"
	"emr-service/internal/app/services/core/patients"
	"emr-service/internal/app/services/core/workspaces"
	"emr-service/internal/app/services/emr_api/patient_records"
	"emr-service/internal/app/services/shared/drafts"
	"emr-service/internal/app/services/shared/events"
	"emr-service/internal/app/services/shared/locker"
	"emr-service/internal/app/services/shared/redis"
	"emr-service/internal/pkg/utils"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	time.Local = utils.LoadLocationOrDefault(internalConfig.App.Timezone)
	log.Info("Using timezone", zap.String("timezone", time.Local.String()))

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if driverConfig.Redis.Enabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig, log)
	}
	if driverConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig, log)
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("port", internalConfig.App.Port), zap.String("env", internalConfig.App.Env))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	lockExpiration := time.Duration(internalConfig.Submission.LockExpirationInSeconds) * time.Second
	draftExpiration := time.Duration(internalConfig.Submission.DraftExpirationInMinutes) * time.Minute
	requestTimeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second

	// Locker and drafts
	var lockerService contracts.LockerService
	var draftStore contracts.DraftStore
	if bootstrap.Redis != nil {
		redisRepository := redis.NewRedisRepository(bootstrap.Redis)
		lockerService = locker.NewLockService(redisRepository, log)
		draftStore = drafts.NewRedisDraftStore(redisRepository, draftExpiration, log)
	} else {
		log.Info("Redis disabled, keeping locks and drafts in memory")
		lockerService = locker.NewMemoryLockService(log)
		draftStore = drafts.NewMemoryDraftStore(draftExpiration)
	}

	// Events
	eventPublisher := events.NewLogEventPublisher(log)
	if bootstrap.RabbitMQ != nil {
		publisher, err := events.NewRabbitMQEventPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.EventQueue, log)
		if err != nil {
			log.Fatal("Failed to initialize event publisher", zap.Error(err))
		}
		eventPublisher = publisher
	}

	// Record backend
	patientRecordClient := patient_records.NewPatientRecordClient(
		internalConfig.EMRAPI.BaseUrl,
		time.Duration(internalConfig.EMRAPI.TimeoutInSeconds)*time.Second,
		internalConfig.EMRAPI.MaxRequestsPerSecond,
		log,
	)

	encounterValidator := medical_records.NewEncounterValidator(medical_records.WithLocation(time.Local))

	// Workspaces
	workspaceRegistry := workspaces.NewWorkspaceRegistry(
		func(workspaceID string) (contracts.PatientDirectory, contracts.MedicalRecordSubmission) {
			directory := patients.NewPatientDirectory(patientRecordClient, log)
			submission := medical_records.NewMedicalRecordSubmission(
				workspaceID,
				patientRecordClient,
				directory,
				encounterValidator,
				lockerService,
				draftStore,
				eventPublisher,
				lockExpiration,
				log,
			)
			return directory, submission
		},
		time.Duration(internalConfig.Workspace.IdleTimeoutInMinutes)*time.Minute,
		log,
	)
	bootstrap.WorkerStop = workspaceRegistry.StartJanitor(
		time.Duration(internalConfig.Workspace.JanitorIntervalInSeconds) * time.Second,
	)

	// Usecases
	patientUsecase := patients.NewPatientUsecase(patientRecordClient, workspaceRegistry, eventPublisher, log)
	medicalRecordUsecase := medical_records.NewMedicalRecordUsecase(workspaceRegistry, log)

	// Controllers
	workspaceController := controllers.NewWorkspaceController(log, workspaceRegistry)
	patientController := controllers.NewPatientController(log, patientUsecase, requestTimeout)
	medicalRecordController := controllers.NewMedicalRecordController(log, medicalRecordUsecase, requestTimeout)
	healthController := controllers.NewHealthController(internalConfig.App.Version)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		workspaceController,
		patientController,
		medicalRecordController,
		healthController,
	)
}
