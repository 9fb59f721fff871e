package config

import (
	"emr-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", false),
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			Encoding:            utils.GetEnvString("LOGGER_ENCODING", "json"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Enabled:  utils.GetEnvBool("RABBITMQ_ENABLED", false),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			CORSAllowedOrigins:         utils.GetEnvString("APP_CORS_ALLOWED_ORIGINS", "*"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			WriteRateLimitPerMinute:    utils.GetEnvInt("APP_WRITE_RATE_LIMIT_PER_MINUTE", 30),
			WriteRateLimitBlockSeconds: utils.GetEnvInt("APP_WRITE_RATE_LIMIT_BLOCK_SECONDS", 60),
		},
		EMRAPI: AppEMRAPI{
			BaseUrl:              utils.GetEnvString("EMR_API_BASE_URL", "https://emr-project-imeds-backend.vercel.app"),
			TimeoutInSeconds:     utils.GetEnvInt("EMR_API_TIMEOUT_IN_SECONDS", 15),
			MaxRequestsPerSecond: utils.GetEnvInt("EMR_API_MAX_REQUESTS_PER_SECOND", 0),
		},
		Workspace: AppWorkspace{
			IdleTimeoutInMinutes:     utils.GetEnvInt("APP_WORKSPACE_IDLE_TIMEOUT_IN_MINUTES", 30),
			JanitorIntervalInSeconds: utils.GetEnvInt("APP_WORKSPACE_JANITOR_INTERVAL_IN_SECONDS", 60),
		},
		Submission: AppSubmission{
			LockExpirationInSeconds:  utils.GetEnvInt("APP_SUBMISSION_LOCK_EXPIRATION_IN_SECONDS", 60),
			DraftExpirationInMinutes: utils.GetEnvInt("APP_SUBMISSION_DRAFT_EXPIRATION_IN_MINUTES", 120),
		},
		RabbitMQ: AppRabbitMQ{
			EventQueue: utils.GetEnvString("APP_RABBITMQ_EVENT_QUEUE", "emr.medical_record.events"),
		},
	}
}
