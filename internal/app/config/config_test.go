package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("EMR_API_BASE_URL", "")
		t.Setenv("EMR_API_TIMEOUT_IN_SECONDS", "")

		internalConfig := NewInternalConfig()

		assert.Equal(t, "https://emr-project-imeds-backend.vercel.app", internalConfig.EMRAPI.BaseUrl)
		assert.Equal(t, 15, internalConfig.EMRAPI.TimeoutInSeconds)
		assert.Equal(t, "Asia/Jakarta", internalConfig.App.Timezone)
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("EMR_API_BASE_URL", "http://localhost:3000")
		t.Setenv("EMR_API_TIMEOUT_IN_SECONDS", "25")
		t.Setenv("APP_WORKSPACE_IDLE_TIMEOUT_IN_MINUTES", "not-a-number")

		internalConfig := NewInternalConfig()

		assert.Equal(t, "http://localhost:3000", internalConfig.EMRAPI.BaseUrl)
		assert.Equal(t, 25, internalConfig.EMRAPI.TimeoutInSeconds)
		assert.Equal(t, 30, internalConfig.Workspace.IdleTimeoutInMinutes, "unparseable values fall back to the default")
	})
}

func TestNewDriverConfig(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")

	driverConfig := NewDriverConfig()

	assert.True(t, driverConfig.Redis.Enabled)
	assert.Equal(t, "6380", driverConfig.Redis.Port)
	assert.False(t, driverConfig.RabbitMQ.Enabled)
}
