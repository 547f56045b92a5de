package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TODOS_USER_ID", "TODOS_API_URL", "TODOS_LATENCY", "TODOS_NOTIFICATION_TIMEOUT", "TODOS_MAX_CONCURRENCY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.OwnerID)
	assert.False(t, cfg.HasOwner())
	assert.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 100*time.Millisecond, cfg.Latency)
	assert.Equal(t, 3*time.Second, cfg.NotificationTimeout)
	assert.Equal(t, 0, cfg.MaxConcurrency)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOS_USER_ID", "42")
	t.Setenv("TODOS_API_URL", "http://localhost:9999")
	t.Setenv("TODOS_LATENCY", "0s")
	t.Setenv("TODOS_NOTIFICATION_TIMEOUT", "500ms")
	t.Setenv("TODOS_MAX_CONCURRENCY", "4")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.OwnerID)
	assert.True(t, cfg.HasOwner())
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Latency)
	assert.Equal(t, 500*time.Millisecond, cfg.NotificationTimeout)
	assert.Equal(t, 4, cfg.MaxConcurrency)
}

func TestLoad_NonNumericOwnerIsUnset(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOS_USER_ID", "abc")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.OwnerID)
	assert.False(t, cfg.HasOwner())
}

func TestLoad_RejectsNegativeConcurrency(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOS_MAX_CONCURRENCY", "-1")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_NegativeOwnerIsUnset(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOS_USER_ID", "-3")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.HasOwner())
}

func TestLoad_InvalidLatency(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOS_LATENCY", "soon")

	_, err := config.Load()
	assert.Error(t, err)
}
