package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ims-backend/pkg/config"
)

func TestLoad_LogLevelPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestLoad_LogLevelDesdeEntorno(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel,
		"APP_LOG_LEVEL debe controlar el nivel del logger")
}
