package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30, cfg.BatchSize)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, float64(2), cfg.BackoffBase)
	assert.Equal(t, 3*time.Minute, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.Model)
}

func TestFromEnv_RequiresAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvModel, "gemini-test")
	t.Setenv(EnvBatchSize, "5")
	t.Setenv(EnvMaxAttempts, "2")
	t.Setenv(EnvRequestTimeout, "45s")
	t.Setenv(EnvResultsPath, "out/results.json")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "gemini-test", cfg.Model)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "out/results.json", cfg.ResultsPath)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-integer batch size", EnvBatchSize, "many"},
		{"zero batch size", EnvBatchSize, "0"},
		{"negative attempts", EnvMaxAttempts, "-1"},
		{"bad timeout", EnvRequestTimeout, "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, "test-key")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
		})
	}
}
