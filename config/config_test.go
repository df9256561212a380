package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, int64(10<<20), cfg.Pipeline.MaxUploadBytes)
	assert.Equal(t, 1000, cfg.Pipeline.MaxChunkSize)
	assert.Equal(t, 200, cfg.Pipeline.BoundaryTolerance)
	assert.Equal(t, 24000, cfg.Pipeline.ContextBudget)
	assert.Equal(t, 60*time.Second, cfg.Gateway.RequestTimeout)
	assert.Equal(t, 3, cfg.Gateway.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Gateway.InitialBackoff)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `port: "9090"
provider: openai
model: gpt-4o-mini
ai_endpoint: http://localhost:1234/v1
pipeline:
  max_chunk_size: 500
gateway:
  max_attempts: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "http://localhost:1234/v1", cfg.AIEndpoint)
	assert.Equal(t, 500, cfg.Pipeline.MaxChunkSize)
	assert.Equal(t, 5, cfg.Gateway.MaxAttempts)
	// Untouched values keep their defaults.
	assert.Equal(t, 200, cfg.Pipeline.BoundaryTolerance)
}

func TestLoadConfigEnvCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gm-key", cfg.GeminiAPIKey)
	assert.Equal(t, "oa-key", cfg.OpenAIAPIKey)
	assert.Equal(t, "gm-key", cfg.APIKey())

	cfg.Provider = ProviderOpenAI
	assert.Equal(t, "oa-key", cfg.APIKey())
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
