package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string         `mapstructure:"port"`
	Provider       string         `mapstructure:"provider"`
	Model          string         `mapstructure:"model"`
	AIEndpoint     string         `mapstructure:"ai_endpoint"`
	GeminiAPIKey   string         `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey   string         `mapstructure:"OPENAI_API_KEY"`
	SearchAPIKey   string         `mapstructure:"GOOGLE_SEARCH_API_KEY"`
	SearchEngineID string         `mapstructure:"search_engine_id"`
	Pipeline       PipelineConfig `mapstructure:"pipeline"`
	Gateway        GatewayConfig  `mapstructure:"gateway"`
}

// PipelineConfig holds the document-processing tunables. The limits are
// configuration constants, not load-bearing algorithmic choices.
type PipelineConfig struct {
	MaxUploadBytes    int64 `mapstructure:"max_upload_bytes"`
	MaxChunkSize      int   `mapstructure:"max_chunk_size"`
	BoundaryTolerance int   `mapstructure:"boundary_tolerance"`
	ContextBudget     int   `mapstructure:"context_budget"`
}

type GatewayConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "8000")
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model", "gemini-2.0-flash")
	v.SetDefault("pipeline.max_upload_bytes", 10<<20)
	v.SetDefault("pipeline.max_chunk_size", 1000)
	v.SetDefault("pipeline.boundary_tolerance", 200)
	v.SetDefault("pipeline.context_budget", 24000)
	v.SetDefault("gateway.request_timeout", 60*time.Second)
	v.SetDefault("gateway.max_attempts", 3)
	v.SetDefault("gateway.initial_backoff", 500*time.Millisecond)

	v.AutomaticEnv()
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GOOGLE_SEARCH_API_KEY")

	// Missing config file is fine, defaults plus env cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func isNotExist(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}

// APIKey returns the credential for the configured provider. An empty
// value is not an error here; the gateway reports it on first use.
func (c *Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}
