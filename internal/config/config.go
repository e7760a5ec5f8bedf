package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents the deployment environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all framework configuration
type Config struct {
	// Environment
	Env      Environment `envconfig:"ENV" default:"development"`
	LogLevel string      `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool        `envconfig:"DEBUG" default:"false"`

	// Application
	App AppConfig

	// Mock API server
	Server ServerConfig

	// Target sites under test
	Targets TargetConfig

	// OpenAI (test data generation)
	OpenAI OpenAIConfig
}

// AppConfig holds application metadata
type AppConfig struct {
	Name    string `envconfig:"APP_NAME" default:"qaforge"`
	Version string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// ServerConfig holds mock API server settings
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"5000"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	EnableCORS      bool          `envconfig:"SERVER_ENABLE_CORS" default:"true"`
}

// Addr returns the server listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TargetConfig holds URLs of the demo sites and services under test
type TargetConfig struct {
	BaseURL    string        `envconfig:"BASE_URL" default:"https://automationexercise.com"`
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:5000"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
}

// OpenAIConfig holds settings for the model-backed data generator.
// APIKey is optional: when empty the generator runs in synthetic-only mode.
type OpenAIConfig struct {
	APIKey       string        `envconfig:"OPENAI_API_KEY" default:""`
	BaseURL      string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	Model        string        `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	MaxTokens    int           `envconfig:"OPENAI_MAX_TOKENS" default:"1000"`
	Temperature  float64       `envconfig:"OPENAI_TEMPERATURE" default:"0.7"`
	Timeout      time.Duration `envconfig:"OPENAI_TIMEOUT" default:"30s"`
	RateLimitRPM int           `envconfig:"OPENAI_RATE_LIMIT_RPM" default:"60"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration. A missing OpenAI key is not an
// error: the data generator degrades to synthetic-only mode.
func (c *Config) Validate() error {
	var errs []string

	if c.OpenAI.MaxTokens <= 0 {
		errs = append(errs, "OPENAI_MAX_TOKENS must be positive")
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		errs = append(errs, "OPENAI_TEMPERATURE must be in [0, 2]")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, "SERVER_PORT must be a valid port")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// GetLogLevel returns the appropriate zap log level
func (c *Config) GetLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}
