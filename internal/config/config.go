package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/codingconcepts/env"
	"gopkg.in/yaml.v3"
)

const (
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderOllama  = "ollama"
)

const defaultConfigPath = "configs/chat.yaml"

// Config is built once at startup and never mutated afterwards.
// Values come from the optional YAML file first, then the environment.
type Config struct {
	Provider string `yaml:"provider" env:"LLM_PROVIDER"`

	AWSRegion     string `yaml:"aws_region" env:"AWS_REGION"`
	ClaudeModelID string `yaml:"claude_model_id" env:"CLAUDE_MODEL_ID"`
	MaxTokens     int    `yaml:"max_tokens" env:"MAX_TOKENS"`

	OpenAIKey     string `yaml:"-" env:"OPEN_AI_KEY"`
	OpenAIModelID string `yaml:"open_ai_model_id" env:"OPEN_AI_MODEL_ID"`
	OpenAIBaseURL string `yaml:"open_ai_base_url" env:"OPEN_AI_BASE_URL"`

	GeminiAPIKey  string `yaml:"-" env:"GEMINI_API_KEY"`
	GeminiModelID string `yaml:"gemini_model_id" env:"GEMINI_MODEL_ID"`

	OllamaServerURL string `yaml:"ollama_server_url" env:"OLLAMA_SERVER_URL"`
	OllamaModelID   string `yaml:"ollama_model_id" env:"OLLAMA_MODEL_ID"`

	Port            string        `yaml:"port" env:"CHAT_API_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`
}

func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CHAT_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	if err := loadFile(path, &cfg); err != nil {
		return nil, err
	}

	if err := env.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFile is a no-op when the file does not exist.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Provider == "" {
		cfg.Provider = ProviderBedrock
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-east-1"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.GeminiModelID == "" {
		cfg.GeminiModelID = "gemini-2.0-flash"
	}
	if cfg.OllamaServerURL == "" {
		cfg.OllamaServerURL = "http://localhost:11434"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 120 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderBedrock:
		if c.ClaudeModelID == "" {
			return errors.New("CLAUDE_MODEL_ID is required for provider bedrock")
		}
		if c.MaxTokens < 0 {
			return fmt.Errorf("invalid max_tokens %d", c.MaxTokens)
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" || c.OpenAIModelID == "" {
			return errors.New("OPEN_AI_KEY and OPEN_AI_MODEL_ID are required for provider openai")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required for provider gemini")
		}
	case ProviderOllama:
		if c.OllamaModelID == "" {
			return errors.New("OLLAMA_MODEL_ID is required for provider ollama")
		}
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}

	if c.Port == "" {
		return errors.New("port is required")
	}

	return nil
}

// ModelID returns the model configured for the selected provider.
func (c *Config) ModelID() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIModelID
	case ProviderGemini:
		return c.GeminiModelID
	case ProviderOllama:
		return c.OllamaModelID
	default:
		return c.ClaudeModelID
	}
}
