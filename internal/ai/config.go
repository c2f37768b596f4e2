package ai

import (
	"os"

	"github.com/pressroom-io/pressroom/internal/apperr"
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

func LoadConfigFromEnv() (*Config, error) {
	apiKey := os.Getenv("COMPLETION_API_KEY")
	if apiKey == "" {
		return nil, apperr.NewConfig("COMPLETION_API_KEY environment variable not set")
	}

	baseURL := os.Getenv("COMPLETION_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	model := os.Getenv("COMPLETION_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	}, nil
}

// NewClientFromConfig wires a client from loaded config.
func NewClientFromConfig(cfg *Config) (*OpenAIClient, error) {
	return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, WithModel(cfg.Model))
}
