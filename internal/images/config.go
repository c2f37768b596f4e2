package images

import (
	"log/slog"
	"os"
)

// Config carries credentials for both image providers. Either provider may be
// absent; the engine drops slots it cannot serve.
type Config struct {
	SearchBaseURL string
	SearchKey     string
	GenBaseURL    string
	GenKey        string
	GenModel      string
}

func LoadConfigFromEnv() *Config {
	searchBase := os.Getenv("IMAGE_SEARCH_BASE_URL")
	if searchBase == "" {
		searchBase = "https://api.unsplash.com"
	}
	genBase := os.Getenv("IMAGE_GEN_BASE_URL")
	if genBase == "" {
		genBase = "https://api.openai.com/v1"
	}
	genModel := os.Getenv("IMAGE_GEN_MODEL")
	if genModel == "" {
		genModel = defaultImgModel
	}

	return &Config{
		SearchBaseURL: searchBase,
		SearchKey:     os.Getenv("IMAGE_SEARCH_KEY"),
		GenBaseURL:    genBase,
		GenKey:        os.Getenv("IMAGE_GEN_KEY"),
		GenModel:      genModel,
	}
}

// NewEngineFromConfig wires an engine with whichever providers have keys.
// Missing providers are logged once here instead of on every dropped slot.
func NewEngineFromConfig(cfg *Config) (*Engine, error) {
	var (
		search Searcher
		gen    Generator
	)

	if cfg.SearchKey != "" {
		client, err := NewSearchClient(cfg.SearchBaseURL, cfg.SearchKey)
		if err != nil {
			return nil, err
		}
		search = client
	} else {
		slog.Warn("image search key not set, stock image slots will be dropped")
	}

	if cfg.GenKey != "" {
		client, err := NewGenClient(cfg.GenBaseURL, cfg.GenKey, WithGenModel(cfg.GenModel))
		if err != nil {
			return nil, err
		}
		gen = client
	} else {
		slog.Warn("image generation key not set, generated image slots will be dropped")
	}

	return NewEngine(search, gen), nil
}
