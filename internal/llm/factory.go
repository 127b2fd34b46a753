package llm

import (
	"fmt"
	"log/slog"

	"github.com/sant0-9/legalgen/internal/config"
)

// NewProvider creates a provider from config. A missing API key is not
// rejected here; Complete reports it.
func NewProvider(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	info := config.GetProvider(cfg.Provider)
	if info == nil {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = info.BaseURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%s provider requires base_url", cfg.Provider)
	}

	model := cfg.Model
	if model == "" {
		model = info.DefaultModel
	}
	if model == "" {
		return nil, fmt.Errorf("%s provider requires a model", cfg.Provider)
	}

	return NewOpenAIProvider(OpenAIConfig{
		Name:    info.ID,
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
		Model:   model,
		Title:   cfg.Title,
		Referer: cfg.Referer,
		Timeout: cfg.Timeout,
	}, logger), nil
}
