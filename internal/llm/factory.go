package llm

import (
	"fmt"
	"log"

	"github.com/sant0-9/quill/internal/config"
)

// NewProvider creates a client for the configured provider. A missing key is
// not an error here; the startup probe reports what the endpoint thinks of it.
func NewProvider(cfg *config.Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s provider requires base_url", cfg.Provider)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s provider requires a model", cfg.Provider)
	}

	if cfg.APIKey == "" {
		if p := config.GetProvider(cfg.Provider); p != nil && p.KeyEnv != "" {
			log.Printf("llm: no API key for %s (set %s or %s)", cfg.Provider, p.KeyEnv, config.APIKeyEnv)
		}
	}

	return NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout), nil
}
