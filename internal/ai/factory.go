package ai

import (
	"fmt"
	"log"

	"github.com/talespring/backend/internal/config"
)

// NewProvider builds the configured AI provider from application config.
func NewProvider(cfg config.Config) (Provider, error) {
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", cfg.AIProvider)
	}

	var provider Provider
	switch cfg.AIProvider {
	case "openai":
		provider = NewOpenAIProvider(key)
	case "gemini":
		provider = NewGeminiProvider(key)
	case "groq":
		provider = NewGroqProvider(key)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %q", cfg.AIProvider)
	}

	log.Printf("[AI.Factory] Using provider: %s", provider.Name())
	return provider, nil
}
