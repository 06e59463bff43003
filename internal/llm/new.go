package llm

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
)

// New builds the provider selected in cfg.LLM.
func New(cfg *config.Config, log logger.Logger) (Model, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return NewGemini(cfg.Secrets.GeminiAPIKeys, cfg.LLM.Model, log)
	case config.ProviderOpenAI:
		client := &http.Client{Timeout: cfg.LLM.Timeout}
		return NewOpenAI(cfg.Secrets.OpenAIAPIKey, cfg.LLM.Model, cfg.LLM.BaseURL, client), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
