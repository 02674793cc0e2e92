package provider

import (
	"fmt"

	"go.uber.org/zap"

	"orgagpt/internal/config"
)

// NewChainFromConfig builds the provider chain in the order named by
// cfg.ProviderOrder. Providers without credentials are still placed in
// the chain; they report unavailable and are skipped at resolution
// time, so a key added to the environment on restart changes behavior
// without touching the order.
func NewChainFromConfig(cfg config.Config, logger *zap.Logger) (*Chain, error) {
	if len(cfg.ProviderOrder) == 0 {
		return nil, fmt.Errorf("provider order is empty")
	}

	providers := make([]Provider, 0, len(cfg.ProviderOrder))
	for _, name := range cfg.ProviderOrder {
		p, err := newProvider(name, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return NewChain(providers, logger), nil
}

func newProvider(name string, cfg config.Config) (Provider, error) {
	switch name {
	case "ollama":
		return NewOllamaClient(OllamaConfig{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
			Timeout: cfg.Ollama.Timeout,
		}), nil
	case "huggingface":
		return NewHuggingFaceClient(HuggingFaceConfig{
			APIKey:  cfg.HuggingFace.APIKey,
			BaseURL: cfg.HuggingFace.BaseURL,
			Model:   cfg.HuggingFace.Model,
			Timeout: cfg.HuggingFace.Timeout,
		}), nil
	case "cohere":
		return NewCohereClient(CohereConfig{
			APIKey:  cfg.Cohere.APIKey,
			BaseURL: cfg.Cohere.BaseURL,
			Model:   cfg.Cohere.Model,
			Timeout: cfg.Cohere.Timeout,
		}), nil
	case "gemini":
		return NewGeminiClient(GeminiConfig{
			APIKey:  cfg.Gemini.APIKey,
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout,
		}), nil
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAI.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s (valid: ollama, huggingface, cohere, gemini, openai)", name)
	}
}
