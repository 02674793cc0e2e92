// Package config loads the orgagpt.yaml configuration file. Provider
// credentials and endpoints are resolved here once and threaded into
// constructors; nothing in the resolution path reads the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ProviderSettings configures one text-generation backend.
type ProviderSettings struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Config is the root configuration.
type Config struct {
	// ProviderOrder lists providers in resolution order, local-first
	// by default. Unknown names are rejected at chain construction.
	ProviderOrder []string `yaml:"provider_order"`

	Ollama      ProviderSettings `yaml:"ollama"`
	HuggingFace ProviderSettings `yaml:"huggingface"`
	Cohere      ProviderSettings `yaml:"cohere"`
	Gemini      ProviderSettings `yaml:"gemini"`
	OpenAI      ProviderSettings `yaml:"openai"`

	// EnergyLevel is the default used when the conversation context
	// does not carry one (high/medium/low).
	EnergyLevel string `yaml:"energy_level"`

	// KnowledgePath optionally points at a yaml corpus that replaces
	// the built-in insight set.
	KnowledgePath string `yaml:"knowledge_path"`

	LogLevel string `yaml:"log_level"` // debug/info/warn/error
}

// Default returns the configuration used when no file is present:
// local Ollama first, then the free-tier remote providers, paid last.
func Default() Config {
	return Config{
		ProviderOrder: []string{"ollama", "huggingface", "cohere", "gemini", "openai"},
		Ollama: ProviderSettings{
			BaseURL: "http://localhost:11434",
			Model:   "mistral",
			Timeout: 60 * time.Second,
		},
		HuggingFace: ProviderSettings{
			BaseURL: "https://api-inference.huggingface.co/models",
			Model:   "microsoft/DialoGPT-medium",
			Timeout: 30 * time.Second,
		},
		Cohere: ProviderSettings{
			BaseURL: "https://api.cohere.ai/v1",
			Model:   "command",
			Timeout: 30 * time.Second,
		},
		Gemini: ProviderSettings{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Model:   "gemini-pro",
			Timeout: 30 * time.Second,
		},
		OpenAI: ProviderSettings{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-3.5-turbo",
			Timeout: 30 * time.Second,
		},
		EnergyLevel: "medium",
		LogLevel:    "info",
	}
}

// Load reads the config file at path, layered defaults < environment
// < file. A missing file is not an error; defaults plus env overrides
// apply.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.applyEnv()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv pulls credentials and the local daemon address from the
// environment. Runs before the file layer, so file values win.
func (c *Config) applyEnv() {
	setFromEnv(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setFromEnv(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setFromEnv(&c.Cohere.APIKey, "COHERE_API_KEY")
	setFromEnv(&c.HuggingFace.APIKey, "HF_API_KEY")
	setFromEnv(&c.Ollama.BaseURL, "OLLAMA_HOST")
}

func setFromEnv(dst *string, envVar string) {
	if v := os.Getenv(envVar); v != "" {
		*dst = v
	}
}
