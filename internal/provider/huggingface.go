package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HuggingFaceClient implements Provider for the Hugging Face
// inference API.
type HuggingFaceClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// HuggingFaceConfig holds configuration for the Hugging Face client.
type HuggingFaceConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultHuggingFaceConfig returns sensible defaults.
func DefaultHuggingFaceConfig(apiKey string) HuggingFaceConfig {
	return HuggingFaceConfig{
		APIKey:  apiKey,
		BaseURL: "https://api-inference.huggingface.co/models",
		Model:   "microsoft/DialoGPT-medium",
		Timeout: 30 * time.Second,
	}
}

// NewHuggingFaceClient creates a Hugging Face client with custom config.
func NewHuggingFaceClient(config HuggingFaceConfig) *HuggingFaceClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if config.Model == "" {
		config.Model = "microsoft/DialoGPT-medium"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &HuggingFaceClient{
		apiKey:  config.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength   int     `json:"max_length,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// The inference API returns either a bare object or a one-element
// array depending on the model; both carry generated_text.
type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Name implements Provider.
func (c *HuggingFaceClient) Name() string { return "huggingface" }

// Available implements Provider.
func (c *HuggingFaceClient) Available() bool { return c.apiKey != "" }

// Generate sends an inference request.
func (c *HuggingFaceClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnavailable
	}

	reqBody := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxLength:   200,
			Temperature: 0.7,
			TopP:        0.9,
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/"+c.model, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface request failed with status %d: %s", resp.StatusCode, string(body))
	}

	text, err := parseHFBody(body)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	return text, nil
}

func parseHFBody(body []byte) (string, error) {
	var list []hfGeneration
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return strings.TrimSpace(list[0].GeneratedText), nil
	}
	var single hfGeneration
	if err := json.Unmarshal(body, &single); err == nil {
		return strings.TrimSpace(single.GeneratedText), nil
	}
	return "", fmt.Errorf("failed to parse response: %s", string(body))
}

// SetModel changes the model used for completions.
func (c *HuggingFaceClient) SetModel(model string) {
	c.model = model
}

// GetModel returns the current model.
func (c *HuggingFaceClient) GetModel() string {
	return c.model
}
