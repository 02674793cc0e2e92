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

// CohereClient implements Provider for the Cohere generate API.
type CohereClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// CohereConfig holds configuration for the Cohere client.
type CohereConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultCohereConfig returns sensible defaults.
func DefaultCohereConfig(apiKey string) CohereConfig {
	return CohereConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.cohere.ai/v1",
		Model:   "command",
		Timeout: 30 * time.Second,
	}
}

// NewCohereClient creates a Cohere client with custom config.
func NewCohereClient(config CohereConfig) *CohereClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.cohere.ai/v1"
	}
	if config.Model == "" {
		config.Model = "command"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &CohereClient{
		apiKey:  config.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

type cohereRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature,omitempty"`
}

type cohereResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
	Message string `json:"message,omitempty"`
}

// Name implements Provider.
func (c *CohereClient) Name() string { return "cohere" }

// Available implements Provider.
func (c *CohereClient) Available() bool { return c.apiKey != "" }

// Generate sends a generate request.
func (c *CohereClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnavailable
	}

	reqBody := cohereRequest{
		Model:       c.model,
		Prompt:      prompt,
		MaxTokens:   200,
		Temperature: 0.7,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/generate", bytes.NewReader(jsonData))
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
		return "", fmt.Errorf("cohere request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var cohereResp cohereResponse
	if err := json.Unmarshal(body, &cohereResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(cohereResp.Generations) == 0 {
		if cohereResp.Message != "" {
			return "", fmt.Errorf("cohere error: %s", cohereResp.Message)
		}
		return "", fmt.Errorf("no completion returned")
	}

	text := strings.TrimSpace(cohereResp.Generations[0].Text)
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	return text, nil
}

// SetModel changes the model used for completions.
func (c *CohereClient) SetModel(model string) {
	c.model = model
}

// GetModel returns the current model.
func (c *CohereClient) GetModel() string {
	return c.model
}
