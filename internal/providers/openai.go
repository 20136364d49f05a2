package providers

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

const (
	dalleModel   = "dall-e-3"
	dalleSize    = "1024x1024"
	dalleQuality = "standard"
)

type OpenAIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type imageGenerationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Quality string `json:"quality"`
	Size    string `json:"size"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func NewOpenAIClient(baseURL, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *OpenAIClient) Name() string { return "dall-e-3" }

func (c *OpenAIClient) Stock() bool { return false }

// Generate requests a single 1024x1024 standard-quality image. The returned
// URL is hosted by OpenAI and expires; the orchestrator downloads and
// persists it, so it is handed back as SourceURL rather than URL.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (*Output, error) {
	jsonData, err := json.Marshal(imageGenerationRequest{
		Model:   dalleModel,
		Prompt:  prompt,
		N:       1,
		Quality: dalleQuality,
		Size:    dalleSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("image generation failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result imageGenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return nil, fmt.Errorf("image generation returned no image url")
	}

	return &Output{SourceURL: result.Data[0].URL}, nil
}
