package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type PexelsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type pexelsSearchResponse struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func NewPexelsClient(baseURL, apiKey string) *PexelsClient {
	return &PexelsClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *PexelsClient) Name() string { return "pexels" }

func (c *PexelsClient) Stock() bool { return true }

// Generate searches for a single photo matching the prompt and returns the
// first hit's large rendition URL.
func (c *PexelsClient) Generate(ctx context.Context, prompt string) (*Output, error) {
	query := url.Values{}
	query.Set("query", prompt)
	query.Set("per_page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pexels search failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result pexelsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Photos) == 0 {
		return nil, fmt.Errorf("pexels returned no photos for %q", prompt)
	}
	if result.Photos[0].Src.Large == "" {
		return nil, fmt.Errorf("pexels photo has no large image url")
	}

	return &Output{URL: result.Photos[0].Src.Large}, nil
}
