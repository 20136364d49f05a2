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

type PixabayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type pixabaySearchResponse struct {
	Hits []struct {
		LargeImageURL string `json:"largeImageURL"`
	} `json:"hits"`
}

func NewPixabayClient(baseURL, apiKey string) *PixabayClient {
	return &PixabayClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *PixabayClient) Name() string { return "pixabay" }

func (c *PixabayClient) Stock() bool { return true }

// Generate searches for up to three photos matching the prompt and returns
// the first hit's largest-resolution URL.
func (c *PixabayClient) Generate(ctx context.Context, prompt string) (*Output, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("q", prompt)
	query.Set("image_type", "photo")
	query.Set("per_page", "3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pixabay search failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result pixabaySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Hits) == 0 {
		return nil, fmt.Errorf("pixabay returned no hits for %q", prompt)
	}
	if result.Hits[0].LargeImageURL == "" {
		return nil, fmt.Errorf("pixabay hit has no large image url")
	}

	return &Output{URL: result.Hits[0].LargeImageURL}, nil
}
