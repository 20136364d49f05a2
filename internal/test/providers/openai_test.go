package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decky-backend/internal/providers"
)

func TestOpenAIClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dall-e-3", req["model"])
		assert.Equal(t, float64(1), req["n"])
		assert.Equal(t, "standard", req["quality"])
		assert.Equal(t, "1024x1024", req["size"])
		assert.Equal(t, "a red fox. Theme: watercolor", req["prompt"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"url":"https://oai/img/1.png"}]}`))
	}))
	defer server.Close()

	client := providers.NewOpenAIClient(server.URL, "test-key")
	assert.False(t, client.Stock())

	out, err := client.Generate(context.Background(), "a red fox. Theme: watercolor")
	require.NoError(t, err)
	// Hosted result URL is ephemeral: handed back for the orchestrator to
	// download and persist, not for passthrough.
	assert.Equal(t, "https://oai/img/1.png", out.SourceURL)
	assert.Empty(t, out.URL)
}

func TestOpenAIClient_Generate_NoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := providers.NewOpenAIClient(server.URL, "test-key")

	_, err := client.Generate(context.Background(), "a red fox")
	assert.Error(t, err)
}

func TestOpenAIClient_Generate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"content policy"}}`))
	}))
	defer server.Close()

	client := providers.NewOpenAIClient(server.URL, "test-key")

	_, err := client.Generate(context.Background(), "a red fox")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content policy")
}
