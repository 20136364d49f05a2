package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decky-backend/internal/providers"
)

func TestPexelsClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "mountain lake", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos":[{"src":{"large":"https://img/x.jpg"}}]}`))
	}))
	defer server.Close()

	client := providers.NewPexelsClient(server.URL, "test-key")
	assert.True(t, client.Stock())

	out, err := client.Generate(context.Background(), "mountain lake")
	require.NoError(t, err)
	assert.Equal(t, "https://img/x.jpg", out.URL)
	assert.Empty(t, out.Data)
}

func TestPexelsClient_Generate_NoPhotos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos":[]}`))
	}))
	defer server.Close()

	client := providers.NewPexelsClient(server.URL, "test-key")

	_, err := client.Generate(context.Background(), "nothing matches this")
	assert.Error(t, err)
}

func TestPexelsClient_Generate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := providers.NewPexelsClient(server.URL, "test-key")

	_, err := client.Generate(context.Background(), "mountain lake")
	assert.Error(t, err)
}
