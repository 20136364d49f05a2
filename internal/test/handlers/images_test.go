package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decky-backend/internal/handlers"
	"decky-backend/internal/middleware"
	"decky-backend/internal/models"
	"decky-backend/internal/providers"
)

type stubProvider struct {
	stock bool
	out   *providers.Output
	err   error
}

func (s *stubProvider) Name() string { return "stub" }
func (s *stubProvider) Stock() bool  { return s.stock }
func (s *stubProvider) Generate(_ context.Context, _ string) (*providers.Output, error) {
	return s.out, s.err
}

func newImagesRouter(provider providers.ImageProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "42")
	})
	handler := handlers.NewImagesHandler(provider, nil, nil)
	router.POST("/images/generate", handler.GenerateImage)
	return router
}

func TestGenerateImage_NoProvider(t *testing.T) {
	router := newImagesRouter(nil)

	body, _ := json.Marshal(models.GenerateImageRequest{Prompt: "a red fox"})
	req, _ := http.NewRequest("POST", "/images/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.GenerateImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Placeholder)
	assert.Equal(t, models.PlaceholderImagePath, resp.URL)
}

func TestGenerateImage_StockPassthrough(t *testing.T) {
	router := newImagesRouter(&stubProvider{
		stock: true,
		out:   &providers.Output{URL: "https://img/x.jpg"},
	})

	body, _ := json.Marshal(models.GenerateImageRequest{Prompt: "mountain lake"})
	req, _ := http.NewRequest("POST", "/images/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.GenerateImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Placeholder)
	assert.Equal(t, "https://img/x.jpg", resp.URL)
}

func TestGenerateImage_MissingPrompt(t *testing.T) {
	router := newImagesRouter(nil)

	req, _ := http.NewRequest("POST", "/images/generate", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
