package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"decky-backend/internal/middleware"
	"decky-backend/internal/models"
	"decky-backend/internal/providers"
	"decky-backend/internal/services"
	"decky-backend/internal/supabase"
)

type ImagesHandler struct {
	provider      providers.ImageProvider
	storageClient *supabase.StorageClient
	dbClient      *supabase.DatabaseClient
}

func NewImagesHandler(provider providers.ImageProvider, storageClient *supabase.StorageClient, dbClient *supabase.DatabaseClient) *ImagesHandler {
	return &ImagesHandler{
		provider:      provider,
		storageClient: storageClient,
		dbClient:      dbClient,
	}
}

// GenerateImage godoc
// @Summary     Generate an image for a prompt
// @Description Resolves the configured image provider and returns a renderable image URL. Never fails: when no provider is configured or acquisition fails, the placeholder path is returned.
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateImageRequest true "Prompt and optional theme"
// @Success     200 {object} models.GenerateImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /images/generate [post]
func (h *ImagesHandler) GenerateImage(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	service := services.NewImageGenerationService(h.provider, h.storageClient, userID.(string))
	result := service.Generate(c.Request.Context(), models.ImagePrompt{
		Prompt:      req.Prompt,
		ThemePrompt: req.Theme,
	})

	resp := models.GenerateImageResponse{URL: result.ImageURL()}

	switch img := result.(type) {
	case models.PlaceholderImage:
		resp.Placeholder = true
	case models.StoredImage:
		if h.dbClient != nil {
			asset, err := h.dbClient.CreateImageAsset(img.UserID, img.SignedURL, map[string]interface{}{
				"prompt":       img.Prompt,
				"theme_prompt": img.ThemePrompt,
			})
			if err != nil {
				// The image itself was produced; losing the record is not
				// worth failing the request over.
				log.Printf("Failed to record image asset: %v", err)
			} else {
				resp.AssetID = asset.ID.String()
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ListImages godoc
// @Summary     List generated image assets
// @Description Returns the caller's stored image assets, newest first
// @Tags        images
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ImageAssetListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /images [get]
func (h *ImagesHandler) ListImages(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	assets, err := h.dbClient.ListImageAssets(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list image assets", Message: err.Error()})
		return
	}

	resp := models.ImageAssetListResponse{Assets: make([]models.ImageAssetResponse, 0, len(assets))}
	for _, asset := range assets {
		var extras map[string]interface{}
		if len(asset.Extras) > 0 {
			_ = json.Unmarshal(asset.Extras, &extras)
		}
		resp.Assets = append(resp.Assets, models.ImageAssetResponse{
			ID:        asset.ID.String(),
			Path:      asset.Path,
			Extras:    extras,
			CreatedAt: asset.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}
