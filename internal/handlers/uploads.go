package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"decky-backend/internal/middleware"
	"decky-backend/internal/models"
	"decky-backend/internal/supabase"
)

const maxUploadSize = 50 << 20 // 50 MB

type UploadsHandler struct {
	storageClient *supabase.StorageClient
}

func NewUploadsHandler(storageClient *supabase.StorageClient) *UploadsHandler {
	return &UploadsHandler{storageClient: storageClient}
}

// Upload godoc
// @Summary     Upload a file
// @Description Stores a file under the caller's uploads namespace and returns a signed URL
// @Tags        files
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "File to upload"
// @Success     200 {object} models.UploadFileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /files/upload [post]
func (h *UploadsHandler) Upload(c *gin.Context) {
	if h.storageClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "storage not available"})
		return
	}

	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing file", Message: err.Error()})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	key := supabase.BuildUserKey(userID.(string), supabase.KindUploads, filename)

	contentType := fileHeader.Header.Get("Content-Type")
	if _, err := h.storageClient.Store(c.Request.Context(), key, data, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store file", Message: err.Error()})
		return
	}

	signedURL, err := h.storageClient.SignedURL(c.Request.Context(), key, 3600)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to sign file", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.UploadFileResponse{
		Key:       key,
		SignedURL: signedURL,
		Size:      fileHeader.Size,
	})
}

// DeleteFile godoc
// @Summary     Delete an uploaded file
// @Description Deletes an object from the caller's own namespace. Storage failures propagate as errors; there is no fallback for deletion.
// @Tags        files
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.DeleteFileRequest true "Storage key"
// @Success     204
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /files [delete]
func (h *UploadsHandler) DeleteFile(c *gin.Context) {
	if h.storageClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "storage not available"})
		return
	}

	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	// Callers may only touch their own namespace.
	if !strings.HasPrefix(req.Key, "users/"+userID.(string)+"/") {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "key outside caller namespace"})
		return
	}

	if err := h.storageClient.Delete(c.Request.Context(), req.Key); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete file", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
