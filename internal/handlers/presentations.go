package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"decky-backend/internal/middleware"
	"decky-backend/internal/models"
	"decky-backend/internal/supabase"
)

type PresentationsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewPresentationsHandler(dbClient *supabase.DatabaseClient) *PresentationsHandler {
	return &PresentationsHandler{dbClient: dbClient}
}

// CreatePresentation godoc
// @Summary     Create a presentation
// @Tags        presentations
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreatePresentationRequest true "Presentation data"
// @Success     201 {object} models.PresentationResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /presentations [post]
func (h *PresentationsHandler) CreatePresentation(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.CreatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	p, err := h.dbClient.CreatePresentation(userID.(string), req.Title, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create presentation", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, presentationResponse(p))
}

// GetPresentation godoc
// @Summary     Get a presentation
// @Description Returns a presentation the caller owns. Presentations owned by other users report not found.
// @Tags        presentations
// @Produce     json
// @Security    Bearer
// @Param       presentation_id path string true "Presentation ID (UUID)"
// @Success     200 {object} models.PresentationResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /presentations/{presentation_id} [get]
func (h *PresentationsHandler) GetPresentation(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	presentationID, err := uuid.Parse(c.Param("presentation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid presentation id"})
		return
	}

	p, err := h.dbClient.GetPresentation(presentationID, userID.(string))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "presentation not found or access denied"})
		return
	}

	c.JSON(http.StatusOK, presentationResponse(p))
}

// ListPresentations godoc
// @Summary     List the caller's presentations
// @Tags        presentations
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.PresentationListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /presentations [get]
func (h *PresentationsHandler) ListPresentations(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	presentations, err := h.dbClient.ListPresentations(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list presentations", Message: err.Error()})
		return
	}

	resp := models.PresentationListResponse{Presentations: make([]models.PresentationResponse, 0, len(presentations))}
	for i := range presentations {
		resp.Presentations = append(resp.Presentations, presentationResponse(&presentations[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// DeletePresentation godoc
// @Summary     Delete a presentation
// @Tags        presentations
// @Produce     json
// @Security    Bearer
// @Param       presentation_id path string true "Presentation ID (UUID)"
// @Success     204
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /presentations/{presentation_id} [delete]
func (h *PresentationsHandler) DeletePresentation(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	presentationID, err := uuid.Parse(c.Param("presentation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid presentation id"})
		return
	}

	if err := h.dbClient.DeletePresentation(presentationID, userID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete presentation", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func presentationResponse(p *models.Presentation) models.PresentationResponse {
	var content map[string]interface{}
	if len(p.Content) > 0 {
		_ = json.Unmarshal(p.Content, &content)
	}
	return models.PresentationResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
