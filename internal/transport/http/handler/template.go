package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/usecase"
	"github.com/gin-gonic/gin"
)

type templateUsecaser interface {
	List(ctx context.Context) ([]*domain.Template, error)
	Get(ctx context.Context, id uint) (*domain.Template, error)
	Create(ctx context.Context, in usecase.TemplateInput) (*domain.Template, error)
	Update(ctx context.Context, id uint, in usecase.TemplateInput) (*domain.Template, error)
	Delete(ctx context.Context, id uint) error
}

type TemplateHandler struct {
	templates templateUsecaser
	logger    *slog.Logger
}

func NewTemplateHandler(templates templateUsecaser, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, logger: logger.With("component", "template_handler")}
}

type templateRequest struct {
	Name        string             `json:"name"        binding:"required,max=100"`
	Content     string             `json:"content"     binding:"required"`
	ContentType domain.ContentType `json:"contentType" binding:"omitempty,oneof=html json"`
}

func (r templateRequest) input() usecase.TemplateInput {
	return usecase.TemplateInput{Name: r.Name, Content: r.Content, ContentType: r.ContentType}
}

// GET /api/templates
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list templates", err)
		return
	}
	c.JSON(http.StatusOK, newTemplateResponses(templates))
}

// GET /api/templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	t, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get template", err)
		return
	}
	c.JSON(http.StatusOK, newTemplateResponse(t))
}

// POST /api/templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.templates.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.logger, "create template", err)
		return
	}
	c.JSON(http.StatusCreated, newTemplateResponse(t))
}

// PUT /api/templates/:id
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.templates.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.logger, "update template", err)
		return
	}
	c.JSON(http.StatusOK, newTemplateResponse(t))
}

// DELETE /api/templates/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete template", err)
		return
	}
	c.Status(http.StatusNoContent)
}
