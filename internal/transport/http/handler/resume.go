package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/usecase"
	"github.com/gin-gonic/gin"
)

type resumeUsecaser interface {
	List(ctx context.Context, userID uint, pageNumber int) (domain.Page[*domain.Resume], error)
	Get(ctx context.Context, userID, id uint) (*domain.Resume, error)
	Create(ctx context.Context, userID uint, in usecase.ResumeInput) (*domain.Resume, error)
	Update(ctx context.Context, userID, id uint, in usecase.ResumeInput) (*domain.Resume, error)
	Delete(ctx context.Context, userID, id uint) error
}

// ResumeHandler serves the caller's own resumes only.
type ResumeHandler struct {
	resumes resumeUsecaser
	logger  *slog.Logger
}

func NewResumeHandler(resumes resumeUsecaser, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{resumes: resumes, logger: logger.With("component", "resume_handler")}
}

type createResumeRequest struct {
	TemplateID uint   `json:"templateId" binding:"required"`
	Name       string `json:"name"       binding:"required,min=3,max=100"`
	Content    string `json:"content"    binding:"required"`
}

type updateResumeRequest struct {
	TemplateID uint   `json:"templateId"`
	Name       string `json:"name"    binding:"omitempty,min=3,max=100"`
	Content    string `json:"content"`
}

type listResumesQuery struct {
	Page int `form:"page,default=1" binding:"min=1"`
}

// GET /api/resumes?page=N
func (h *ResumeHandler) List(c *gin.Context) {
	q := listResumesQuery{Page: 1}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page, err := h.resumes.List(c.Request.Context(), currentUserID(c), q.Page)
	if err != nil {
		respondError(c, h.logger, "list resumes", err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(page, newResumeResponse))
}

// GET /api/resumes/:id
func (h *ResumeHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	r, err := h.resumes.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, h.logger, "get resume", err)
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(r))
}

// POST /api/resumes
func (h *ResumeHandler) Create(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.resumes.Create(c.Request.Context(), currentUserID(c), usecase.ResumeInput{
		TemplateID: req.TemplateID,
		Name:       req.Name,
		Content:    req.Content,
	})
	if err != nil {
		respondError(c, h.logger, "create resume", err)
		return
	}
	c.JSON(http.StatusCreated, newResumeResponse(r))
}

// PUT /api/resumes/:id
func (h *ResumeHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.resumes.Update(c.Request.Context(), currentUserID(c), id, usecase.ResumeInput{
		TemplateID: req.TemplateID,
		Name:       req.Name,
		Content:    req.Content,
	})
	if err != nil {
		respondError(c, h.logger, "update resume", err)
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(r))
}

// DELETE /api/resumes/:id
func (h *ResumeHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	if err := h.resumes.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, h.logger, "delete resume", err)
		return
	}
	c.Status(http.StatusNoContent)
}
