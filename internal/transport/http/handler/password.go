package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/gin-gonic/gin"
)

type passwordResetUsecaser interface {
	Initiate(ctx context.Context, email string) (string, error)
	VerifyCode(ctx context.Context, code string) bool
	EmailForCode(ctx context.Context, code string) (string, bool)
	ResetWithCode(ctx context.Context, code, newPassword string) bool
	Resend(ctx context.Context, email string) (string, error)
}

type PasswordHandler struct {
	resets    passwordResetUsecaser
	exposeOTP bool
	logger    *slog.Logger
}

func NewPasswordHandler(resets passwordResetUsecaser, exposeOTP bool, logger *slog.Logger) *PasswordHandler {
	return &PasswordHandler{
		resets:    resets,
		exposeOTP: exposeOTP,
		logger:    logger.With("component", "password_handler"),
	}
}

type resetPasswordRequest struct {
	OTP             string `json:"otp"             binding:"required,len=6,numeric"`
	Email           string `json:"email"           binding:"omitempty,email"`
	NewPassword     string `json:"newPassword"     binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// POST /api/password/forgot
func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.resets.Initiate(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.logger, "initiate password reset", err)
		return
	}

	c.JSON(http.StatusOK, h.withOTP(gin.H{
		"message": "Password reset OTP sent successfully. Please check your email.",
	}, code))
}

// POST /api/password/verify-otp
func (h *PasswordHandler) VerifyOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidOTP})
		return
	}

	if !h.resets.VerifyCode(c.Request.Context(), req.OTP) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidOTP})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully. Please set your new password."})
}

// PATCH /api/password/reset
// The code is required; an email, when sent, must be the one the code was
// issued to.
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": errPasswordMismatch})
		return
	}

	ctx := c.Request.Context()
	if req.Email != "" {
		owner, ok := h.resets.EmailForCode(ctx, req.OTP)
		if !ok || owner != domain.NormalizeEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidOTP})
			return
		}
	}

	if !h.resets.ResetWithCode(ctx, req.OTP, req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errResetFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// POST /api/password/resend-otp
func (h *PasswordHandler) ResendOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.resets.Resend(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.logger, "resend password reset otp", err)
		return
	}

	c.JSON(http.StatusOK, h.withOTP(gin.H{"message": "OTP resent successfully"}, code))
}

func (h *PasswordHandler) withOTP(body gin.H, code string) gin.H {
	if h.exposeOTP {
		body["otp"] = code
	}
	return body
}
