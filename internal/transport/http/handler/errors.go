package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errInvalidOTP         = "Invalid or expired OTP"
	errInvalidCredentials = "Invalid credentials"
	errPasswordMismatch   = "Passwords do not match"
	errResetFailed        = "Failed to reset password. Please try again."
	errInvalidID          = "Invalid id"
)

// statusFor maps domain errors to HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDomainNotAllowed),
		errors.Is(err, domain.ErrEmailNotRegistered),
		errors.Is(err, domain.ErrInvalidTemplate),
		errors.Is(err, domain.ErrRoleChangeNotAllowed),
		errors.Is(err, domain.ErrNothingToImport):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNoPendingRegistration),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrResumeNotFound),
		errors.Is(err, domain.ErrPageOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Server errors are logged
// and their detail is not sent to the client.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(status, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
