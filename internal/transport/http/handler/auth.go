package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/usecase"
	"github.com/gin-gonic/gin"
)

// registrationUsecaser is the subset of RegistrationUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type registrationUsecaser interface {
	Initiate(ctx context.Context, in usecase.RegisterInput) (string, error)
	Verify(ctx context.Context, code string) bool
	Resend(ctx context.Context, email string) (string, error)
}

type loginUsecaser interface {
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
}

type AuthHandler struct {
	registration registrationUsecaser
	auth         loginUsecaser
	exposeOTP    bool
	logger       *slog.Logger
}

// NewAuthHandler builds the registration and login endpoints. When exposeOTP
// is set, issued codes are echoed in responses.
func NewAuthHandler(registration registrationUsecaser, auth loginUsecaser, exposeOTP bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		auth:         auth,
		exposeOTP:    exposeOTP,
		logger:       logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	FirstName       string `json:"firstName"       binding:"required,max=100"`
	LastName        string `json:"lastName"        binding:"max=100"`
	Email           string `json:"email"           binding:"required,email"`
	Password        string `json:"password"        binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

type otpRequest struct {
	OTP string `json:"otp" binding:"required,len=6,numeric"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register/initiate
func (h *AuthHandler) InitiateRegistration(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.registration.Initiate(c.Request.Context(), usecase.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, h.logger, "initiate registration", err)
		return
	}

	c.JSON(http.StatusOK, h.withOTP(gin.H{
		"message": "OTP sent successfully. Please verify your email to complete registration.",
	}, code))
}

// POST /api/auth/register/verify
// Every failure collapses to the same 400 so the endpoint is not a code oracle.
func (h *AuthHandler) VerifyRegistration(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidOTP})
		return
	}

	if !h.registration.Verify(c.Request.Context(), req.OTP) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidOTP})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified and registration completed successfully"})
}

// POST /api/auth/register/resend-otp
func (h *AuthHandler) ResendRegistrationOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.registration.Resend(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.logger, "resend registration otp", err)
		return
	}

	c.JSON(http.StatusOK, h.withOTP(gin.H{"message": "OTP resent successfully"}, code))
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		respondError(c, h.logger, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      res.User.Role,
	})
}

func (h *AuthHandler) withOTP(body gin.H, code string) gin.H {
	if h.exposeOTP {
		body["otp"] = code
	}
	return body
}
