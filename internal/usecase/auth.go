package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/password"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

const defaultJWTTTL = time.Hour

type AuthUsecase struct {
	users  repository.UserRepository
	hasher password.Hasher
	logger *slog.Logger
	jwtKey []byte
	jwtTTL time.Duration
	now    func() time.Time
}

func NewAuthUsecase(users repository.UserRepository, hasher password.Hasher, logger *slog.Logger, jwtKey []byte, jwtTTL time.Duration) *AuthUsecase {
	if jwtTTL <= 0 {
		jwtTTL = defaultJWTTTL
	}
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		logger: logger.With("component", "auth"),
		jwtKey: jwtKey,
		jwtTTL: jwtTTL,
		now:    time.Now,
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login checks the password against the stored hash and returns a signed
// HS256 token. Unknown emails and wrong passwords are indistinguishable.
func (u *AuthUsecase) Login(ctx context.Context, email, plain string) (*LoginResult, error) {
	addr := domain.NormalizeEmail(email)
	if addr == "" || plain == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := u.users.FindByEmail(ctx, addr)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.HasPassword() {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.hasher.Verify(plain, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := u.now()
	expiresAt := now.Add(u.jwtTTL)
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("sign jwt: %w", err)
	}

	u.logger.InfoContext(ctx, "login", "user_id", user.ID)
	return &LoginResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}
