package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/gin-gonic/gin"
)

// UserFinder is satisfied by repository.UserRepository.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// EnsureUser runs after Auth. It reloads the account so a deleted user's
// token stops working and role changes apply before the token expires.
func EnsureUser(users UserFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user, err := users.FindByID(ctx, c.GetUint(UserIDKey))
		if errors.Is(err, domain.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		if err != nil {
			logger.ErrorContext(ctx, "ensure user lookup", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Internal server error"})
			return
		}
		c.Set(RoleKey, string(user.Role))
		c.Set(EmailKey, user.Email)
		c.Next()
	}
}
