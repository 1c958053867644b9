package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/reqctx"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	errUnauthorized = "Unauthorized"
	errForbidden    = "Forbidden"
)

// Context keys set by Auth.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
	EmailKey  = "email"
)

// Auth validates an HS256 Bearer JWT and sets userID (uint), role and email
// in the gin context. The user id is also attached to the request context for
// logging.
func Auth(jwtKey []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		id, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		role, _ := claims["role"].(string)
		email, _ := claims["email"].(string)

		c.Set(UserIDKey, uint(id))
		c.Set(RoleKey, role)
		c.Set(EmailKey, email)
		c.Request = c.Request.WithContext(reqctx.WithUserID(c.Request.Context(), uint(id)))
		c.Next()
	}
}
