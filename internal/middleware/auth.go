package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/services"
)

// Context keys set by Authenticate.
const (
	UserIDKey = "userID"
	UserKey   = "user"
)

// Authenticate resolves the bearer token in the Authorization header to an
// active user and stores the user and its ID in the context. Requests
// without a valid authentication token are rejected with 401.
func Authenticate(tokens services.TokenServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", "Authorization")

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		// Check if the header is in the correct format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrInvalidToken, "Invalid authorization header format"))
			return
		}

		user, err := tokens.UserForToken(models.ScopeAuthentication, parts[1])
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}
