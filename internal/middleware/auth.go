package middleware

import (
	"errors"
	"strings"

	"github.com/contributor-dev/contributor-api/internal/constants"
	apierrors "github.com/contributor-dev/contributor-api/internal/errors"
	"github.com/contributor-dev/contributor-api/internal/models"
	"github.com/contributor-dev/contributor-api/internal/repository"
	"github.com/contributor-dev/contributor-api/internal/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireAuth resolves the bearer token to an active user. It is the single
// trust boundary: handlers behind it can assume a validated, active user.
func RequireAuth(codec *token.Codec, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		userID, err := codec.Verify(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				apierrors.Unauthorized(c, "Token expired")
			} else {
				apierrors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			apierrors.Unauthorized(c, "Inactive user")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetCurrentUser retrieves the authenticated user loaded by RequireAuth
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}
