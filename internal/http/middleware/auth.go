package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirewire/ledger-service/internal/auth"
	"github.com/hirewire/ledger-service/internal/model"
)

const principalKey = "principal"

// ProfileSource resolves a profile id to its current ledger profile.
type ProfileSource interface {
	GetProfile(ctx context.Context, profileID uuid.UUID) (*model.Profile, error)
}

// Auth verifies the bearer token and attaches the resolved principal to the
// request. Tokens naming a profile that no longer exists are rejected the
// same way as invalid ones.
func Auth(parser *auth.Parser, profiles ProfileSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		profileID, err := parser.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), profileID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown profile"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(principalKey, model.Principal{
			ProfileID: profile.ID,
			Role:      profile.Role,
			FullName:  profile.FullName(),
			Balance:   profile.Balance,
		})
		c.Next()
	}
}

// MustPrincipal returns the principal attached by Auth. The second result is
// false when the route was registered without the middleware.
func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
