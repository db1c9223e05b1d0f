package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/pkg/jwt"
	"github.com/lumen-studio/core/internal/pkg/response"
	sessionpkg "github.com/lumen-studio/core/internal/pkg/session"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyActor  = "actor"
	ContextKeySID    = "session_id"
)

// Auth returns a middleware that enforces JWT authentication backed by a
// revocable DB session.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateTokenClaims(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}

		var user models.AdminUser
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			response.Unauthorized(c)
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyActor, user.Username)
		c.Set(ContextKeySID, claims.SessionID)
		c.Next()
	}
}

func validateTokenClaims(db *gorm.DB, rawToken string) (*jwt.Claims, error) {
	if rawToken == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(rawToken)
	if err != nil {
		return nil, err
	}
	active, err := sessionpkg.IsActive(db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errors.New("session expired or revoked")
	}
	return claims, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(uint)
	return id
}

// CurrentActor extracts the authenticated admin identity from context.
func CurrentActor(c *gin.Context) string {
	v, _ := c.Get(ContextKeyActor)
	actor, _ := v.(string)
	return actor
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated reports whether the request carries a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != 0
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
