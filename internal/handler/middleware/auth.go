package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"rinto/internal/handler/httperr"
	"rinto/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxUserIDKey = "user_id"

var errTokenRequired = errors.New("access token required")

type AuthMiddleware struct {
	verifier *token.Verifier
}

func NewAuthMiddleware(verifier *token.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw string
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			raw = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if raw == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Unauthorized", nil)
			return
		}

		userID, err := m.verifier.Verify(raw)
		if err != nil {
			slog.Warn("token verification failed", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Unauthorized", nil)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}
