package httpapi

import (
	"strings"
	"time"

	apperrors "gavel-auction-service/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const ctxUserIDKey = "auth_user_id"

// RequireAuth validates the bearer token and stores the caller's user ID
// in the request context for handlers to read via currentUser.
func RequireAuth(verifier *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respondError(c, apperrors.NewUnauthorizedError("missing authorization header"))
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			respondError(c, apperrors.NewUnauthorizedError("authorization header must be a bearer token"))
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) uuid.UUID {
	value, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// RequestLogger logs each request with its status and latency
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request handled")
	}
}
