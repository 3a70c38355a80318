package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/vibecheck/backend/internal/apierror"
	"github.com/JonnyWalker81/vibecheck/backend/internal/auth"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
)

// Context keys set by Auth
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// TokenVerifier validates an access token
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth middleware to verify access tokens. The token is read from the
// Authorization header, falling back to the session cookie.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		token, ok := extractToken(c)
		if !ok {
			log.Debug("authentication failed: missing or malformed credentials")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			log.Warn("authentication failed: token verification error", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUsername, claims.Username)

		ctx := logger.WithUserID(c.Request.Context(), claims.Subject)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", false
		}
		return strings.TrimSpace(token), true
	}

	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// UserID returns the authenticated user's id
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
