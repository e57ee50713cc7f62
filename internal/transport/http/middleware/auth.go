package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/altynbekov/streamflix/internal/domain"
	"github.com/altynbekov/streamflix/internal/identity"
	"github.com/altynbekov/streamflix/internal/metrics"
	"github.com/altynbekov/streamflix/internal/token"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie the auth handlers set on login/register.
const SessionCookie = "token"

const (
	errUnauthorized = "not authorized to access this route"
	errInternal     = "internal server error"
)

// tokenVerifier is the slice of token.Codec the guard needs.
type tokenVerifier interface {
	Verify(raw string) (string, error)
}

// userFinder resolves the identity a verified token is bound to.
type userFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth gates protected routes on a valid session token. The Authorization
// header takes precedence over the session cookie. On success the resolved
// user is attached to the request context; it never mutates shared state,
// so running it twice on the same request yields the same identity.
func Auth(codec tokenVerifier, users userFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			unauthorized(c)
			return
		}

		subjectID, err := codec.Verify(raw)
		if err != nil {
			var verr *token.VerificationError
			if errors.As(err, &verr) {
				metrics.TokenVerificationsTotal.WithLabelValues(verr.Reason).Inc()
			}
			unauthorized(c)
			return
		}
		metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

		user, err := users.FindByID(c.Request.Context(), subjectID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				// Token outlived its account.
				unauthorized(c)
				return
			}
			logger.ErrorContext(c.Request.Context(), "resolve session user", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"success": false, "error": errInternal})
			return
		}

		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// RequireRole runs after Auth and rejects identities whose role is not in
// the allow list. The ordering is a wiring contract, not re-verified here;
// a missing identity means Auth never ran and is treated as unauthorized.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := identity.FromContext(c.Request.Context())
		if user == nil {
			unauthorized(c)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "role " + string(user.Role) + " is not permitted to access this route",
		})
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		gin.H{"success": false, "error": errUnauthorized})
}
