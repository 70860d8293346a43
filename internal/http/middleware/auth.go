package middleware

import (
	"net/http"
	"strings"

	"adminhub/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// TokenParser turns a bearer token into the caller it identifies.
type TokenParser interface {
	Parse(raw string) (domain.RequestContext, error)
}

// Auth rejects requests without a valid bearer token and stores the caller
// as userID and userRole on the context.
func Auth(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", domain.UnauthorizedError{}.Error())
			return
		}
		rc, err := p.Parse(strings.TrimSpace(raw))
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(userIDKey, rc.UserID)
		c.Set(userRoleKey, string(rc.Role))
		c.Next()
	}
}

// Caller returns the authenticated caller, or the zero value before Auth ran.
func Caller(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID: c.GetInt64(userIDKey),
		Role:   domain.UserRole(c.GetString(userRoleKey)),
	}
}

// WithCaller is what Auth stores; handler tests use it to skip token issuing.
func WithCaller(c *gin.Context, rc domain.RequestContext) {
	c.Set(userIDKey, rc.UserID)
	c.Set(userRoleKey, string(rc.Role))
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg,
		"code":       code,
		"message":    msg,
		"request_id": GetRequestID(c),
	})
}
