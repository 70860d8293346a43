package middleware

import (
	"net/http"
	"strings"

	"adminhub/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles lets the request through only when the role Auth stored is
// one of allowed.
//
//	users.POST("", RequireRoles(domain.RoleAdmin), h.CreateUser)
func RequireRoles(allowed ...domain.UserRole) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[strings.ToUpper(strings.TrimSpace(string(r)))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToUpper(strings.TrimSpace(c.GetString(userRoleKey)))
		if role == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", domain.UnauthorizedError{}.Error())
			return
		}
		if _, ok := set[role]; !ok {
			abort(c, http.StatusForbidden, "forbidden", domain.ForbiddenError{}.Error())
			return
		}
		c.Next()
	}
}
