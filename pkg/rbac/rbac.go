// Package rbac guards routes by the caller's role.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/foodhub/pkg/middleware"
	"github.com/shashiranjanraj/foodhub/pkg/response"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// HasRole allows the request only when the caller resolved by
// middleware.Authenticate has one of roles. Anonymous callers get 401,
// authenticated callers with another role get 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Error(w, http.StatusUnauthorized, "Please log in first.")
				return
			}
			if !allowed[role] {
				response.Error(w, http.StatusForbidden, "Admin access required.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin is HasRole(RoleAdmin).
func Admin(next http.Handler) http.Handler {
	return HasRole(RoleAdmin)(next)
}
