package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/foodhub/pkg/auth"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
	"github.com/shashiranjanraj/foodhub/pkg/response"
	"github.com/shashiranjanraj/foodhub/pkg/session"
)

// Session keys written at login.
const (
	SessionUsername  = "username"
	SessionLoginType = "login_type"
)

// Identity is the authenticated caller.
type Identity struct {
	Username string
	Role     string
}

type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromCtx returns the caller resolved by Authenticate.
func IdentityFromCtx(r *http.Request) (Identity, bool) {
	return IdentityFromContext(r.Context())
}

// IdentityFromContext is IdentityFromCtx for code that only holds the
// context, such as GraphQL resolvers.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.Username != ""
}

// IsAdmin reports whether the caller has the admin role.
func (id Identity) IsAdmin() bool { return id.Role == "admin" }

// RoleFromCtx returns the caller's role ("user" or "admin").
func RoleFromCtx(r *http.Request) (string, bool) {
	id, ok := IdentityFromCtx(r)
	if !ok {
		return "", false
	}
	return id.Role, true
}

// Authenticate resolves the caller from the session (browser clients) or a
// Bearer token (API clients) and stores it in the request context. It never
// rejects; RequireLogin does.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := fromSession(r); ok {
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
			return
		}

		if raw := bearer(r); raw != "" {
			claims, err := auth.ValidateToken(raw)
			if err != nil {
				logger.WithCtx(r.Context()).Debug("bearer token rejected", "error", err)
			} else {
				id := Identity{Username: claims.Username, Role: claims.Role}
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// RequireLogin answers 401 unless Authenticate resolved a caller.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromCtx(r); !ok {
			response.Error(w, http.StatusUnauthorized, "Please log in first.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func fromSession(r *http.Request) (Identity, bool) {
	sess := session.FromCtx(r)
	name, ok := sess.GetString(SessionUsername)
	if !ok || name == "" {
		return Identity{}, false
	}
	role, _ := sess.GetString(SessionLoginType)
	if role == "" {
		role = "user"
	}
	return Identity{Username: name, Role: role}, true
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
