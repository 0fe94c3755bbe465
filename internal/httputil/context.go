package httputil

import (
	"context"
	"net/http"

	"staffhub/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	scopeKey contextKey = "scope"
	roleKey  contextKey = "role"
)

// WithIdentity adds the authenticated scope and role to the request context
func WithIdentity(r *http.Request, scope models.Scope, role string) *http.Request {
	ctx := context.WithValue(r.Context(), scopeKey, scope)
	ctx = context.WithValue(ctx, roleKey, role)
	return r.WithContext(ctx)
}

// GetScope retrieves the authenticated (company, employee) scope from the
// request context. Returns a zero scope if the request is unauthenticated.
func GetScope(r *http.Request) models.Scope {
	scope, _ := r.Context().Value(scopeKey).(models.Scope)
	return scope
}

// GetRole retrieves the authenticated role, empty string if not found
func GetRole(r *http.Request) string {
	role, _ := r.Context().Value(roleKey).(string)
	return role
}
