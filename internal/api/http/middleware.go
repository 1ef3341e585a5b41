package http

import (
	"context"
	"net/http"
	"strings"

	"docintake-backend/internal/security"
)

type contextKey string

const tenantIDKey contextKey = "tenant_id"

// TenantAuth validates the Bearer token on tenant-authenticated routes and
// places the tenant id into the request context.
func TenantAuth(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, security.ErrInvalidToken)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), tenantIDKey, claims.TenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantIDFromContext extracts the authenticated tenant id set by TenantAuth.
func TenantIDFromContext(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(tenantIDKey).(int32)
	return id, ok
}
