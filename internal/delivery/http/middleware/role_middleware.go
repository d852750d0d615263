package middleware

import (
	"net/http"

	"hospital-scheduling/pkg/response"
)

// RequireAdmin guards the resource-registry admin routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetUserRoleFromContext(r.Context())
		if !ok || role != "admin" {
			response.Error(w, http.StatusForbidden, "Admin role required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
