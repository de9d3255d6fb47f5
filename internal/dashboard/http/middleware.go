package http

import (
	"net/http"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/pkg/httpx"
)

// requireRole gates a handler on the role embedded in the verified
// credential. The admin role satisfies any requirement. Must sit inside
// httpx.AuthnMiddleware in the chain.
func requireRole(required domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := httpx.ClaimsFromContext(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized,
					"invalid_token", "authentication required")
				return
			}

			if !domain.Role(claims.Role).Satisfies(required) {
				httpx.WriteError(w, http.StatusForbidden,
					"insufficient_role", "role does not permit this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// actorName returns the display name of the authenticated caller for
// activity log attribution.
func actorName(r *http.Request) string {
	if claims, ok := httpx.ClaimsFromContext(r.Context()); ok {
		return claims.Name
	}
	return "unknown"
}
