package middleware

import (
	"net/http"
	"strings"

	"github.com/communitas/admin-gateway/internal/upstream"
)

// AccessTokenCookie is the cookie the dashboard stores its platform token in.
const AccessTokenCookie = "accessToken"

// NewTokenExtractor returns a middleware that pulls the caller's platform
// bearer token out of the request and stores it in the context for the
// upstream client.
//
// Lookup order matches what the dashboard historically did: the accessToken
// cookie first, then a Bearer Authorization header. Requests with neither
// pass through untouched — the upstream client falls back to the configured
// service token, and the platform rejects the call if that is missing too.
// Token issuance and refresh are not this gateway's concern.
func NewTokenExtractor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				r = r.WithContext(upstream.ContextWithToken(r.Context(), token))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
