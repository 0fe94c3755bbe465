package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"staffhub/internal/auth"
	"staffhub/internal/httputil"
)

// Auth validates the Bearer token on every request and stores the
// authenticated (company, employee) scope and role in the request context.
// Requests without a valid token never reach a handler.
func Auth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, claims.GetScope(), claims.Role))
		})
	}
}

// RequireServiceKey guards the mirror apply endpoint. It accepts the
// internal service key instead of an employee token: the sync worker is
// the caller, not a browser.
func RequireServiceKey(serviceKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if serviceKey == "" || r.Header.Get("X-Service-Key") != serviceKey {
				logger.Warn("service key rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid service key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
