package auth

import (
	"net/http"
	"strings"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Middleware rehydrates the session from the bearer token and attaches the
// principal to the request context. Requests without a valid session continue
// anonymously; route guards decide what anonymous callers may reach. Guards
// only ever run after this resolution, so there is no "still deciding" state
// for them to observe.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token != "" {
				if user, err := m.Rehydrate(r.Context(), token); err == nil {
					principal := &shared.Principal{
						UserID: user.ID,
						Name:   user.DisplayName(),
						Role:   user.Role,
					}
					r = r.WithContext(shared.ContextWithPrincipal(r.Context(), principal))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
