package middleware

import (
	"log/slog"
	"net/http"

	"mediamaster/pkg/identity"
	"mediamaster/pkg/tracker"
)

// Track maintains the per-visitor tracker cookie. Must be mounted after
// CheckSession so the tracker can carry the visitor's username; anonymous
// requests are tracked with an empty label. The cookie is rewritten only
// when the visit sequence actually changed.
func Track(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			label := ""
			if id, ok := identity.FromContext(r.Context()); ok {
				label = id.Username
			}

			t, changed := tracker.Manage(cookieValue(r, tracker.CookieName), label, r.Method, r.URL.Path)
			if changed {
				tracker.SetCookie(w, t)
				last := t.Pages[len(t.Pages)-1]
				logger.Info("page visit", "user", label, "method", last.Method, "url", last.URL)
			}

			next.ServeHTTP(w, r)
		})
	}
}
