package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"mediamaster/pkg/identity"
	"mediamaster/pkg/session"
	"mediamaster/pkg/tracker"
	"mediamaster/pkg/user"
)

var noSessUrls = map[string]string{
	"/api/register": http.MethodPost,
	"/api/login":    http.MethodPost,
	"/api/home":     http.MethodGet,
}

// CheckSession runs the session refresh protocol on every authenticated
// request. A valid session is rotated: a new row replaces the old one and
// the rotated cookies are written to the response before the handler runs.
// Any failure short of a storage error means "re-authenticate": all auth
// cookies are discarded with the 401.
func CheckSession(sessions *session.Manager, users user.Repository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			template, err := route.GetPathTemplate()
			if err != nil {
				http.Error(w, "Route not found", http.StatusNotFound)
				return
			}

			if method, ok := noSessUrls[template]; ok && method == r.Method {
				next.ServeHTTP(w, r)
				return
			}

			sessionID := cookieValue(r, session.SessionCookieName)
			userID := cookieValue(r, session.UserCookieName)
			if sessionID == "" && userID == "" {
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			fresh, err := sessions.RefreshSession(r.Context(), userID, sessionID)
			if err != nil {
				if errors.Is(err, session.ErrStorage) {
					logger.Error("session refresh", "error", err.Error())
					http.Error(w, `{"message":"service unavailable"}`, http.StatusInternalServerError)
					return
				}
				// Not found, expired or tampered: force re-authentication,
				// discarding all three cookies.
				session.ClearAuthCookies(w)
				tracker.ClearCookie(w)
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			// The client must learn the rotated session ID on every refresh,
			// or its next request falls back to the userId lookup.
			session.SetAuthCookies(w, fresh)

			id := &identity.Identity{UserID: fresh.UserID}
			if u, err := users.FindByID(r.Context(), fresh.UserID); err == nil {
				id.Username = u.Username
			}

			ctx := identity.WithContext(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
