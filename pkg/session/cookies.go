package session

import (
	"net/http"
)

// Cookie names are the wire contract with the client.
const (
	SessionCookieName = "sessionId"
	UserCookieName    = "userId"
)

// SetAuthCookies writes both auth cookies for the given session. The userId
// cookie is deliberately set alongside sessionId every time: it is the
// fallback lookup key when the session cookie is lost client-side.
func SetAuthCookies(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ClosesAt,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:    UserCookieName,
		Value:   s.UserID,
		Path:    "/",
		Expires: s.ClosesAt,
	})
}

// ClearAuthCookies expires both auth cookies on the client.
func ClearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{SessionCookieName, UserCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == SessionCookieName,
		})
	}
}
