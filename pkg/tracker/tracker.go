package tracker

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

var errEmptyTracker = errors.New("tracker has no recorded pages")

// CookieName is the wire name of the tracker cookie.
const CookieName = "tracker"

// PageVisit is one page the visitor requested. TimeLeft stays nil until a
// different URL is requested afterwards.
type PageVisit struct {
	Method      string     `json:"method"`
	URL         string     `json:"url"`
	TimeArrived time.Time  `json:"timeArrived"`
	TimeLeft    *time.Time `json:"timeLeft,omitempty"`
}

// Tracker records the sequence of pages one browser visited. It lives only
// in the client's cookie, is rebuilt on every request, and is never used for
// authorization, only for logging.
type Tracker struct {
	Username string      `json:"username"`
	Pages    []PageVisit `json:"pages"`
}

// New builds a tracker holding a single visit for the current request.
func New(username, method, url string) *Tracker {
	return &Tracker{
		Username: username,
		Pages:    []PageVisit{newVisit(method, url)},
	}
}

// Update compares the request against the tracker's last visit. A repeat of
// the same URL returns nil, meaning nothing changed and the cookie must not
// be rewritten (rewriting would lose the visit's original arrival time).
// A different URL stamps timeLeft on the last visit and appends a new one.
func Update(t *Tracker, method, url string) *Tracker {
	last := &t.Pages[len(t.Pages)-1]

	if last.URL == url {
		return nil
	}

	now := time.Now()
	last.TimeLeft = &now
	t.Pages = append(t.Pages, newVisit(method, url))

	return t
}

// Manage is the per-request entry point: it rebuilds the tracker from the
// incoming cookie value and folds in the current request. An empty or
// malformed cookie degrades to a fresh tracker, never to an error — the
// tracker is telemetry, not auth state. The second return value reports
// whether the cookie needs rewriting.
func Manage(rawCookie, username, method, url string) (*Tracker, bool) {
	if rawCookie == "" {
		return New(username, method, url), true
	}

	old, err := Decode(rawCookie)
	if err != nil {
		return New(username, method, url), true
	}

	if updated := Update(old, method, url); updated != nil {
		return updated, true
	}
	return old, false
}

// Encode serializes the tracker for the cookie. JSON is not cookie-value
// safe, so the payload is base64url wrapped.
func Encode(t *Tracker) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode is the strict inverse of Encode. A tracker with no pages is
// rejected too: Update indexes the last visit unconditionally.
func Decode(raw string) (*Tracker, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}

	var t Tracker
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if len(t.Pages) == 0 {
		return nil, errEmptyTracker
	}
	return &t, nil
}

// SetCookie writes the tracker back to the response. Serialization failures
// are swallowed by contract; the next request simply starts a fresh tracker.
func SetCookie(w http.ResponseWriter, t *Tracker) {
	value, err := Encode(t)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:  CookieName,
		Value: value,
		Path:  "/",
	})
}

// ClearCookie discards the tracker on the client, alongside the auth
// cookies. A tracker value already queued on this response (the tracking
// middleware runs before handlers) is dropped first, so the expiry is not
// shadowed by a fresh cookie with the same name.
func ClearCookie(w http.ResponseWriter) {
	queued := w.Header().Values("Set-Cookie")
	if len(queued) > 0 {
		kept := make([]string, 0, len(queued))
		for _, c := range queued {
			if !strings.HasPrefix(c, CookieName+"=") {
				kept = append(kept, c)
			}
		}
		w.Header()["Set-Cookie"] = kept
	}

	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

func newVisit(method, url string) PageVisit {
	return PageVisit{
		Method:      method,
		URL:         url,
		TimeArrived: time.Now(),
	}
}
