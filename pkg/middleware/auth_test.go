package middleware_test

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"mediamaster/pkg/identity"
	"mediamaster/pkg/middleware"
	"mediamaster/pkg/session"
	"mediamaster/pkg/tracker"
	"mediamaster/pkg/user"
)

type env struct {
	db       *sql.DB
	sessions *session.Manager
	router   *mux.Router
}

func setup(t *testing.T) *env {
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	assert.NoError(t, err)
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE users (
		userId TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);
	CREATE TABLE sessions (
		sessionId TEXT PRIMARY KEY,
		userId TEXT NOT NULL,
		openedAt DATETIME NOT NULL,
		closesAt DATETIME NOT NULL,
		FOREIGN KEY (userId) REFERENCES users (userId)
	);`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	_, err = db.Exec("INSERT INTO users (userId, username, password) VALUES (?, ?, ?)",
		"user42", "MusicLover95", "hashed_pass")
	assert.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	sessions := session.NewManager(session.NewMySQLSessionRepo(db))

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic(logger))
	api.Use(middleware.CheckSession(sessions, user.NewMySQLRepo(db), logger))
	api.Use(middleware.Track(logger))

	api.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("POST")
	api.HandleFunc("/songs", func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity.FromContext(r.Context())
		fmt.Fprintf(w, "hello %s", id.Username)
	}).Methods("GET")

	return &env{db: db, sessions: sessions, router: r}
}

func responseCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCheckSession_NoCookies(t *testing.T) {
	e := setup(t)

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/songs", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCheckSession_PublicRouteSkipsAuth(t *testing.T) {
	e := setup(t)

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/login", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCheckSession_RotatesLiveSession(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	s0, err := e.sessions.CreateSession(ctx, "user42")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/songs", nil)
	req.AddCookie(&http.Cookie{Name: session.SessionCookieName, Value: s0.ID})
	req.AddCookie(&http.Cookie{Name: session.UserCookieName, Value: "user42"})

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello MusicLover95", rr.Body.String())

	rotated := responseCookie(rr, session.SessionCookieName)
	assert.NotNil(t, rotated, "refresh must rewrite the session cookie")
	assert.NotEqual(t, s0.ID, rotated.Value)
	assert.True(t, rotated.Expires.After(time.Now()))

	userCookie := responseCookie(rr, session.UserCookieName)
	assert.NotNil(t, userCookie)
	assert.Equal(t, "user42", userCookie.Value)

	// the old row is gone, the rotated one resolves
	_, err = e.sessions.GetSession(ctx, s0.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = e.sessions.GetSession(ctx, rotated.Value)
	assert.NoError(t, err)
}

func TestCheckSession_UserCookieFallback(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	s0, err := e.sessions.CreateSession(ctx, "user42")
	assert.NoError(t, err)

	// sessionId cookie expired client-side, userId survived
	req := httptest.NewRequest(http.MethodGet, "/api/songs", nil)
	req.AddCookie(&http.Cookie{Name: session.UserCookieName, Value: "user42"})

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	rotated := responseCookie(rr, session.SessionCookieName)
	assert.NotNil(t, rotated)
	assert.NotEqual(t, s0.ID, rotated.Value)
}

func TestCheckSession_ExpiredSession(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.db.Exec(`INSERT INTO sessions (sessionId, userId, openedAt, closesAt) VALUES (?, ?, ?, ?)`,
		"sess-stale", "user42", time.Now().Add(-time.Hour), time.Now().Add(-30*time.Minute))
	assert.NoError(t, err)

	trackerValue, err := tracker.Encode(tracker.New("MusicLover95", "GET", "/api/songs"))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/songs", nil)
	req.AddCookie(&http.Cookie{Name: session.SessionCookieName, Value: "sess-stale"})
	req.AddCookie(&http.Cookie{Name: session.UserCookieName, Value: "user42"})
	req.AddCookie(&http.Cookie{Name: tracker.CookieName, Value: trackerValue})

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// all three cookies are discarded with the 401
	for _, name := range []string{session.SessionCookieName, session.UserCookieName, tracker.CookieName} {
		c := responseCookie(rr, name)
		assert.NotNil(t, c, "cookie %s must be discarded", name)
		assert.Less(t, c.MaxAge, 0)
	}

	// the stale row was deleted, not refreshed
	_, err = e.sessions.GetSessionByUserID(ctx, "user42")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestCheckSession_BogusSessionCookie(t *testing.T) {
	e := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/songs", nil)
	req.AddCookie(&http.Cookie{Name: session.SessionCookieName, Value: "never-issued"})
	req.AddCookie(&http.Cookie{Name: session.UserCookieName, Value: "user42"})

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTrack_SetsAndExtendsTrackerCookie(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	s0, err := e.sessions.CreateSession(ctx, "user42")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/songs", nil)
	req.AddCookie(&http.Cookie{Name: session.SessionCookieName, Value: s0.ID})
	req.AddCookie(&http.Cookie{Name: session.UserCookieName, Value: "user42"})

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	trackerCookie := responseCookie(rr, tracker.CookieName)
	assert.NotNil(t, trackerCookie)

	tr, err := tracker.Decode(trackerCookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, "MusicLover95", tr.Username)
	assert.Len(t, tr.Pages, 1)
	assert.Equal(t, "/api/songs", tr.Pages[0].URL)

	// anonymous request to the public route extends the same tracker
	req2 := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req2.AddCookie(&http.Cookie{Name: tracker.CookieName, Value: trackerCookie.Value})

	rr2 := httptest.NewRecorder()
	e.router.ServeHTTP(rr2, req2)

	extended := responseCookie(rr2, tracker.CookieName)
	assert.NotNil(t, extended)

	tr2, err := tracker.Decode(extended.Value)
	assert.NoError(t, err)
	assert.Len(t, tr2.Pages, 2)
	assert.NotNil(t, tr2.Pages[0].TimeLeft)
	assert.Equal(t, "/api/login", tr2.Pages[1].URL)
}
