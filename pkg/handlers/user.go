package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mediamaster/pkg/identity"
	"mediamaster/pkg/session"
	"mediamaster/pkg/tracker"
	"mediamaster/pkg/user"
)

type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

// SessionDeleter is the slice of the session manager logout needs.
type SessionDeleter interface {
	DeleteSessionByUserID(ctx context.Context, userID string) error
}

type UserHandler struct {
	Service  user.ServiceInterface
	Sessions SessionDeleter
	Logger   *slog.Logger
}

func NewUserHandler(service user.ServiceInterface, sessions SessionDeleter, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		Service:  service,
		Sessions: sessions,
		Logger:   logger,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, sess, err := h.Service.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, user.ErrUserExists):
		if ok := WriteResp(w, h.Logger, map[string]any{
			"errors": []FieldError{
				{
					Location: "body",
					Param:    "username",
					Value:    req.Username,
					Msg:      "already exists",
				},
			},
		}, http.StatusUnprocessableEntity); ok {
			h.Logger.Error("register", "error", err.Error())
		}
	case errors.Is(err, user.ErrInvalidInput):
		WriteResp(w, h.Logger, map[string]any{"message": err.Error()}, http.StatusBadRequest)
	case err != nil:
		h.Logger.Error("register", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		session.SetAuthCookies(w, sess)
		if ok := WriteResp(w, h.Logger, map[string]any{"user": u}, http.StatusOK); ok {
			h.Logger.Info("register", "user", u.ID)
		}
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, sess, err := h.Service.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, user.ErrNotFound):
		WriteResp(w, h.Logger, map[string]any{"message": "user not found"}, http.StatusUnauthorized)
	case errors.Is(err, user.ErrAuthentication):
		WriteResp(w, h.Logger, map[string]any{"message": "invalid password"}, http.StatusUnauthorized)
	case err != nil:
		h.Logger.Error("login", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		session.SetAuthCookies(w, sess)
		if ok := WriteResp(w, h.Logger, map[string]any{"user": u}, http.StatusOK); ok {
			h.Logger.Info("login", "user", u.ID)
		}
	}
}

// Logout deletes the caller's server-side session and discards every client
// cookie, the tracker included. A session that is already gone still counts
// as a clean logout.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return
	}

	if err := h.Sessions.DeleteSessionByUserID(r.Context(), id.UserID); err != nil && !errors.Is(err, session.ErrNotFound) {
		h.Logger.Error("logout", "error", err.Error(), "user", id.UserID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	session.ClearAuthCookies(w)
	tracker.ClearCookie(w)
	if ok := WriteResp(w, h.Logger, map[string]any{"message": "logged out"}, http.StatusOK); ok {
		h.Logger.Info("logout", "user", id.UserID)
	}
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, typeError, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, typeError, "bad json")
		return false
	}

	return true
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body map[string]any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}
