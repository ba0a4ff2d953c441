package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"mediamaster/pkg/identity"
	"mediamaster/pkg/song"
)

const (
	typeError   string = "error"
	typeMessage string = "message"

	queryTitle  string = "title"
	queryArtist string = "artist"
)

type SongHandler struct {
	Service song.ServiceInterface
	Logger  *slog.Logger
}

func NewSongHandler(service song.ServiceInterface, logger *slog.Logger) *SongHandler {
	return &SongHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *SongHandler) AddSong(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var newSong song.Song
	if err := json.NewDecoder(r.Body).Decode(&newSong); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	id, ok := getIdentity(w, r)
	if !ok {
		return
	}

	if err := h.Service.Add(r.Context(), &newSong, id.UserID); err != nil {
		writeSongError(w, err)
		return
	}

	if ok := writeJSON(w, h.Logger, newSong); ok {
		h.Logger.Info("song added", "user", id.UserID, "title", newSong.Title)
	}
}

func (h *SongHandler) GetAllSongs(w http.ResponseWriter, r *http.Request) {
	id, ok := getIdentity(w, r)
	if !ok {
		return
	}

	writeJSON(w, h.Logger, h.Service.GetAll(r.Context(), id.UserID))
}

func (h *SongHandler) GetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := getIdentity(w, r)
	if !ok {
		return
	}

	title, artist, ok := songQueryParams(w, r)
	if !ok {
		return
	}

	s, err := h.Service.GetOne(r.Context(), id.UserID, title, artist)
	if err != nil {
		writeSongError(w, err)
		return
	}

	writeJSON(w, h.Logger, s)
}

type updateForm struct {
	OldTitle  string           `json:"oldTitle"`
	OldArtist string           `json:"oldArtist"`
	New       song.Replacement `json:"new"`
}

func (h *SongHandler) UpdateSong(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req updateForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	id, ok := getIdentity(w, r)
	if !ok {
		return
	}

	updated, err := h.Service.Update(r.Context(), id.UserID, req.OldTitle, req.OldArtist, req.New)
	if err != nil {
		writeSongError(w, err)
		return
	}

	if ok := writeJSON(w, h.Logger, updated); ok {
		h.Logger.Info("song updated", "user", id.UserID, "title", updated.Title)
	}
}

func (h *SongHandler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	id, ok := getIdentity(w, r)
	if !ok {
		return
	}

	title, artist, ok := songQueryParams(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id.UserID, title, artist); err != nil {
		writeSongError(w, err)
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]string{"message": "success"}); ok {
		h.Logger.Info("song deleted", "user", id.UserID, "title", title)
	}
}

func songQueryParams(w http.ResponseWriter, r *http.Request) (title, artist string, ok bool) {
	title = r.URL.Query().Get(queryTitle)
	artist = r.URL.Query().Get(queryArtist)
	if title == "" || artist == "" {
		writeError(w, http.StatusBadRequest, typeMessage, "title and artist are required")
		return "", "", false
	}
	return title, artist, true
}

func writeSongError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, song.ErrNotFound):
		writeError(w, http.StatusNotFound, typeMessage, err.Error())
	case errors.Is(err, song.ErrDuplicate):
		writeError(w, http.StatusUnprocessableEntity, typeError, err.Error())
	case errors.Is(err, song.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, typeError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, typeError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, key, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{%q:%q}`, key, msg)
}

func getIdentity(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return nil, false
	}
	return id, true
}
