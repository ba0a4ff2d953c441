package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mediamaster/pkg/handlers"
	"mediamaster/pkg/identity"
	"mediamaster/pkg/song"
)

type mockSongService struct {
	mock.Mock
}

func (m *mockSongService) Add(ctx context.Context, s *song.Song, userID string) error {
	return m.Called(s, userID).Error(0)
}

func (m *mockSongService) GetAll(ctx context.Context, userID string) []*song.Song {
	args := m.Called(userID)
	if s := args.Get(0); s != nil {
		return s.([]*song.Song)
	}
	return nil
}

func (m *mockSongService) GetOne(ctx context.Context, userID, title, artist string) (*song.Song, error) {
	args := m.Called(userID, title, artist)
	if s := args.Get(0); s != nil {
		return s.(*song.Song), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSongService) Update(ctx context.Context, userID, oldTitle, oldArtist string, repl song.Replacement) (*song.Song, error) {
	args := m.Called(userID, oldTitle, oldArtist, repl)
	if s := args.Get(0); s != nil {
		return s.(*song.Song), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSongService) Delete(ctx context.Context, userID, title, artist string) error {
	return m.Called(userID, title, artist).Error(0)
}

func authed(req *http.Request) *http.Request {
	ctx := identity.WithContext(req.Context(), &identity.Identity{UserID: "user42", Username: "MusicLover95"})
	return req.WithContext(ctx)
}

func TestAddSong(t *testing.T) {
	m := new(mockSongService)
	handler := handlers.NewSongHandler(m, testLogger())

	m.On("Add", mock.AnythingOfType("*song.Song"), "user42").Return(nil).Once()

	req := authed(httptest.NewRequest(http.MethodPost, "/api/songs",
		strings.NewReader(`{"title":"Yesterday","artist":"The Beatles","genre":"rock"}`)))
	rr := httptest.NewRecorder()

	handler.AddSong(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Yesterday")
	m.AssertExpectations(t)

	t.Run("duplicate", func(t *testing.T) {
		m.On("Add", mock.AnythingOfType("*song.Song"), "user42").Return(song.ErrDuplicate).Once()

		req := authed(httptest.NewRequest(http.MethodPost, "/api/songs",
			strings.NewReader(`{"title":"Yesterday","artist":"The Beatles","genre":"rock"}`)))
		rr := httptest.NewRecorder()

		handler.AddSong(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/songs",
			strings.NewReader(`{"title":"Yesterday","artist":"The Beatles","genre":"rock"}`))
		rr := httptest.NewRecorder()

		handler.AddSong(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetSong(t *testing.T) {
	m := new(mockSongService)
	handler := handlers.NewSongHandler(m, testLogger())

	m.On("GetOne", "user42", "Yesterday", "The Beatles").
		Return(&song.Song{Title: "Yesterday", Artist: "The Beatles", Genre: "rock"}, nil)
	m.On("GetOne", "user42", "Ghost", "Nobody").Return(nil, song.ErrNotFound)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
	}{
		{"found", "?title=Yesterday&artist=The+Beatles", http.StatusOK},
		{"not found", "?title=Ghost&artist=Nobody", http.StatusNotFound},
		{"missing params", "?title=Yesterday", http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := authed(httptest.NewRequest(http.MethodGet, "/api/song"+test.query, nil))
			rr := httptest.NewRecorder()

			handler.GetSong(rr, req)

			assert.Equal(t, test.expectedStatus, rr.Code)
		})
	}
}

func TestDeleteSong(t *testing.T) {
	m := new(mockSongService)
	handler := handlers.NewSongHandler(m, testLogger())

	m.On("Delete", "user42", "Yesterday", "The Beatles").Return(nil)

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/song?title=Yesterday&artist=The+Beatles", nil))
	rr := httptest.NewRecorder()

	handler.DeleteSong(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "success")
	m.AssertExpectations(t)
}

func TestUpdateSong(t *testing.T) {
	m := new(mockSongService)
	handler := handlers.NewSongHandler(m, testLogger())

	repl := song.Replacement{Title: "Help", Artist: "The Beatles", Genre: "rock"}
	m.On("Update", "user42", "Yesterday", "The Beatles", repl).
		Return(&song.Song{Title: "Help", Artist: "The Beatles", Genre: "rock"}, nil)

	body := `{"oldTitle":"Yesterday","oldArtist":"The Beatles","new":{"title":"Help","artist":"The Beatles","genre":"rock"}}`
	req := authed(httptest.NewRequest(http.MethodPut, "/api/song", strings.NewReader(body)))
	rr := httptest.NewRecorder()

	handler.UpdateSong(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Help")
	m.AssertExpectations(t)
}
