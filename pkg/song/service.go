package song

import (
	"context"
)

type ServiceInterface interface {
	Add(ctx context.Context, s *Song, userID string) error
	GetAll(ctx context.Context, userID string) []*Song
	GetOne(ctx context.Context, userID, title, artist string) (*Song, error)
	Update(ctx context.Context, userID, oldTitle, oldArtist string, repl Replacement) (*Song, error)
	Delete(ctx context.Context, userID, title, artist string) error
}

type SongService struct {
	Repo Repository
}

func NewService(repo Repository) *SongService {
	return &SongService{Repo: repo}
}

func (s *SongService) Add(ctx context.Context, newSong *Song, userID string) error {
	if err := Validate(newSong.Title, newSong.Artist, newSong.Genre); err != nil {
		return err
	}
	newSong.UserID = userID
	return s.Repo.Create(ctx, newSong)
}

func (s *SongService) GetAll(ctx context.Context, userID string) []*Song {
	return s.Repo.GetAll(ctx, userID)
}

func (s *SongService) GetOne(ctx context.Context, userID, title, artist string) (*Song, error) {
	return s.Repo.GetOne(ctx, userID, title, artist)
}

func (s *SongService) Update(ctx context.Context, userID, oldTitle, oldArtist string, repl Replacement) (*Song, error) {
	if err := Validate(repl.Title, repl.Artist, repl.Genre); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, userID, oldTitle, oldArtist, repl)
}

func (s *SongService) Delete(ctx context.Context, userID, title, artist string) error {
	return s.Repo.Delete(ctx, userID, title, artist)
}
