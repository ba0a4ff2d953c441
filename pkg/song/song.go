package song

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = errors.New("song not found")
	ErrDuplicate    = errors.New("song already exists")
	ErrInvalidInput = errors.New("invalid song data")
	ErrStorage      = errors.New("song storage failure")
)

type Song struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Title   string             `json:"title" bson:"title"`
	Artist  string             `json:"artist" bson:"artist"`
	Genre   string             `json:"genre" bson:"genre"`
	Album   string             `json:"album,omitempty" bson:"album,omitempty"`
	UserID  string             `json:"-" bson:"userId"`
}

// Replacement carries the new field values for an update.
type Replacement struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
	Album  string `json:"album,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, s *Song) error
	GetAll(ctx context.Context, userID string) []*Song
	GetOne(ctx context.Context, userID, title, artist string) (*Song, error)
	Update(ctx context.Context, userID, oldTitle, oldArtist string, repl Replacement) (*Song, error)
	Delete(ctx context.Context, userID, title, artist string) error
}
