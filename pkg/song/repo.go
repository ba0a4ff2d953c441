package song

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("songs"),
	}
}

func ownerFilter(userID, title, artist string) bson.M {
	return bson.M{"userId": userID, "title": title, "artist": artist}
}

func (r *MongoRepo) Create(ctx context.Context, s *Song) error {
	// A user's collection holds one record per title+artist pair.
	err := r.collection.FindOne(ctx, ownerFilter(s.UserID, s.Title, s.Artist)).Err()
	if err == nil {
		return fmt.Errorf("%w: %s by %s", ErrDuplicate, s.Title, s.Artist)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: duplicate check: %v", ErrStorage, err)
	}

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("%w: insert song: %v", ErrStorage, err)
	}
	return nil
}

func (r *MongoRepo) GetAll(ctx context.Context, userID string) []*Song {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var songs []*Song
	for cursor.Next(ctx) {
		var s Song
		if cursor.Decode(&s) == nil {
			songs = append(songs, &s)
		}
	}
	return songs
}

func (r *MongoRepo) GetOne(ctx context.Context, userID, title, artist string) (*Song, error) {
	var s Song
	err := r.collection.FindOne(ctx, ownerFilter(userID, title, artist)).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s by %s", ErrNotFound, title, artist)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get song: %v", ErrStorage, err)
	}
	return &s, nil
}

func (r *MongoRepo) Update(ctx context.Context, userID, oldTitle, oldArtist string, repl Replacement) (*Song, error) {
	update := bson.M{
		"$set": bson.M{
			"title":  repl.Title,
			"artist": repl.Artist,
			"genre":  repl.Genre,
			"album":  repl.Album,
		},
	}

	var updated Song
	err := r.collection.FindOneAndUpdate(
		ctx,
		ownerFilter(userID, oldTitle, oldArtist),
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s by %s", ErrNotFound, oldTitle, oldArtist)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update song: %v", ErrStorage, err)
	}
	return &updated, nil
}

func (r *MongoRepo) Delete(ctx context.Context, userID, title, artist string) error {
	res, err := r.collection.DeleteOne(ctx, ownerFilter(userID, title, artist))
	if err != nil {
		return fmt.Errorf("%w: delete song: %v", ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s by %s", ErrNotFound, title, artist)
	}
	return nil
}
