// Package store persists User, Profile, and Post documents in MongoDB.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrNotFound means the id was well formed but no document matched;
// ErrMalformedID means the id was not a valid object id at all.
var (
	ErrNotFound       = errors.New("not found")
	ErrMalformedID    = errors.New("malformed id")
	ErrDuplicateEmail = errors.New("email already taken")
	ErrAlreadyLiked   = errors.New("post already liked")
	ErrNotLiked       = errors.New("post has not been liked")
)

type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
}

type ProfileStore interface {
	Upsert(ctx context.Context, p *Profile) (*Profile, error)
	FindByUser(ctx context.Context, userID string) (*Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	DeleteByUser(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, e Experience) (*Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*Profile, error)
	AddEducation(ctx context.Context, userID string, e Education) (*Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*Profile, error)
}

type PostStore interface {
	Create(ctx context.Context, p *Post) error
	FindAll(ctx context.Context) ([]Post, error)
	FindByID(ctx context.Context, id string) (*Post, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	Like(ctx context.Context, postID, userID string) ([]Like, error)
	Unlike(ctx context.Context, postID, userID string) ([]Like, error)
}

type Store struct {
	Users    UserStore
	Profiles ProfileStore
	Posts    PostStore

	client *mongo.Client
}

// Connect dials MongoDB, verifies the connection, and ensures indexes.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	db := client.Database(database)
	s := &Store{
		Users:    &mongoUsers{c: db.Collection("users")},
		Profiles: &mongoProfiles{c: db.Collection("profiles")},
		Posts:    &mongoPosts{c: db.Collection("posts")},
		client:   client,
	}

	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	// email uniqueness is enforced here, not just by the pre-insert lookup
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("profiles").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
