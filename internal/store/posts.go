package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoPosts struct {
	c *mongo.Collection
}

func (s *mongoPosts) Create(ctx context.Context, p *Post) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	_, err := s.c.InsertOne(ctx, p)
	return err
}

func (s *mongoPosts) FindAll(ctx context.Context) ([]Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var out []Post
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mongoPosts) FindByID(ctx context.Context, id string) (*Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMalformedID
	}
	var p Post
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *mongoPosts) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrMalformedID
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoPosts) DeleteByUser(ctx context.Context, userID string) error {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrMalformedID
	}
	_, err = s.c.DeleteMany(ctx, bson.M{"user": oid})
	return err
}

// Like adds the user's like in a single guarded update, so two concurrent
// likes by the same user cannot both succeed.
func (s *mongoPosts) Like(ctx context.Context, postID, userID string) ([]Like, error) {
	pid, uid, err := parsePair(postID, userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": pid, "likes.user": bson.M{"$ne": uid}}
	update := bson.M{"$push": bson.M{"likes": bson.M{"$each": bson.A{Like{User: uid}}, "$position": 0}}}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		// either the post is gone or this user already likes it
		if _, err := s.FindByID(ctx, postID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyLiked
	}
	return s.likes(ctx, pid)
}

// Unlike removes the user's like with the inverse guard.
func (s *mongoPosts) Unlike(ctx context.Context, postID, userID string) ([]Like, error) {
	pid, uid, err := parsePair(postID, userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": pid, "likes.user": uid}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": uid}}}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.FindByID(ctx, postID); err != nil {
			return nil, err
		}
		return nil, ErrNotLiked
	}
	return s.likes(ctx, pid)
}

func (s *mongoPosts) likes(ctx context.Context, postID bson.ObjectID) ([]Like, error) {
	var p Post
	if err := s.c.FindOne(ctx, bson.M{"_id": postID}).Decode(&p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func parsePair(postID, userID string) (bson.ObjectID, bson.ObjectID, error) {
	pid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, ErrMalformedID
	}
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, ErrMalformedID
	}
	return pid, uid, nil
}
