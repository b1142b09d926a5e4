package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoProfiles struct {
	c *mongo.Collection
}

// Upsert creates the user's profile or replaces its scalar fields, leaving
// experience and education untouched on update.
func (s *mongoProfiles) Upsert(ctx context.Context, p *Profile) (*Profile, error) {
	set := bson.M{
		"company":        p.Company,
		"website":        p.Website,
		"location":       p.Location,
		"status":         p.Status,
		"skills":         p.Skills,
		"bio":            p.Bio,
		"githubusername": p.GithubUsername,
		"social":         p.Social,
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"user":       p.UserID,
			"experience": []Experience{},
			"education":  []Education{},
			"date":       time.Now().UTC(),
		},
	}
	opts := options.UpdateOne().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, bson.M{"user": p.UserID}, update, opts); err != nil {
		return nil, err
	}
	return s.findByUser(ctx, p.UserID)
}

func (s *mongoProfiles) FindByUser(ctx context.Context, userID string) (*Profile, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrMalformedID
	}
	return s.findByUser(ctx, oid)
}

func (s *mongoProfiles) findByUser(ctx context.Context, userID bson.ObjectID) (*Profile, error) {
	var p Profile
	err := s.c.FindOne(ctx, bson.M{"user": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *mongoProfiles) FindAll(ctx context.Context) ([]Profile, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mongoProfiles) DeleteByUser(ctx context.Context, userID string) error {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrMalformedID
	}
	_, err = s.c.DeleteOne(ctx, bson.M{"user": oid})
	return err
}

func (s *mongoProfiles) AddExperience(ctx context.Context, userID string, e Experience) (*Profile, error) {
	e.ID = bson.NewObjectID()
	return s.pushEntry(ctx, userID, "experience", e)
}

func (s *mongoProfiles) AddEducation(ctx context.Context, userID string, e Education) (*Profile, error) {
	e.ID = bson.NewObjectID()
	return s.pushEntry(ctx, userID, "education", e)
}

// pushEntry prepends entry to the named array, newest first.
func (s *mongoProfiles) pushEntry(ctx context.Context, userID, field string, entry any) (*Profile, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrMalformedID
	}
	update := bson.M{"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}}}
	res, err := s.c.UpdateOne(ctx, bson.M{"user": oid}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.findByUser(ctx, oid)
}

func (s *mongoProfiles) RemoveExperience(ctx context.Context, userID, expID string) (*Profile, error) {
	return s.pullEntry(ctx, userID, "experience", expID)
}

func (s *mongoProfiles) RemoveEducation(ctx context.Context, userID, eduID string) (*Profile, error) {
	return s.pullEntry(ctx, userID, "education", eduID)
}

func (s *mongoProfiles) pullEntry(ctx context.Context, userID, field, entryID string) (*Profile, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrMalformedID
	}
	eid, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, ErrMalformedID
	}
	update := bson.M{"$pull": bson.M{field: bson.M{"_id": eid}}}
	res, err := s.c.UpdateOne(ctx, bson.M{"user": uid}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.findByUser(ctx, uid)
}
