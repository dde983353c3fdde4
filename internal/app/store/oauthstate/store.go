// Package oauthstate stores short-lived OAuth2 state tokens for CSRF
// protection during the Google sign-in round trip.
package oauthstate

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// State is one pending sign-in attempt. App records which client app
// (kaumono, prompt, ocrcsv) initiated it, so the callback lands the user
// in the right namespace.
type State struct {
	State     string    `bson:"state"`
	App       string    `bson:"app"`
	ReturnURL string    `bson:"return_url,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

// Save stores a state token until expiresAt. The TTL index on
// expires_at reaps stale rows (see internal/app/system/indexes).
func (s *Store) Save(ctx context.Context, state, app, returnURL string, expiresAt time.Time) error {
	st := State{
		State:     state,
		App:       app,
		ReturnURL: returnURL,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, st)
	return err
}

// Consume checks that a state token exists and is unexpired, deleting it
// in the same operation so each token validates at most once.
func (s *Store) Consume(ctx context.Context, state string) (app, returnURL string, valid bool, err error) {
	var st State
	err = s.c.FindOneAndDelete(ctx, bson.M{
		"state":      state,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	return st.App, st.ReturnURL, true, nil
}

// CleanupExpired removes expired tokens that the TTL monitor has not
// collected yet.
func (s *Store) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
