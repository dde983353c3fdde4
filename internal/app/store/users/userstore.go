// Package userstore manages the local mirror of identity-provider
// accounts. Records are created on first login and refreshed on every
// later one; this service never deletes them.
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tacar/listhub/internal/app/access"
	"github.com/tacar/listhub/internal/app/system/normalize"
	"github.com/tacar/listhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id models.UserID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, access.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByIDs loads a batch of users in one query. Missing IDs are simply
// absent from the result; callers decide how to render the gap.
func (s *Store) GetByIDs(ctx context.Context, ids []models.UserID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByExternal looks a user up by identity-provider subject within one
// app namespace.
func (s *Store) GetByExternal(ctx context.Context, app, externalID string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"app_id": app, "external_id": externalID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, access.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetOrCreate upserts the mirror record for an identity-provider account:
// created on first sight, display name and email refreshed on every later
// call. A single FindOneAndUpdate keeps the get-or-create atomic; the
// unique app_id+external_id index backs it.
func (s *Store) GetOrCreate(ctx context.Context, app, externalID, displayName, email string) (models.User, error) {
	now := time.Now().UTC()
	displayName = normalize.Name(displayName)

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	update := bson.M{
		"$set": bson.M{
			"display_name":    displayName,
			"display_name_ci": text.Fold(displayName),
			"email":           normalize.Email(email),
			"updated_at":      now,
		},
		"$setOnInsert": bson.M{
			"_id":         models.NewUserID(),
			"app_id":      app,
			"external_id": externalID,
			"created_at":  now,
		},
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"app_id": app, "external_id": externalID}, update, opts).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ListByApp returns every user of one app namespace, for the admin
// surface. Sorted by display name.
func (s *Store) ListByApp(ctx context.Context, app string) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"app_id": app}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
