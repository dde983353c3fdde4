// Package categorystore is the MongoDB implementation of
// access.CategoryStore. One document per category; membership lives in the
// member_ids array so every membership change is a single-document update
// and inherits Mongo's per-document atomicity.
package categorystore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tacar/listhub/internal/app/access"
	"github.com/tacar/listhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

func (s *Store) Get(ctx context.Context, id models.CategoryID) (models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Category{}, access.ErrNotFound
		}
		return models.Category{}, err
	}
	return cat, nil
}

// GetByTokenHash resolves an invite redemption. Equality lookup on the
// indexed join_token_hash field; the store never sees plaintext tokens.
func (s *Store) GetByTokenHash(ctx context.Context, hash string) (models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"join_token_hash": hash}).Decode(&cat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Category{}, access.ErrNotFound
		}
		return models.Category{}, err
	}
	return cat, nil
}

// ListByMember returns the categories of one app that uid belongs to,
// newest first. Mongo array-equality matches member_ids elements, backed
// by the app_id+member_ids index.
func (s *Store) ListByMember(ctx context.Context, app string, uid models.UserID) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"app_id": app, "member_ids": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *Store) Insert(ctx context.Context, cat models.Category) error {
	_, err := s.c.InsertOne(ctx, cat)
	return err
}

func (s *Store) Rename(ctx context.Context, id models.CategoryID, name, nameCI string, at time.Time) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"name_ci":    nameCI,
		"updated_at": at,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return access.ErrNotFound
	}
	return nil
}

// AddMember appends uid via $addToSet, so member_ids stays a set even
// under concurrent redemptions of the same invite.
func (s *Store) AddMember(ctx context.Context, id models.CategoryID, uid models.UserID, at time.Time) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"member_ids": uid},
		"$set":      bson.M{"updated_at": at},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (s *Store) RemoveMember(ctx context.Context, id models.CategoryID, uid models.UserID, at time.Time) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"member_ids": uid},
		"$set":  bson.M{"updated_at": at},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return access.ErrNotFound
	}
	return nil
}

// SetJoinToken overwrites the active token hash and expiry. Last write
// wins; see access.Service.GenerateInviteToken.
func (s *Store) SetJoinToken(ctx context.Context, id models.CategoryID, hash string, expiresAt, at time.Time) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"join_token_hash":       hash,
		"join_token_expires_at": expiresAt,
		"updated_at":            at,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id models.CategoryID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
