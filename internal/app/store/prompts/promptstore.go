// Package promptstore persists prompt-app entries. Shared prompts are
// additionally reachable through the public shared listing; everything
// else is membership-scoped by the handlers.
package promptstore

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
	return &Store{c: db.Collection("prompts")}
}

// Create inserts a new prompt, assigning ID, timestamps, and the next
// sort_order slot within its category.
func (s *Store) Create(ctx context.Context, p models.Prompt) (models.Prompt, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"category_id": p.CategoryID})
	if err != nil {
		return models.Prompt{}, err
	}
	now := time.Now().UTC()
	p.ID = models.NewPromptID()
	p.AppID = models.AppPrompt
	p.SortOrder = int(n)
	p.UsageCount = 0
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Prompt{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id models.PromptID) (models.Prompt, error) {
	var p models.Prompt
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Prompt{}, access.ErrNotFound
		}
		return models.Prompt{}, err
	}
	return p, nil
}

// ListByCategory returns a category's prompts in sort_order, newest first
// among unordered legacy rows.
func (s *Store) ListByCategory(ctx context.Context, catID models.CategoryID) ([]models.Prompt, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "created_at", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"category_id": catID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var prompts []models.Prompt
	if err := cur.All(ctx, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// ListShared returns all publicly shared prompts across categories,
// most-used first.
func (s *Store) ListShared(ctx context.Context) ([]models.Prompt, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "usage_count", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"app_id": models.AppPrompt, "is_shared": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var prompts []models.Prompt
	if err := cur.All(ctx, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// Update holds the caller-editable prompt fields.
type Update struct {
	Title     string
	Content   string
	ImageURLs []string
}

func (s *Store) Update(ctx context.Context, id models.PromptID, upd Update) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":      upd.Title,
		"content":    upd.Content,
		"image_urls": upd.ImageURLs,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return access.ErrNotFound
	}
	return nil
}

// SetShared flips the public-sharing flag. Used by both the owning
// member's handler and the admin force-unshare surface.
func (s *Store) SetShared(ctx context.Context, id models.PromptID, shared bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_shared":  shared,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return access.ErrNotFound
	}
	return nil
}

// IncrementUsage bumps the copy/use counter.
func (s *Store) IncrementUsage(ctx context.Context, id models.PromptID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"usage_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id models.PromptID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) DeleteByCategory(ctx context.Context, catID models.CategoryID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"category_id": catID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
