// Package itemstore persists kaumono shopping/TODO items. Authorization
// is not checked here: handlers go through access.Service first, using the
// category referenced by the stored item.
package itemstore

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
	return &Store{c: db.Collection("items")}
}

// Create inserts a new item, assigning its ID and timestamps.
func (s *Store) Create(ctx context.Context, it models.Item) (models.Item, error) {
	now := time.Now().UTC()
	it.ID = models.NewItemID()
	it.AppID = models.AppKaumono
	it.CreatedAt = now
	it.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, it); err != nil {
		return models.Item{}, err
	}
	return it, nil
}

func (s *Store) GetByID(ctx context.Context, id models.ItemID) (models.Item, error) {
	var it models.Item
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Item{}, access.ErrNotFound
		}
		return models.Item{}, err
	}
	return it, nil
}

// ListByCategory returns a category's items, newest first.
func (s *Store) ListByCategory(ctx context.Context, catID models.CategoryID) ([]models.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"category_id": catID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Item
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update holds the caller-editable item fields.
type Update struct {
	Title           string
	Details         string
	ReminderTime    time.Time
	ReminderEnabled bool
}

func (s *Store) Update(ctx context.Context, id models.ItemID, upd Update) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":            upd.Title,
		"details":          upd.Details,
		"reminder_time":    upd.ReminderTime,
		"reminder_enabled": upd.ReminderEnabled,
		"updated_at":       time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (s *Store) SetDone(ctx context.Context, id models.ItemID, done bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"done":       done,
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

// Delete removes one item. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id models.ItemID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByCategory removes all items under a category (cascade step of
// category deletion).
func (s *Store) DeleteByCategory(ctx context.Context, catID models.CategoryID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"category_id": catID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
