// Package imagestore persists ocrcsv page images (metadata + OCR text;
// the binary lives in external storage under storage_key).
package imagestore

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
	return &Store{c: db.Collection("images")}
}

// Create inserts a new image, assigning ID, timestamps, and the next
// sort_order slot within its category (append-at-end, like the original
// upload flow).
func (s *Store) Create(ctx context.Context, img models.Image) (models.Image, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"category_id": img.CategoryID})
	if err != nil {
		return models.Image{}, err
	}
	now := time.Now().UTC()
	img.ID = models.NewImageID()
	img.AppID = models.AppOCRCSV
	img.SortOrder = int(n)
	img.CreatedAt = now
	img.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, img); err != nil {
		return models.Image{}, err
	}
	return img, nil
}

func (s *Store) GetByID(ctx context.Context, id models.ImageID) (models.Image, error) {
	var img models.Image
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&img); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Image{}, access.ErrNotFound
		}
		return models.Image{}, err
	}
	return img, nil
}

// ListByCategory returns a category's images in CSV-row order
// (sort_order, then creation time for ties).
func (s *Store) ListByCategory(ctx context.Context, catID models.CategoryID) ([]models.Image, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{"category_id": catID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var images []models.Image
	if err := cur.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// UpdateOCR replaces the recognized text after a re-run or manual edit.
func (s *Store) UpdateOCR(ctx context.Context, id models.ImageID, ocr string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"ocr_result": ocr,
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

// SetSortOrder moves an image to a new CSV-row position.
func (s *Store) SetSortOrder(ctx context.Context, id models.ImageID, order int) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"sort_order": order,
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

func (s *Store) Delete(ctx context.Context, id models.ImageID) (int64, error) {
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
