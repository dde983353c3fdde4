// Package reportstore persists prompt reports, the moderation queue the
// admin surface works through.
package reportstore

import (
	"context"
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
	return &Store{c: db.Collection("prompt_reports")}
}

// Create inserts a new report in pending status, assigning ID and
// timestamps.
func (s *Store) Create(ctx context.Context, rep models.PromptReport) (models.PromptReport, error) {
	now := time.Now().UTC()
	rep.ID = models.NewReportID()
	rep.AppID = models.AppPrompt
	rep.Status = models.ReportPending
	rep.CreatedAt = now
	rep.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, rep); err != nil {
		return models.PromptReport{}, err
	}
	return rep, nil
}

// ListPending returns the unresolved reports, oldest first, so the queue
// drains in arrival order.
func (s *Store) ListPending(ctx context.Context) ([]models.PromptReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{
		"app_id": models.AppPrompt,
		"status": models.ReportPending,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reports []models.PromptReport
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Resolve marks a report handled. Resolving twice is a no-op success.
func (s *Store) Resolve(ctx context.Context, id models.ReportID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     models.ReportResolved,
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
