// Package indexes declares the MongoDB indexes the service depends on and
// reconciles them at startup.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll is called at startup. Each ensure* function is idempotent.
// Errors are aggregated so every problem is visible and startup can fail
// fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCategories(ctx, db); err != nil {
		problems = append(problems, "categories: "+err.Error())
	}
	if err := ensureItems(ctx, db); err != nil {
		problems = append(problems, "items: "+err.Error())
	}
	if err := ensureImages(ctx, db); err != nil {
		problems = append(problems, "images: "+err.Error())
	}
	if err := ensurePrompts(ctx, db); err != nil {
		problems = append(problems, "prompts: "+err.Error())
	}
	if err := ensureReports(ctx, db); err != nil {
		problems = append(problems, "prompt_reports: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	var errs []string
	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}
			// Options mismatch (e.g. upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One mirror record per identity-provider account per app.
		// GetOrCreate's upsert depends on this.
		{
			Keys:    bson.D{{Key: "app_id", Value: 1}, {Key: "external_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_app_external"),
		},
		// Admin listing sorted by folded display name
		{
			Keys:    bson.D{{Key: "app_id", Value: 1}, {Key: "display_name_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_app_nameci"),
		},
	})
}

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("categories")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Invite redemption: equality lookup on the stored token hash.
		// Sparse so categories without an active token stay out of it.
		{
			Keys:    bson.D{{Key: "join_token_hash", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_categories_tokenhash"),
		},
		// "my categories" listing: multikey over member_ids, newest first
		{
			Keys: bson.D{
				{Key: "app_id", Value: 1},
				{Key: "member_ids", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_categories_app_member_created"),
		},
		{
			Keys:    bson.D{{Key: "app_id", Value: 1}, {Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_categories_app_owner"),
		},
	})
}

func ensureItems(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("items")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-category listing and cascade deletes
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_items_category_created"),
		},
	})
}

func ensureImages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("images")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// CSV-row ordering within a category; also serves cascade deletes
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "sort_order", Value: 1}},
			Options: options.Index().SetName("idx_images_category_sort"),
		},
	})
}

func ensurePrompts(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("prompts")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "sort_order", Value: 1}},
			Options: options.Index().SetName("idx_prompts_category_sort"),
		},
		// Public shared listing, most-used first
		{
			Keys: bson.D{
				{Key: "app_id", Value: 1},
				{Key: "is_shared", Value: 1},
				{Key: "usage_count", Value: -1},
			},
			Options: options.Index().SetName("idx_prompts_shared_usage"),
		},
	})
}

func ensureReports(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("prompt_reports")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Moderation queue: pending reports in arrival order
		{
			Keys: bson.D{
				{Key: "app_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_reports_app_status_created"),
		},
	})
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("oauth_states")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_oauth_state"),
		},
		// TTL cleanup of abandoned sign-in attempts
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_oauth_ttl"),
		},
	})
}
