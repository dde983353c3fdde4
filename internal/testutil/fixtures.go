package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tacar/listhub/internal/domain/models"
)

// Fixtures creates test data directly in the collections, skipping the
// service layer.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a mirror user for the given app namespace.
func (f *Fixtures) CreateUser(ctx context.Context, app, displayName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:            models.NewUserID(),
		AppID:         app,
		ExternalID:    "ext-" + models.NewUserID().Hex(),
		DisplayName:   displayName,
		DisplayNameCI: text.Fold(displayName),
		Email:         email,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return u
}

// CreateCategory inserts a category owned by owner, with owner as the
// sole member.
func (f *Fixtures) CreateCategory(ctx context.Context, app, name string, owner models.UserID) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	cat := models.Category{
		ID:        models.NewCategoryID(),
		AppID:     app,
		Name:      name,
		NameCI:    text.Fold(name),
		OwnerID:   owner,
		MemberIDs: []models.UserID{owner},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("create test category: %v", err)
	}
	return cat
}

// CreateItem inserts a kaumono item under the given category.
func (f *Fixtures) CreateItem(ctx context.Context, catID models.CategoryID, title string, createdBy models.UserID) models.Item {
	f.t.Helper()

	now := time.Now().UTC()
	it := models.Item{
		ID:         models.NewItemID(),
		AppID:      models.AppKaumono,
		CategoryID: catID,
		Title:      title,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("items").InsertOne(ctx, it); err != nil {
		f.t.Fatalf("create test item: %v", err)
	}
	return it
}
