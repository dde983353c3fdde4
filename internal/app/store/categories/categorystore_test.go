package categorystore

import (
	"errors"
	"testing"
	"time"

	"github.com/tacar/listhub/internal/app/access"
	"github.com/tacar/listhub/internal/domain/models"
	"github.com/tacar/listhub/internal/testutil"
)

func TestStoreMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateUser(ctx, models.AppKaumono, "Aki", "aki@example.com")
	joiner := fx.CreateUser(ctx, models.AppKaumono, "Ben", "ben@example.com")
	cat := fx.CreateCategory(ctx, models.AppKaumono, "Groceries", owner.ID)

	now := time.Now().UTC()
	if err := s.AddMember(ctx, cat.ID, joiner.ID, now); err != nil {
		t.Fatalf("add member: %v", err)
	}
	// Set semantics: adding again must not duplicate.
	if err := s.AddMember(ctx, cat.ID, joiner.ID, now); err != nil {
		t.Fatalf("add member twice: %v", err)
	}

	got, err := s.Get(ctx, cat.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.MemberIDs) != 2 {
		t.Fatalf("member count: got %d, want 2", len(got.MemberIDs))
	}
	if got.MemberIDs[0] != owner.ID || got.MemberIDs[1] != joiner.ID {
		t.Error("member insertion order not preserved")
	}

	if err := s.RemoveMember(ctx, cat.ID, joiner.ID, now); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	got, err = s.Get(ctx, cat.ID)
	if err != nil {
		t.Fatalf("get after remove: %v", err)
	}
	if got.IsMember(joiner.ID) {
		t.Error("member still present after removal")
	}
}

func TestStoreListByMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	fx := testutil.NewFixtures(t, db)

	u := fx.CreateUser(ctx, models.AppKaumono, "Aki", "aki@example.com")
	other := fx.CreateUser(ctx, models.AppKaumono, "Ben", "ben@example.com")
	mine := fx.CreateCategory(ctx, models.AppKaumono, "Groceries", u.ID)
	fx.CreateCategory(ctx, models.AppKaumono, "Not mine", other.ID)
	// Same user, different app namespace: must not leak across.
	fx.CreateCategory(ctx, models.AppPrompt, "Prompts", u.ID)

	cats, err := s.ListByMember(ctx, models.AppKaumono, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 1 {
		t.Fatalf("categories: got %d, want 1", len(cats))
	}
	if cats[0].ID != mine.ID {
		t.Errorf("category: got %s, want %s", cats[0].ID.Hex(), mine.ID.Hex())
	}
}

func TestStoreTokenHashLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateUser(ctx, models.AppKaumono, "Aki", "aki@example.com")
	cat := fx.CreateCategory(ctx, models.AppKaumono, "Groceries", owner.ID)

	hash := access.HashToken("some-plaintext-token")
	now := time.Now().UTC()
	if err := s.SetJoinToken(ctx, cat.ID, hash, now.Add(time.Hour), now); err != nil {
		t.Fatalf("set join token: %v", err)
	}

	got, err := s.GetByTokenHash(ctx, hash)
	if err != nil {
		t.Fatalf("lookup by hash: %v", err)
	}
	if got.ID != cat.ID {
		t.Errorf("category: got %s, want %s", got.ID.Hex(), cat.ID.Hex())
	}

	if _, err := s.GetByTokenHash(ctx, access.HashToken("other")); !errors.Is(err, access.ErrNotFound) {
		t.Errorf("unknown hash: got %v, want ErrNotFound", err)
	}
}

func TestStoreGetMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	if _, err := s.Get(ctx, models.NewCategoryID()); !errors.Is(err, access.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
