package oauthstate_test

import (
	"testing"
	"time"

	"github.com/tacar/listhub/internal/app/store/oauthstate"
	"github.com/tacar/listhub/internal/testutil"
)

func TestStore_SaveAndConsume(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	state := "test-state-123"
	if err := store.Save(ctx, state, "kaumono", "/categories", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	app, returnURL, valid, err := store.Consume(ctx, state)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if !valid {
		t.Fatal("expected state to be valid")
	}
	if app != "kaumono" {
		t.Errorf("app: expected %q, got %q", "kaumono", app)
	}
	if returnURL != "/categories" {
		t.Errorf("returnURL: expected %q, got %q", "/categories", returnURL)
	}
}

func TestStore_Consume_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, valid, err := store.Consume(ctx, "never-saved")
	if err != nil {
		t.Fatalf("Consume error: %v", err)
	}
	if valid {
		t.Error("expected unknown state to be invalid")
	}
}

func TestStore_Consume_SingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	state := "single-use-state"
	if err := store.Save(ctx, state, "prompt", "", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, _, valid, err := store.Consume(ctx, state)
	if err != nil {
		t.Fatalf("first Consume failed: %v", err)
	}
	if !valid {
		t.Fatal("expected first consume to succeed")
	}

	_, _, valid, err = store.Consume(ctx, state)
	if err != nil {
		t.Fatalf("second Consume error: %v", err)
	}
	if valid {
		t.Error("expected second consume to fail (single use)")
	}
}

func TestStore_Consume_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	state := "expired-state"
	if err := store.Save(ctx, state, "ocrcsv", "", time.Now().Add(-1*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, _, valid, err := store.Consume(ctx, state)
	if err != nil {
		t.Fatalf("Consume error: %v", err)
	}
	if valid {
		t.Error("expected expired state to be invalid")
	}
}

func TestStore_CleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, "expired-"+string(rune('a'+i)), "kaumono", "", time.Now().Add(-1*time.Minute)); err != nil {
			t.Fatalf("Save expired state failed: %v", err)
		}
	}
	if err := store.Save(ctx, "still-valid", "kaumono", "", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save valid state failed: %v", err)
	}

	deleted, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", deleted)
	}

	_, _, valid, _ := store.Consume(ctx, "still-valid")
	if !valid {
		t.Error("expected still-valid to survive cleanup")
	}
}
