package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tacar/listhub/internal/app/access"
	"github.com/tacar/listhub/internal/domain/models"
	"github.com/tacar/listhub/internal/testutil"
)

// env bundles a service with its fakes so tests can reach behind the API.
type env struct {
	svc    *access.Service
	cats   *testutil.MemCategories
	users  *testutil.MemUsers
	items  *testutil.MemDeleter
	images *testutil.MemDeleter
}

func newEnv(t *testing.T) *env {
	t.Helper()
	cats := testutil.NewMemCategories()
	users := testutil.NewMemUsers()
	items := testutil.NewMemDeleter()
	images := testutil.NewMemDeleter()
	svc := access.New(cats, users, []access.ResourceDeleter{items, images}, 0)
	return &env{svc: svc, cats: cats, users: users, items: items, images: images}
}

func (e *env) addUser(t *testing.T, name, email string) models.UserID {
	t.Helper()
	u := models.User{
		ID:          models.NewUserID(),
		AppID:       models.AppKaumono,
		DisplayName: name,
		Email:       email,
	}
	e.users.Put(u)
	return u.ID
}

func TestRequireMember(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	outsider := e.addUser(t, "Outsider", "out@example.com")

	catID, err := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := e.svc.RequireMember(ctx, catID, owner); err != nil {
		t.Errorf("owner should pass RequireMember: %v", err)
	}
	if _, err := e.svc.RequireMember(ctx, catID, outsider); !errors.Is(err, access.ErrPermissionDenied) {
		t.Errorf("outsider: want ErrPermissionDenied, got %v", err)
	}
	if _, err := e.svc.RequireMember(ctx, models.NewCategoryID(), owner); !errors.Is(err, access.ErrNotFound) {
		t.Errorf("missing category: want ErrNotFound, got %v", err)
	}
}

func TestRequireOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	member := e.addUser(t, "Member", "member@example.com")

	catID, err := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mustJoin(t, e, catID, owner, member)

	if _, err := e.svc.RequireOwner(ctx, catID, owner); err != nil {
		t.Errorf("owner should pass RequireOwner: %v", err)
	}
	if _, err := e.svc.RequireOwner(ctx, catID, member); !errors.Is(err, access.ErrPermissionDenied) {
		t.Errorf("member: want ErrPermissionDenied, got %v", err)
	}
}

// mustJoin issues an invite as issuer and redeems it as joiner.
func mustJoin(t *testing.T, e *env, catID models.CategoryID, issuer, joiner models.UserID) {
	t.Helper()
	inv, err := e.svc.GenerateInviteToken(context.Background(), catID, issuer)
	if err != nil {
		t.Fatalf("GenerateInviteToken: %v", err)
	}
	got, err := e.svc.AcceptInvite(context.Background(), models.AppKaumono, inv.Token, joiner)
	if err != nil {
		t.Fatalf("AcceptInvite: %v", err)
	}
	if got != catID {
		t.Fatalf("AcceptInvite returned category %s, want %s", got.Hex(), catID.Hex())
	}
}

func TestNewDefaultsInviteTTL(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	catID, err := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.svc.Now = func() time.Time { return issued }

	inv, err := e.svc.GenerateInviteToken(ctx, catID, owner)
	if err != nil {
		t.Fatalf("GenerateInviteToken: %v", err)
	}
	want := issued.Add(access.DefaultInviteTTL)
	if !inv.ExpiresAt.Equal(want) {
		t.Errorf("expiry: got %v, want %v", inv.ExpiresAt, want)
	}
}
