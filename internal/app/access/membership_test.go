package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tacar/listhub/internal/app/access"
	"github.com/tacar/listhub/internal/domain/models"
)

func TestRemoveMember(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	member := e.addUser(t, "Member", "member@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	mustJoin(t, e, catID, owner, member)

	if err := e.svc.RemoveMember(ctx, catID, member, owner); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	cat, _ := e.cats.Get(ctx, catID)
	if cat.IsMember(member) {
		t.Error("member should be removed")
	}
	if !cat.IsMember(owner) {
		t.Error("owner must survive member removal")
	}
}

func TestRemoveMember_TargetOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)

	if err := e.svc.RemoveMember(ctx, catID, owner, owner); !errors.Is(err, access.ErrInvalidOperation) {
		t.Errorf("removing the owner: want ErrInvalidOperation, got %v", err)
	}
}

func TestRemoveMember_NonOwnerExecutor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	m1 := e.addUser(t, "M1", "m1@example.com")
	m2 := e.addUser(t, "M2", "m2@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	mustJoin(t, e, catID, owner, m1)
	mustJoin(t, e, catID, owner, m2)

	if err := e.svc.RemoveMember(ctx, catID, m2, m1); !errors.Is(err, access.ErrPermissionDenied) {
		t.Errorf("member removing member: want ErrPermissionDenied, got %v", err)
	}
}

func TestRemoveMember_NotAMemberIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	stranger := e.addUser(t, "Stranger", "s@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)

	if err := e.svc.RemoveMember(ctx, catID, stranger, owner); err != nil {
		t.Errorf("removing a non-member should succeed, got %v", err)
	}
}

func TestLeave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	member := e.addUser(t, "Member", "member@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	mustJoin(t, e, catID, owner, member)

	if err := e.svc.Leave(ctx, catID, member); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	cat, _ := e.cats.Get(ctx, catID)
	if cat.IsMember(member) {
		t.Error("member should have left")
	}
}

func TestLeave_OwnerCannotLeave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)

	if err := e.svc.Leave(ctx, catID, owner); !errors.Is(err, access.ErrInvalidOperation) {
		t.Errorf("owner leaving: want ErrInvalidOperation, got %v", err)
	}
	cat, _ := e.cats.Get(ctx, catID)
	if !cat.IsMember(owner) {
		t.Error("owner must remain a member after a refused leave")
	}
}

func TestLeave_NonMember(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	outsider := e.addUser(t, "Outsider", "out@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)

	if err := e.svc.Leave(ctx, catID, outsider); !errors.Is(err, access.ErrPermissionDenied) {
		t.Errorf("non-member leaving: want ErrPermissionDenied, got %v", err)
	}
}
