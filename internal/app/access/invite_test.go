package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tacar/listhub/internal/app/access"
	"github.com/tacar/listhub/internal/domain/models"
)

func TestGenerateInviteToken_AnyMemberMayIssue(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	member := e.addUser(t, "Member", "member@example.com")
	outsider := e.addUser(t, "Outsider", "out@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	mustJoin(t, e, catID, owner, member)

	inv, err := e.svc.GenerateInviteToken(ctx, catID, member)
	if err != nil {
		t.Fatalf("member should be able to issue: %v", err)
	}
	if inv.Token == "" {
		t.Fatal("empty token")
	}

	if _, err := e.svc.GenerateInviteToken(ctx, catID, outsider); !errors.Is(err, access.ErrPermissionDenied) {
		t.Errorf("outsider: want ErrPermissionDenied, got %v", err)
	}
}

func TestGenerateInviteToken_StoresHashNotPlaintext(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	inv, err := e.svc.GenerateInviteToken(ctx, catID, owner)
	if err != nil {
		t.Fatalf("GenerateInviteToken: %v", err)
	}

	cat, _ := e.cats.Get(ctx, catID)
	if cat.JoinTokenHash == inv.Token {
		t.Error("plaintext token was persisted")
	}
	if cat.JoinTokenHash != access.HashToken(inv.Token) {
		t.Error("stored hash does not match the issued token")
	}
}

func TestAcceptInvite_MultiUse(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	u1 := e.addUser(t, "U1", "u1@example.com")
	u2 := e.addUser(t, "U2", "u2@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	inv, _ := e.svc.GenerateInviteToken(ctx, catID, owner)

	for _, uid := range []models.UserID{u1, u2} {
		got, err := e.svc.AcceptInvite(ctx, models.AppKaumono, inv.Token, uid)
		if err != nil {
			t.Fatalf("AcceptInvite: %v", err)
		}
		if got != catID {
			t.Fatalf("wrong category: %s", got.Hex())
		}
	}

	cat, _ := e.cats.Get(ctx, catID)
	if len(cat.MemberIDs) != 3 {
		t.Errorf("members: got %d, want 3", len(cat.MemberIDs))
	}
}

func TestAcceptInvite_Idempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	joiner := e.addUser(t, "Joiner", "j@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)
	inv, _ := e.svc.GenerateInviteToken(ctx, catID, owner)

	for i := 0; i < 3; i++ {
		if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, inv.Token, joiner); err != nil {
			t.Fatalf("redemption %d: %v", i, err)
		}
	}

	cat, _ := e.cats.Get(ctx, catID)
	count := 0
	for _, m := range cat.MemberIDs {
		if m == joiner {
			count++
		}
	}
	if count != 1 {
		t.Errorf("joiner appears %d times in member_ids", count)
	}
}

func TestAcceptInvite_InvalidToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	joiner := e.addUser(t, "Joiner", "j@example.com")

	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, "", joiner); !errors.Is(err, access.ErrInvalidToken) {
		t.Errorf("empty token: want ErrInvalidToken, got %v", err)
	}
	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, "no-such-token", joiner); !errors.Is(err, access.ErrInvalidToken) {
		t.Errorf("unknown token: want ErrInvalidToken, got %v", err)
	}
}

func TestAcceptInvite_WrongAppNamespace(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	joiner := e.addUser(t, "Joiner", "j@example.com")

	catID, _ := e.svc.Create(ctx, models.AppOCRCSV, "Scans", owner)
	inv, err := e.svc.GenerateInviteToken(ctx, catID, owner)
	if err != nil {
		t.Fatalf("GenerateInviteToken: %v", err)
	}

	// The hash matches, but the category lives in another app namespace;
	// the redeemer must not learn that, so the token reads as invalid.
	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, inv.Token, joiner); !errors.Is(err, access.ErrInvalidToken) {
		t.Fatalf("cross-app redemption: want ErrInvalidToken, got %v", err)
	}
	cat, _ := e.cats.Get(ctx, catID)
	if cat.IsMember(joiner) {
		t.Error("cross-app redeemer was added to member_ids")
	}

	if _, err := e.svc.AcceptInvite(ctx, models.AppOCRCSV, inv.Token, joiner); err != nil {
		t.Fatalf("same-app redemption: %v", err)
	}
}

func TestAcceptInvite_Expired(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	joiner := e.addUser(t, "Joiner", "j@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.svc.Now = func() time.Time { return issued }
	inv, err := e.svc.GenerateInviteToken(ctx, catID, owner)
	if err != nil {
		t.Fatalf("GenerateInviteToken: %v", err)
	}

	// Just before expiry: redeemable.
	e.svc.Now = func() time.Time { return inv.ExpiresAt.Add(-time.Second) }
	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, inv.Token, joiner); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	// Past expiry: a new joiner is refused.
	late := e.addUser(t, "Late", "late@example.com")
	e.svc.Now = func() time.Time { return inv.ExpiresAt.Add(time.Second) }
	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, inv.Token, late); !errors.Is(err, access.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
}

func TestAcceptInvite_ReplacedTokenInvalidatesOld(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	joiner := e.addUser(t, "Joiner", "j@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)

	first, _ := e.svc.GenerateInviteToken(ctx, catID, owner)
	second, _ := e.svc.GenerateInviteToken(ctx, catID, owner)

	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, first.Token, joiner); !errors.Is(err, access.ErrInvalidToken) {
		t.Errorf("replaced token: want ErrInvalidToken, got %v", err)
	}
	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, second.Token, joiner); err != nil {
		t.Errorf("current token should redeem: %v", err)
	}
}

func TestAcceptInvite_LegacyTokenWithoutExpiry(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Owner", "owner@example.com")
	joiner := e.addUser(t, "Joiner", "j@example.com")

	catID, _ := e.svc.Create(ctx, models.AppKaumono, "Groceries", owner)

	// Simulate a legacy document: hash set, no expiry.
	token := "legacy-token"
	if err := e.cats.SetJoinToken(ctx, catID, access.HashToken(token), time.Time{}, time.Now()); err != nil {
		t.Fatalf("SetJoinToken: %v", err)
	}

	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, token, joiner); err != nil {
		t.Errorf("legacy token without expiry should redeem: %v", err)
	}
}

// TestInviteLifecycle walks the whole flow: create, invite, join, list,
// remove, leave, delete.
func TestInviteLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "Alice", "alice@example.com")
	bob := e.addUser(t, "Bob", "bob@example.com")
	carol := e.addUser(t, "Carol", "carol@example.com")

	catID, err := e.svc.Create(ctx, models.AppKaumono, "Household", owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inv, err := e.svc.GenerateInviteToken(ctx, catID, owner)
	if err != nil {
		t.Fatalf("GenerateInviteToken: %v", err)
	}
	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, inv.Token, bob); err != nil {
		t.Fatalf("bob joins: %v", err)
	}
	if _, err := e.svc.AcceptInvite(ctx, models.AppKaumono, inv.Token, carol); err != nil {
		t.Fatalf("carol joins: %v", err)
	}

	_, members, err := e.svc.Detail(ctx, catID, bob)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("members: got %d, want 3", len(members))
	}

	if err := e.svc.RemoveMember(ctx, catID, carol, owner); err != nil {
		t.Fatalf("remove carol: %v", err)
	}
	if err := e.svc.Leave(ctx, catID, bob); err != nil {
		t.Fatalf("bob leaves: %v", err)
	}

	cat, _ := e.cats.Get(ctx, catID)
	if len(cat.MemberIDs) != 1 || cat.MemberIDs[0] != owner {
		t.Errorf("only the owner should remain: %v", cat.MemberIDs)
	}

	e.items.Seed(catID, 5)
	if err := e.svc.Delete(ctx, catID, owner); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := e.svc.RequireMember(ctx, catID, owner); !errors.Is(err, access.ErrNotFound) {
		t.Errorf("deleted category should be gone, got %v", err)
	}
}
