package access

import (
	"context"
	"errors"
	"time"

	"github.com/tacar/listhub/internal/domain/models"
)

// Invite is what GenerateInviteToken hands back: the plaintext token
// (retrievable exactly once) and its expiry.
type Invite struct {
	Token     string
	ExpiresAt time.Time
}

// GenerateInviteToken issues a fresh invite token for the category. Any
// member may invite, not just the owner.
//
// Issuing replaces the previous token unconditionally: sharing a new link
// silently revokes the old one, which callers must surface to users. Two
// concurrent issuances race last-write-wins; the loser's plaintext no
// longer matches the stored hash. That race is accepted: invite issuance
// is a low-frequency human action, and the store gives per-document
// atomicity on the replacement itself. No compare-and-swap is attempted.
func (s *Service) GenerateInviteToken(ctx context.Context, id models.CategoryID, requester models.UserID) (Invite, error) {
	cat, err := s.RequireMember(ctx, id, requester)
	if err != nil {
		return Invite{}, err
	}
	plain, hash, err := newInviteToken()
	if err != nil {
		return Invite{}, err
	}
	now := s.Now().UTC()
	expires := now.Add(s.inviteTTL)
	if err := s.categories.SetJoinToken(ctx, cat.ID, hash, expires, now); err != nil {
		return Invite{}, err
	}
	return Invite{Token: plain, ExpiresAt: expires}, nil
}

// AcceptInvite redeems a token and adds uid to the matching category's
// membership set. The token stays valid afterwards: invite links are
// multi-use until replaced or expired. Redeeming while already a member
// succeeds idempotently without duplicating the membership entry.
//
// The hash lookup spans every app namespace because all categories share
// one collection, so the matched category must belong to the redeemer's
// app; a token from another namespace is treated as invalid. User IDs
// are minted per (app, external identity), and a cross-app redemption
// would plant a member no session in that app could ever be.
//
// A missing expiry on a matched document means the token never expires
// (legacy data; new tokens always carry one).
func (s *Service) AcceptInvite(ctx context.Context, app, token string, uid models.UserID) (models.CategoryID, error) {
	if token == "" {
		return models.CategoryID{}, ErrInvalidToken
	}
	cat, err := s.categories.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.CategoryID{}, ErrInvalidToken
		}
		return models.CategoryID{}, err
	}
	if cat.AppID != app {
		return models.CategoryID{}, ErrInvalidToken
	}
	if !cat.JoinTokenExpiresAt.IsZero() && s.Now().After(cat.JoinTokenExpiresAt) {
		return models.CategoryID{}, ErrTokenExpired
	}
	if cat.IsMember(uid) {
		return cat.ID, nil
	}
	if err := s.categories.AddMember(ctx, cat.ID, uid, s.Now().UTC()); err != nil {
		return models.CategoryID{}, err
	}
	return cat.ID, nil
}
