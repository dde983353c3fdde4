package access

import (
	"context"

	"github.com/tacar/listhub/internal/domain/models"
)

// RemoveMember forcibly removes target from the category. Owner only.
// Removing the owner is structurally disallowed (there is no ownership
// transfer, so an owner-less category can never be reached). Removing a
// user who is already not a member succeeds idempotently.
func (s *Service) RemoveMember(ctx context.Context, id models.CategoryID, target, executor models.UserID) error {
	cat, err := s.RequireOwner(ctx, id, executor)
	if err != nil {
		return err
	}
	if target == cat.OwnerID {
		return ErrInvalidOperation
	}
	if !cat.IsMember(target) {
		return nil
	}
	return s.categories.RemoveMember(ctx, id, target, s.Now().UTC())
}

// Leave removes uid from the category at their own request. Any member may
// leave except the owner: with no transfer mechanism, the owner leaving
// would orphan the category, so it is a hard invariant, not policy.
func (s *Service) Leave(ctx context.Context, id models.CategoryID, uid models.UserID) error {
	cat, err := s.RequireMember(ctx, id, uid)
	if err != nil {
		return err
	}
	if cat.IsOwner(uid) {
		return ErrInvalidOperation
	}
	return s.categories.RemoveMember(ctx, id, uid, s.Now().UTC())
}
