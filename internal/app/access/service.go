// Package access is the collaborative-category access-control and
// invitation service shared by every listhub app. It owns the
// category/membership entity, decides owner/member authorization for all
// mutations on categorized resources, and issues/redeems the expiring
// invite tokens that add users to a category's membership set.
//
// The service keeps no state between calls: every decision re-reads the
// current membership from the store, so there is no cache to go stale.
// Stores are injected as interfaces so the whole package tests against
// in-memory fakes. The service performs no logging; callers translate the
// error taxonomy in errors.go into status codes and log entries.
package access

import (
	"context"
	"time"

	"github.com/tacar/listhub/internal/domain/models"
)

// DefaultInviteTTL is how long a freshly issued invite token stays
// redeemable unless configured otherwise.
const DefaultInviteTTL = 7 * 24 * time.Hour

// CategoryStore is the persistence surface the service needs for
// categories. Implementations must return ErrNotFound (possibly wrapped)
// for missing documents, keep member_ids set semantics on AddMember, and
// preserve member insertion order.
type CategoryStore interface {
	Get(ctx context.Context, id models.CategoryID) (models.Category, error)

	// GetByTokenHash looks a category up by its stored invite-token hash
	// via an equality index. It must never scan plaintext tokens (the
	// store has none).
	GetByTokenHash(ctx context.Context, hash string) (models.Category, error)

	ListByMember(ctx context.Context, app string, uid models.UserID) ([]models.Category, error)
	Insert(ctx context.Context, c models.Category) error
	Rename(ctx context.Context, id models.CategoryID, name, nameCI string, at time.Time) error

	// AddMember appends uid to member_ids only if absent (set semantics)
	// and touches updated_at.
	AddMember(ctx context.Context, id models.CategoryID, uid models.UserID, at time.Time) error

	RemoveMember(ctx context.Context, id models.CategoryID, uid models.UserID, at time.Time) error

	// SetJoinToken unconditionally replaces the stored token hash and
	// expiry. Last write wins; see the concurrency note on
	// GenerateInviteToken.
	SetJoinToken(ctx context.Context, id models.CategoryID, hash string, expiresAt, at time.Time) error

	Delete(ctx context.Context, id models.CategoryID) error
}

// UserStore is the slice of user persistence the service needs to hydrate
// member listings.
type UserStore interface {
	GetByID(ctx context.Context, id models.UserID) (models.User, error)
	GetByIDs(ctx context.Context, ids []models.UserID) ([]models.User, error)
}

// ResourceDeleter removes every resource of one kind under a category.
// Each resource store (items, images, prompts) registers one so category
// deletion can cascade children first.
type ResourceDeleter interface {
	DeleteByCategory(ctx context.Context, id models.CategoryID) (int64, error)
}

// Service implements the access-control and invitation operations.
type Service struct {
	categories CategoryStore
	users      UserStore
	cascades   []ResourceDeleter
	inviteTTL  time.Duration

	// Now returns the current time. Tests override it to drive token
	// expiry; production code leaves it alone.
	Now func() time.Time
}

// New builds a Service. cascades lists the resource stores whose documents
// must be deleted when a category is deleted; inviteTTL <= 0 selects
// DefaultInviteTTL.
func New(categories CategoryStore, users UserStore, cascades []ResourceDeleter, inviteTTL time.Duration) *Service {
	if inviteTTL <= 0 {
		inviteTTL = DefaultInviteTTL
	}
	return &Service{
		categories: categories,
		users:      users,
		cascades:   cascades,
		inviteTTL:  inviteTTL,
		Now:        time.Now,
	}
}

// RequireMember fetches the category and verifies uid is a member. The
// category is returned so the caller does not need a second fetch. There
// are no side effects and failures are never worth retrying.
//
// When the operation also carries a resource ID, the caller must pass the
// category referenced by that resource (resource.CategoryID), never a
// category supplied directly by the client; otherwise a client could name
// a category it belongs to while touching a resource under one it does not.
func (s *Service) RequireMember(ctx context.Context, id models.CategoryID, uid models.UserID) (models.Category, error) {
	cat, err := s.categories.Get(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	if !cat.IsMember(uid) {
		return models.Category{}, ErrPermissionDenied
	}
	return cat, nil
}

// RequireOwner is RequireMember plus an ownership check.
func (s *Service) RequireOwner(ctx context.Context, id models.CategoryID, uid models.UserID) (models.Category, error) {
	cat, err := s.RequireMember(ctx, id, uid)
	if err != nil {
		return models.Category{}, err
	}
	if !cat.IsOwner(uid) {
		return models.Category{}, ErrPermissionDenied
	}
	return cat, nil
}
