package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/tacar/listhub/internal/domain/models"
)

// Create inserts a new category owned by owner, with owner as its only
// member. Names are not unique, so creation always succeeds.
func (s *Service) Create(ctx context.Context, app, name string, owner models.UserID) (models.CategoryID, error) {
	now := s.Now().UTC()
	name = strings.TrimSpace(name)
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
	if err := s.categories.Insert(ctx, cat); err != nil {
		return models.CategoryID{}, fmt.Errorf("insert category: %w", err)
	}
	return cat.ID, nil
}

// Rename changes the display name. Owner only.
func (s *Service) Rename(ctx context.Context, id models.CategoryID, name string, requester models.UserID) error {
	if _, err := s.RequireOwner(ctx, id, requester); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	return s.categories.Rename(ctx, id, name, text.Fold(name), s.Now().UTC())
}

// Delete removes the category and everything under it. Owner only.
//
// Children go first, then the category record: a crash mid-cascade leaves
// orphaned resources (detectable and cleanable by category_id) rather than
// a live category pointing at half-deleted contents.
func (s *Service) Delete(ctx context.Context, id models.CategoryID, requester models.UserID) error {
	if _, err := s.RequireOwner(ctx, id, requester); err != nil {
		return err
	}
	for _, d := range s.cascades {
		if _, err := d.DeleteByCategory(ctx, id); err != nil {
			return fmt.Errorf("cascade delete: %w", err)
		}
	}
	return s.categories.Delete(ctx, id)
}

// ListForUser returns every category of app that uid belongs to.
func (s *Service) ListForUser(ctx context.Context, app string, uid models.UserID) ([]models.Category, error) {
	return s.categories.ListByMember(ctx, app, uid)
}

// Member is one entry of a category's hydrated member listing.
type Member struct {
	ID          models.UserID `json:"id"`
	DisplayName string        `json:"displayName"`
	Email       string        `json:"email"`
	IsOwner     bool          `json:"isOwner"`
}

// Detail returns the category together with its member listing, in
// member_ids (insertion) order. Requires membership: unlike some of the
// surfaces this replaces, member data is never handed to non-members.
func (s *Service) Detail(ctx context.Context, id models.CategoryID, requester models.UserID) (models.Category, []Member, error) {
	cat, err := s.RequireMember(ctx, id, requester)
	if err != nil {
		return models.Category{}, nil, err
	}

	users, err := s.users.GetByIDs(ctx, cat.MemberIDs)
	if err != nil {
		return models.Category{}, nil, fmt.Errorf("load members: %w", err)
	}
	byID := make(map[models.UserID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	members := make([]Member, 0, len(cat.MemberIDs))
	for _, uid := range cat.MemberIDs {
		u, ok := byID[uid]
		if !ok {
			// Membership entry with no user record: keep the listing
			// usable rather than failing the whole read.
			members = append(members, Member{ID: uid, IsOwner: cat.IsOwner(uid)})
			continue
		}
		members = append(members, Member{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			IsOwner:     cat.IsOwner(uid),
		})
	}
	return cat, members, nil
}
