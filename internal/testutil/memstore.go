package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/tacar/listhub/internal/app/access"
	"github.com/tacar/listhub/internal/domain/models"
)

// MemCategories is an in-memory access.CategoryStore. It mirrors the
// Mongo store's contract: ErrNotFound for missing documents, set
// semantics on AddMember, member insertion order preserved.
type MemCategories struct {
	mu   sync.Mutex
	byID map[models.CategoryID]models.Category
}

func NewMemCategories() *MemCategories {
	return &MemCategories{byID: make(map[models.CategoryID]models.Category)}
}

func (m *MemCategories) Get(_ context.Context, id models.CategoryID) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.byID[id]
	if !ok {
		return models.Category{}, access.ErrNotFound
	}
	return clone(cat), nil
}

func (m *MemCategories) GetByTokenHash(_ context.Context, hash string) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hash == "" {
		return models.Category{}, access.ErrNotFound
	}
	for _, cat := range m.byID {
		if cat.JoinTokenHash == hash {
			return clone(cat), nil
		}
	}
	return models.Category{}, access.ErrNotFound
}

func (m *MemCategories) ListByMember(_ context.Context, app string, uid models.UserID) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Category
	for _, cat := range m.byID {
		if cat.AppID == app && cat.IsMember(uid) {
			out = append(out, clone(cat))
		}
	}
	return out, nil
}

func (m *MemCategories) Insert(_ context.Context, c models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[c.ID] = clone(c)
	return nil
}

func (m *MemCategories) Rename(_ context.Context, id models.CategoryID, name, nameCI string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.byID[id]
	if !ok {
		return access.ErrNotFound
	}
	cat.Name = name
	cat.NameCI = nameCI
	cat.UpdatedAt = at
	m.byID[id] = cat
	return nil
}

func (m *MemCategories) AddMember(_ context.Context, id models.CategoryID, uid models.UserID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.byID[id]
	if !ok {
		return access.ErrNotFound
	}
	if !cat.IsMember(uid) {
		cat.MemberIDs = append(cat.MemberIDs, uid)
	}
	cat.UpdatedAt = at
	m.byID[id] = cat
	return nil
}

func (m *MemCategories) RemoveMember(_ context.Context, id models.CategoryID, uid models.UserID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.byID[id]
	if !ok {
		return access.ErrNotFound
	}
	kept := cat.MemberIDs[:0]
	for _, mid := range cat.MemberIDs {
		if mid != uid {
			kept = append(kept, mid)
		}
	}
	cat.MemberIDs = kept
	cat.UpdatedAt = at
	m.byID[id] = cat
	return nil
}

func (m *MemCategories) SetJoinToken(_ context.Context, id models.CategoryID, hash string, expiresAt, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.byID[id]
	if !ok {
		return access.ErrNotFound
	}
	cat.JoinTokenHash = hash
	cat.JoinTokenExpiresAt = expiresAt
	cat.UpdatedAt = at
	m.byID[id] = cat
	return nil
}

func (m *MemCategories) Delete(_ context.Context, id models.CategoryID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func clone(c models.Category) models.Category {
	c.MemberIDs = append([]models.UserID(nil), c.MemberIDs...)
	return c
}

// MemUsers is an in-memory access.UserStore.
type MemUsers struct {
	mu   sync.Mutex
	byID map[models.UserID]models.User
}

func NewMemUsers() *MemUsers {
	return &MemUsers{byID: make(map[models.UserID]models.User)}
}

// Put inserts or replaces a user.
func (m *MemUsers) Put(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
}

func (m *MemUsers) GetByID(_ context.Context, id models.UserID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, access.ErrNotFound
	}
	return u, nil
}

func (m *MemUsers) GetByIDs(_ context.Context, ids []models.UserID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := m.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// MemDeleter is an in-memory access.ResourceDeleter that counts documents
// per category, for cascade tests.
type MemDeleter struct {
	mu     sync.Mutex
	counts map[models.CategoryID]int64

	// Deleted records the categories passed to DeleteByCategory, in order.
	Deleted []models.CategoryID
}

func NewMemDeleter() *MemDeleter {
	return &MemDeleter{counts: make(map[models.CategoryID]int64)}
}

// Seed sets the number of documents living under a category.
func (m *MemDeleter) Seed(id models.CategoryID, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[id] = n
}

func (m *MemDeleter) DeleteByCategory(_ context.Context, id models.CategoryID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.counts[id]
	delete(m.counts, id)
	m.Deleted = append(m.Deleted, id)
	return n, nil
}

// Remaining reports how many documents are still seeded under a category.
func (m *MemDeleter) Remaining(id models.CategoryID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[id]
}
