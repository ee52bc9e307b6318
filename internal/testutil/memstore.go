// Package testutil provides an in-memory store for service and handler tests.
package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore implements the service repositories over maps. The Err fields
// make the matching method fail, for failure-path tests.
type MemStore struct {
	mu          sync.Mutex
	users       []*domain.User
	communities []*domain.Community
	posts       []*domain.Post

	ErrAddUserCommunity    error
	ErrRemoveUserCommunity error
	ErrAddMember           error
	ErrRemoveMember        error
	ErrFind                error

	TxCalls int
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.TxCalls++
	m.mu.Unlock()
	return fn(ctx)
}

func (m *MemStore) Ping(context.Context) error { return nil }

func (m *MemStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrFind != nil {
		return nil, m.ErrFind
	}
	if u := m.user(email); u != nil {
		cp := *u
		cp.Communities = slices.Clone(u.Communities)
		return &cp, nil
	}
	return nil, nil
}

func (m *MemStore) CreateUser(_ context.Context, u *domain.User) (domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user(u.Email) != nil {
		return domain.InsertResult{}, repo.ErrEmailExists
	}
	cp := *u
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	m.users = append(m.users, &cp)
	return domain.InsertResult{Acknowledged: true, InsertedID: cp.ID.Hex()}, nil
}

func (m *MemStore) AddUserCommunity(_ context.Context, email, communityID string) (domain.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrAddUserCommunity != nil {
		return domain.UpdateResult{}, m.ErrAddUserCommunity
	}
	u := m.user(email)
	if u == nil {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	res := domain.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if !slices.Contains(u.Communities, communityID) {
		u.Communities = append(u.Communities, communityID)
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *MemStore) RemoveUserCommunity(_ context.Context, email, communityID string) (domain.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrRemoveUserCommunity != nil {
		return domain.UpdateResult{}, m.ErrRemoveUserCommunity
	}
	u := m.user(email)
	if u == nil {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	res := domain.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if i := slices.Index(u.Communities, communityID); i >= 0 {
		u.Communities = slices.Delete(u.Communities, i, i+1)
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *MemStore) CreateCommunity(_ context.Context, c *domain.Community) (domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.Members = slices.Clone(c.Members)
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	m.communities = append(m.communities, &cp)
	return domain.InsertResult{Acknowledged: true, InsertedID: cp.ID.Hex()}, nil
}

func (m *MemStore) ListCommunities(context.Context) ([]domain.Community, error) {
	return m.filterCommunities(func(*domain.Community) bool { return true }), nil
}

func (m *MemStore) ListCommunitiesByAdmin(_ context.Context, email string) ([]domain.Community, error) {
	return m.filterCommunities(func(c *domain.Community) bool { return c.AdminEmail == email }), nil
}

func (m *MemStore) FindCommunityByID(_ context.Context, id primitive.ObjectID) (*domain.Community, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrFind != nil {
		return nil, m.ErrFind
	}
	if c := m.community(id); c != nil {
		cp := *c
		cp.Members = slices.Clone(c.Members)
		return &cp, nil
	}
	return nil, nil
}

func (m *MemStore) AddCommunityMember(_ context.Context, id primitive.ObjectID, email string) (domain.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrAddMember != nil {
		return domain.UpdateResult{}, m.ErrAddMember
	}
	c := m.community(id)
	if c == nil || slices.Contains(c.Members, email) {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	c.Members = append(c.Members, email)
	return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MemStore) RemoveCommunityMember(_ context.Context, id primitive.ObjectID, email string) (domain.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrRemoveMember != nil {
		return domain.UpdateResult{}, m.ErrRemoveMember
	}
	c := m.community(id)
	if c == nil || !slices.Contains(c.Members, email) {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	c.Members = slices.DeleteFunc(c.Members, func(s string) bool { return s == email })
	return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MemStore) CreatePost(_ context.Context, p *domain.Post) (domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	m.posts = append(m.posts, &cp)
	return domain.InsertResult{Acknowledged: true, InsertedID: cp.ID.Hex()}, nil
}

func (m *MemStore) ListPostsByCommunity(_ context.Context, communityID string) ([]domain.Post, error) {
	return m.filterPosts(func(p *domain.Post) bool { return p.CommunityID == communityID }), nil
}

func (m *MemStore) ListPosts(context.Context) ([]domain.Post, error) {
	return m.filterPosts(func(*domain.Post) bool { return true }), nil
}

// Users returns how many user documents have email.
func (m *MemStore) Users(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

func (m *MemStore) user(email string) *domain.User {
	for _, u := range m.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (m *MemStore) community(id primitive.ObjectID) *domain.Community {
	for _, c := range m.communities {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *MemStore) filterCommunities(keep func(*domain.Community) bool) []domain.Community {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Community, 0, len(m.communities))
	for _, c := range m.communities {
		if keep(c) {
			cp := *c
			cp.Members = slices.Clone(c.Members)
			out = append(out, cp)
		}
	}
	return out
}

func (m *MemStore) filterPosts(keep func(*domain.Post) bool) []domain.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Post, 0, len(m.posts))
	for _, p := range m.posts {
		if keep(p) {
			out = append(out, *p)
		}
	}
	return out
}
