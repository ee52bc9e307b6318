package service_test

import (
	"context"
	"errors"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/metrics"
	"github.com/tazhibayda/community-service/internal/service"
	"github.com/tazhibayda/community-service/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

func newService(t *testing.T) (*service.Service, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	return service.New(store, zaptest.NewLogger(t)), store
}

func createCommunity(t *testing.T, svc *service.Service, admin string) string {
	t.Helper()
	res, err := svc.CreateCommunity(context.Background(), &domain.Community{
		AdminEmail: admin,
		Members:    []string{},
		Extra:      map[string]any{"name": "C"},
	})
	require.NoError(t, err)
	return res.InsertedID
}

func TestRegister(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, &domain.User{Email: "u@x.com", Extra: map[string]any{"name": "U"}})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.NotEmpty(t, res.InsertedID)

	_, err = svc.Register(ctx, &domain.User{Email: "u@x.com", Extra: map[string]any{"name": "Other"}})
	assert.ErrorIs(t, err, service.ErrUserExists)
	assert.Equal(t, 1, store.Users("u@x.com"))

	u, err := svc.FindUserByEmail(ctx, "u@x.com")
	require.NoError(t, err)
	assert.Equal(t, "U", u.Extra["name"])
}

func TestRegister_MissingEmail(t *testing.T) {
	svc, _ := newService(t)
	for _, u := range []*domain.User{nil, {}, {Email: "  "}} {
		_, err := svc.Register(context.Background(), u)
		assert.ErrorIs(t, err, service.ErrMissingParameter)
	}
}

func TestFindUserByEmail_Absent(t *testing.T) {
	svc, _ := newService(t)
	u, err := svc.FindUserByEmail(context.Background(), "ghost@x.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestJoinLeave_Scenario(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.User{Email: "u@x.com"})
	require.NoError(t, err)
	id := createCommunity(t, svc, "a@x.com")

	res, err := svc.JoinCommunity(ctx, id, "u@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	c, err := svc.GetCommunity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"u@x.com"}, c.Members)
	u, _ := svc.ListJoinedCommunities(ctx, "u@x.com")
	assert.Equal(t, []string{id}, u.Communities)

	_, err = svc.JoinCommunity(ctx, id, "u@x.com")
	assert.ErrorIs(t, err, service.ErrAlreadyMember)
	c, _ = svc.GetCommunity(ctx, id)
	assert.Len(t, c.Members, 1)
	u, _ = svc.ListJoinedCommunities(ctx, "u@x.com")
	assert.Len(t, u.Communities, 1)

	_, err = svc.LeaveCommunity(ctx, id, "u@x.com")
	require.NoError(t, err)
	c, _ = svc.GetCommunity(ctx, id)
	assert.Empty(t, c.Members)
	u, _ = svc.ListJoinedCommunities(ctx, "u@x.com")
	assert.Empty(t, u.Communities)

	_, err = svc.LeaveCommunity(ctx, id, "u@x.com")
	assert.ErrorIs(t, err, service.ErrNotAMember)
}

func TestJoin_WithoutUserDocument(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	id := createCommunity(t, svc, "a@x.com")

	_, err := svc.JoinCommunity(ctx, id, "u@x.com")
	require.NoError(t, err)
	c, _ := svc.GetCommunity(ctx, id)
	assert.Equal(t, []string{"u@x.com"}, c.Members)
}

func TestMembership_InputErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	id := createCommunity(t, svc, "a@x.com")
	absent := "64b7f0c2a1b2c3d4e5f60718"

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"join invalid id", func() error { _, err := svc.JoinCommunity(ctx, "nope", "u@x.com"); return err }, service.ErrInvalidIdentifier},
		{"join missing email", func() error { _, err := svc.JoinCommunity(ctx, id, ""); return err }, service.ErrMissingParameter},
		{"join unknown community", func() error { _, err := svc.JoinCommunity(ctx, absent, "u@x.com"); return err }, service.ErrCommunityNotFound},
		{"leave invalid id", func() error { _, err := svc.LeaveCommunity(ctx, "nope", "u@x.com"); return err }, service.ErrInvalidIdentifier},
		{"leave missing email", func() error { _, err := svc.LeaveCommunity(ctx, id, ""); return err }, service.ErrMissingParameter},
		{"leave unknown community", func() error { _, err := svc.LeaveCommunity(ctx, absent, "u@x.com"); return err }, service.ErrNotFound},
		{"get invalid id", func() error { _, err := svc.GetCommunity(ctx, "123"); return err }, service.ErrInvalidIdentifier},
		{"get unknown", func() error { _, err := svc.GetCommunity(ctx, absent); return err }, service.ErrNotFound},
		{"by admin missing", func() error { _, err := svc.ListCommunitiesByAdmin(ctx, ""); return err }, service.ErrMissingParameter},
		{"joined missing", func() error { _, err := svc.ListJoinedCommunities(ctx, ""); return err }, service.ErrMissingParameter},
		{"record unknown user", func() error { _, err := svc.RecordUserCommunity(ctx, id, "ghost@x.com"); return err }, service.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
}

func TestJoin_CompensatesWhenUserWriteFails(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, &domain.User{Email: "u@x.com"})
	require.NoError(t, err)
	id := createCommunity(t, svc, "a@x.com")

	before := promtest.ToFloat64(metrics.MembershipOps.WithLabelValues("join", "compensated"))
	store.ErrAddUserCommunity = errors.New("users collection unavailable")

	_, err = svc.JoinCommunity(ctx, id, "u@x.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAddUserCommunity)

	c, _ := svc.GetCommunity(ctx, id)
	assert.Empty(t, c.Members, "community write must be undone")
	assert.Equal(t, before+1, promtest.ToFloat64(metrics.MembershipOps.WithLabelValues("join", "compensated")))
	assert.Equal(t, 1, store.TxCalls)

	store.ErrAddUserCommunity = nil
	_, err = svc.JoinCommunity(ctx, id, "u@x.com")
	require.NoError(t, err)
}

func TestLeave_CompensatesWhenUserWriteFails(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	id := createCommunity(t, svc, "a@x.com")
	_, err := svc.JoinCommunity(ctx, id, "u@x.com")
	require.NoError(t, err)

	store.ErrRemoveUserCommunity = errors.New("users collection unavailable")
	_, err = svc.LeaveCommunity(ctx, id, "u@x.com")
	require.Error(t, err)

	c, _ := svc.GetCommunity(ctx, id)
	assert.Equal(t, []string{"u@x.com"}, c.Members, "member must be restored")
}

func TestJoin_CompensationFailureIsReported(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	id := createCommunity(t, svc, "a@x.com")

	before := promtest.ToFloat64(metrics.MembershipOps.WithLabelValues("join", "compensation_failed"))
	store.ErrAddUserCommunity = errors.New("users down")
	store.ErrRemoveMember = errors.New("communities down")

	_, err := svc.JoinCommunity(ctx, id, "u@x.com")
	assert.ErrorIs(t, err, store.ErrAddUserCommunity)
	assert.Equal(t, before+1, promtest.ToFloat64(metrics.MembershipOps.WithLabelValues("join", "compensation_failed")))
}

// cancellingStore cancels the request while the user-side write is in
// flight and then behaves like a driver honoring the context.
type cancellingStore struct {
	*testutil.MemStore
	cancel context.CancelFunc
}

func (s cancellingStore) AddUserCommunity(ctx context.Context, _, _ string) (domain.UpdateResult, error) {
	s.cancel()
	return domain.UpdateResult{}, ctx.Err()
}

func (s cancellingStore) RemoveCommunityMember(ctx context.Context, id primitive.ObjectID, email string) (domain.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.UpdateResult{}, err
	}
	return s.MemStore.RemoveCommunityMember(ctx, id, email)
}

func TestJoin_CompensatesAfterRequestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mem := testutil.NewMemStore()
	svc := service.New(cancellingStore{MemStore: mem, cancel: cancel}, zaptest.NewLogger(t))
	id := createCommunity(t, svc, "a@x.com")

	before := promtest.ToFloat64(metrics.MembershipOps.WithLabelValues("join", "compensated"))
	_, err := svc.JoinCommunity(ctx, id, "u@x.com")
	assert.ErrorIs(t, err, context.Canceled)

	c, err := svc.GetCommunity(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, c.Members, "community write must be undone")
	assert.Equal(t, before+1, promtest.ToFloat64(metrics.MembershipOps.WithLabelValues("join", "compensated")))
}

func TestRecordUserCommunity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, &domain.User{Email: "u@x.com"})
	require.NoError(t, err)
	id := createCommunity(t, svc, "a@x.com")

	res, err := svc.RecordUserCommunity(ctx, id, "u@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	_, err = svc.RecordUserCommunity(ctx, id, "u@x.com")
	assert.ErrorIs(t, err, service.ErrAlreadyMember)

	u, _ := svc.FindUserByEmail(ctx, "u@x.com")
	assert.Equal(t, []string{id}, u.Communities)
}

func TestListCommunitiesByAdmin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	createCommunity(t, svc, "a@x.com")
	createCommunity(t, svc, "a@x.com")
	createCommunity(t, svc, "b@x.com")

	got, err := svc.ListCommunitiesByAdmin(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all, err := svc.ListCommunities(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPosts_FilterIsExact(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for _, cid := range []string{"abc", "abc", "abcd", ""} {
		_, err := svc.CreatePost(ctx, &domain.Post{CommunityID: cid})
		require.NoError(t, err)
	}

	got, err := svc.ListPostsByCommunity(ctx, "abc")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "abc", p.CommunityID)
	}

	all, err := svc.ListAllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
