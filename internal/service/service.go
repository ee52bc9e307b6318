// Package service implements the community operations on top of the
// repository interfaces. It owns the membership sync between the users and
// communities collections.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/tazhibayda/community-service/internal/domain"
	applog "github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) (domain.InsertResult, error)
	AddUserCommunity(ctx context.Context, email, communityID string) (domain.UpdateResult, error)
	RemoveUserCommunity(ctx context.Context, email, communityID string) (domain.UpdateResult, error)
}

type CommunityRepository interface {
	CreateCommunity(ctx context.Context, c *domain.Community) (domain.InsertResult, error)
	ListCommunities(ctx context.Context) ([]domain.Community, error)
	ListCommunitiesByAdmin(ctx context.Context, email string) ([]domain.Community, error)
	FindCommunityByID(ctx context.Context, id primitive.ObjectID) (*domain.Community, error)
	AddCommunityMember(ctx context.Context, id primitive.ObjectID, email string) (domain.UpdateResult, error)
	RemoveCommunityMember(ctx context.Context, id primitive.ObjectID, email string) (domain.UpdateResult, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, p *domain.Post) (domain.InsertResult, error)
	ListPostsByCommunity(ctx context.Context, communityID string) ([]domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
}

// TxRunner groups several repository writes into one unit of work.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store is everything the service needs; *repo.Store satisfies it.
type Store interface {
	UserRepository
	CommunityRepository
	PostRepository
	TxRunner
}

type Service struct {
	users       UserRepository
	communities CommunityRepository
	posts       PostRepository
	tx          TxRunner
	log         *zap.Logger
}

func New(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:       store,
		communities: store,
		posts:       store,
		tx:          store,
		log:         log,
	}
}

// Register inserts u unless a user with the same email exists, in which case
// it returns ErrUserExists and changes nothing.
func (s *Service) Register(ctx context.Context, u *domain.User) (domain.InsertResult, error) {
	if u == nil || strings.TrimSpace(u.Email) == "" {
		return domain.InsertResult{}, missing("email")
	}
	existing, err := s.users.FindUserByEmail(ctx, u.Email)
	if err != nil {
		return domain.InsertResult{}, err
	}
	if existing != nil {
		return domain.InsertResult{}, ErrUserExists
	}

	res, err := s.users.CreateUser(ctx, u)
	if errors.Is(err, repo.ErrEmailExists) {
		return domain.InsertResult{}, ErrUserExists
	}
	if err != nil {
		return domain.InsertResult{}, err
	}
	s.log.Info("user registered", applog.Email("email_hash", u.Email))
	return res, nil
}

// FindUserByEmail returns nil without error when no user matches.
func (s *Service) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindUserByEmail(ctx, email)
}

// ListJoinedCommunities returns the user document; callers read its
// Communities field.
func (s *Service) ListJoinedCommunities(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, missing("userEmail")
	}
	return s.users.FindUserByEmail(ctx, email)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidIdentifier
	}
	return oid, nil
}
