package service

import (
	"context"

	"github.com/tazhibayda/community-service/internal/domain"
)

func (s *Service) CreateCommunity(ctx context.Context, c *domain.Community) (domain.InsertResult, error) {
	return s.communities.CreateCommunity(ctx, c)
}

func (s *Service) ListCommunities(ctx context.Context) ([]domain.Community, error) {
	return s.communities.ListCommunities(ctx)
}

func (s *Service) GetCommunity(ctx context.Context, id string) (*domain.Community, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	c, err := s.communities.FindCommunityByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCommunityNotFound
	}
	return c, nil
}

func (s *Service) ListCommunitiesByAdmin(ctx context.Context, email string) ([]domain.Community, error) {
	if email == "" {
		return nil, missing("userEmail")
	}
	return s.communities.ListCommunitiesByAdmin(ctx, email)
}
