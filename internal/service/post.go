package service

import (
	"context"

	"github.com/tazhibayda/community-service/internal/domain"
)

// CreatePost stores p as sent; CommunityID is not checked against existing
// communities.
func (s *Service) CreatePost(ctx context.Context, p *domain.Post) (domain.InsertResult, error) {
	return s.posts.CreatePost(ctx, p)
}

func (s *Service) ListPostsByCommunity(ctx context.Context, communityID string) ([]domain.Post, error) {
	return s.posts.ListPostsByCommunity(ctx, communityID)
}

func (s *Service) ListAllPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListPosts(ctx)
}
