package repo

import (
	"context"

	"github.com/tazhibayda/community-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func (s *Store) CreatePost(ctx context.Context, p *domain.Post) (res domain.InsertResult, err error) {
	span, ctx := startSpan(ctx, "posts", "insertOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	r, err := s.colPosts.InsertOne(ctx, p)
	if err != nil {
		return res, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: insertedHex(r.InsertedID)}, nil
}

// ListPostsByCommunity matches the stored communityID string exactly.
func (s *Store) ListPostsByCommunity(ctx context.Context, communityID string) ([]domain.Post, error) {
	return s.findPosts(ctx, bson.M{"communityID": communityID})
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.findPosts(ctx, bson.M{})
}

func (s *Store) findPosts(ctx context.Context, filter bson.M) (out []domain.Post, err error) {
	span, ctx := startSpan(ctx, "posts", "find")
	defer func() { span.Finish(tracer.WithError(err)) }()

	cur, err := s.colPosts.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out = make([]domain.Post, 0)
	for cur.Next(ctx) {
		var p domain.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}
