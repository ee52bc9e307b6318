package repo

import (
	"context"
	"errors"

	"github.com/tazhibayda/community-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func (s *Store) CreateCommunity(ctx context.Context, c *domain.Community) (res domain.InsertResult, err error) {
	span, ctx := startSpan(ctx, "communities", "insertOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	r, err := s.colCommunities.InsertOne(ctx, c)
	if err != nil {
		return res, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: insertedHex(r.InsertedID)}, nil
}

func (s *Store) ListCommunities(ctx context.Context) ([]domain.Community, error) {
	return s.findCommunities(ctx, bson.M{})
}

func (s *Store) ListCommunitiesByAdmin(ctx context.Context, email string) ([]domain.Community, error) {
	return s.findCommunities(ctx, bson.M{"adminEmail": email})
}

func (s *Store) findCommunities(ctx context.Context, filter bson.M) (out []domain.Community, err error) {
	span, ctx := startSpan(ctx, "communities", "find")
	defer func() { span.Finish(tracer.WithError(err)) }()

	cur, err := s.colCommunities.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out = make([]domain.Community, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) FindCommunityByID(ctx context.Context, id primitive.ObjectID) (c *domain.Community, err error) {
	span, ctx := startSpan(ctx, "communities", "findOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	var out domain.Community
	err = s.colCommunities.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddCommunityMember appends email to members only while it is absent, so a
// concurrent duplicate join matches nothing.
func (s *Store) AddCommunityMember(ctx context.Context, id primitive.ObjectID, email string) (res domain.UpdateResult, err error) {
	span, ctx := startSpan(ctx, "communities", "updateOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	r, err := s.colCommunities.UpdateOne(ctx,
		bson.M{"_id": id, "members": bson.M{"$ne": email}},
		bson.M{"$push": bson.M{"members": email}},
	)
	return updateResult(r, err)
}

// RemoveCommunityMember pulls email from members only while it is present.
func (s *Store) RemoveCommunityMember(ctx context.Context, id primitive.ObjectID, email string) (res domain.UpdateResult, err error) {
	span, ctx := startSpan(ctx, "communities", "updateOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	r, err := s.colCommunities.UpdateOne(ctx,
		bson.M{"_id": id, "members": email},
		bson.M{"$pull": bson.M{"members": email}},
	)
	return updateResult(r, err)
}
