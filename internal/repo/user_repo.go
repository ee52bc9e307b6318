package repo

import (
	"context"
	"errors"

	"github.com/tazhibayda/community-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func (s *Store) FindUserByEmail(ctx context.Context, email string) (u *domain.User, err error) {
	span, ctx := startSpan(ctx, "users", "findOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	var out domain.User
	err = s.colUsers.FindOne(ctx, bson.M{"email": email}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) (res domain.InsertResult, err error) {
	span, ctx := startSpan(ctx, "users", "insertOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	r, err := s.colUsers.InsertOne(ctx, u)
	if IsDup(err) {
		return res, ErrEmailExists
	}
	if err != nil {
		return res, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: insertedHex(r.InsertedID)}, nil
}

// AddUserCommunity records communityID on the user's side. It is a no-op
// (MatchedCount 0) when no user has that email.
func (s *Store) AddUserCommunity(ctx context.Context, email, communityID string) (res domain.UpdateResult, err error) {
	span, ctx := startSpan(ctx, "users", "updateOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	r, err := s.colUsers.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$addToSet": bson.M{"communities": communityID}},
	)
	return updateResult(r, err)
}

func (s *Store) RemoveUserCommunity(ctx context.Context, email, communityID string) (res domain.UpdateResult, err error) {
	span, ctx := startSpan(ctx, "users", "updateOne")
	defer func() { span.Finish(tracer.WithError(err)) }()

	r, err := s.colUsers.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$pull": bson.M{"communities": communityID}},
	)
	return updateResult(r, err)
}

func updateResult(r *mongo.UpdateResult, err error) (domain.UpdateResult, error) {
	if err != nil {
		return domain.UpdateResult{}, err
	}
	return domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  r.MatchedCount,
		ModifiedCount: r.ModifiedCount,
	}, nil
}
