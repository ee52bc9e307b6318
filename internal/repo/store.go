package repo

import (
	"context"
	"errors"
	"time"

	"github.com/tazhibayda/community-service/internal/txn"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/ext"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

var ErrEmailExists = errors.New("email already exists")

type Store struct {
	Client         *mongo.Client
	DB             *mongo.Database
	colUsers       *mongo.Collection
	colCommunities *mongo.Collection
	colPosts       *mongo.Collection
	log            *zap.Logger
}

func NewStore(ctx context.Context, uri, dbname string, log *zap.Logger) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, err
	}
	return newStore(cli, cli.Database(dbname), log), nil
}

func newStore(cli *mongo.Client, db *mongo.Database, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		Client:         cli,
		DB:             db,
		colUsers:       db.Collection("users"),
		colCommunities: db.Collection("communities"),
		colPosts:       db.Collection("posts"),
		log:            log,
	}
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

// WithTx runs fn in a multi-document transaction when the deployment supports
// one, otherwise runs it directly.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return txn.Run(ctx, s.DB, s.log, fn)
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.colUsers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return err
	}

	_, err = s.colCommunities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "adminEmail", Value: 1}},
		Options: options.Index().SetName("admin_email"),
	})
	if err != nil {
		return err
	}

	_, err = s.colPosts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "communityID", Value: 1}},
		Options: options.Index().SetName("community_id"),
	})
	return err
}

func IsDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}

func startSpan(ctx context.Context, collection, op string) (ddtrace.Span, context.Context) {
	return tracer.StartSpanFromContext(ctx, "mongodb.query",
		tracer.SpanType(ext.SpanTypeMongoDB),
		tracer.ResourceName(collection+"."+op),
		tracer.Tag(ext.DBSystem, ext.DBSystemMongoDB),
		tracer.Tag("db.collection", collection),
	)
}

func insertedHex(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	}
	return ""
}
