// Package txn runs a unit of work inside a MongoDB multi-document transaction
// and falls back to plain execution on deployments that cannot run one
// (standalone mongod).
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn in a transaction on db's client. fn may be invoked a second
// time without a session when the server reports that transactions are not
// supported; use Active to tell the two apart.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fallback(ctx, log, err, fn)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fallback(ctx, log, err, fn)
	}
	return err
}

// Active reports whether ctx carries a Mongo session, i.e. fn is running
// inside Run's transaction rather than the fallback path.
func Active(ctx context.Context) bool {
	return mongo.SessionFromContext(ctx) != nil
}

func fallback(ctx context.Context, log *zap.Logger, cause error, fn func(ctx context.Context) error) error {
	if log != nil {
		log.Warn("transactions not supported, running without", zap.Error(cause))
	}
	return fn(ctx)
}

// IsNotSupported reports whether err means the deployment cannot run
// multi-document transactions.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, transaction numbers on standalone, OperationNotSupportedInTransaction
			return true
		}
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 20 || e.Code == 263 {
				return true
			}
		}
	}

	// driver-side refusal, before any command reaches the server
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set")
}
