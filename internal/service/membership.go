package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tazhibayda/community-service/internal/domain"
	applog "github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/metrics"
	"github.com/tazhibayda/community-service/internal/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const compensateTimeout = 5 * time.Second

// JoinCommunity adds email to the community's members and the community id
// to the user's communities as one unit of work. Without a transaction a
// failed user-side write is undone on the community side.
func (s *Service) JoinCommunity(ctx context.Context, id, email string) (res domain.UpdateResult, err error) {
	defer func() { observe("join", err) }()

	oid, c, err := s.loadForMembership(ctx, id, email, "userEmail")
	if err != nil {
		return res, err
	}
	if c.HasMember(email) {
		return res, ErrAlreadyMember
	}

	log := s.log.With(zap.String("community_id", oid.Hex()), applog.Email("email_hash", email))
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		r, err := s.communities.AddCommunityMember(ctx, oid, email)
		if err != nil {
			return err
		}
		if r.MatchedCount == 0 {
			return ErrAlreadyMember
		}

		ur, err := s.users.AddUserCommunity(ctx, email, oid.Hex())
		if err != nil {
			if !txn.Active(ctx) {
				s.compensate(ctx, log, "join", func(ctx context.Context) error {
					_, err := s.communities.RemoveCommunityMember(ctx, oid, email)
					return err
				})
			}
			return fmt.Errorf("record community on user: %w", err)
		}
		if ur.MatchedCount == 0 {
			log.Debug("join without user document")
		}
		res = r
		return nil
	})
	return res, err
}

// RecordUserCommunity is the user-side half of a join on its own. It rejects
// an unknown user and a community id the user already lists.
func (s *Service) RecordUserCommunity(ctx context.Context, id, email string) (res domain.UpdateResult, err error) {
	defer func() { observe("record", err) }()

	oid, err := parseID(id)
	if err != nil {
		return res, err
	}
	if email == "" {
		return res, missing("userEmail")
	}
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return res, err
	}
	if u == nil {
		return res, ErrUserNotFound
	}
	if slices.Contains(u.Communities, oid.Hex()) {
		return res, ErrAlreadyMember
	}
	return s.users.AddUserCommunity(ctx, email, oid.Hex())
}

// LeaveCommunity is the inverse of JoinCommunity. The user-side pull is
// best effort: a missing user document is not an error.
func (s *Service) LeaveCommunity(ctx context.Context, id, email string) (res domain.UpdateResult, err error) {
	defer func() { observe("leave", err) }()

	oid, c, err := s.loadForMembership(ctx, id, email, "email")
	if err != nil {
		return res, err
	}
	if !c.HasMember(email) {
		return res, ErrNotAMember
	}

	log := s.log.With(zap.String("community_id", oid.Hex()), applog.Email("email_hash", email))
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		r, err := s.communities.RemoveCommunityMember(ctx, oid, email)
		if err != nil {
			return err
		}
		if r.MatchedCount == 0 {
			return ErrNotAMember
		}

		if _, err := s.users.RemoveUserCommunity(ctx, email, oid.Hex()); err != nil {
			if !txn.Active(ctx) {
				s.compensate(ctx, log, "leave", func(ctx context.Context) error {
					_, err := s.communities.AddCommunityMember(ctx, oid, email)
					return err
				})
			}
			return fmt.Errorf("remove community from user: %w", err)
		}
		res = r
		return nil
	})
	return res, err
}

func (s *Service) loadForMembership(ctx context.Context, id, email, param string) (primitive.ObjectID, *domain.Community, error) {
	oid, err := parseID(id)
	if err != nil {
		return oid, nil, err
	}
	if email == "" {
		return oid, nil, missing(param)
	}
	c, err := s.communities.FindCommunityByID(ctx, oid)
	if err != nil {
		return oid, nil, err
	}
	if c == nil {
		return oid, nil, ErrCommunityNotFound
	}
	return oid, c, nil
}

// compensate runs undo detached from the caller so a cancelled request
// still gets its half-applied write reverted.
func (s *Service) compensate(ctx context.Context, log *zap.Logger, op string, undo func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()
	if err := undo(ctx); err != nil {
		// both sides now disagree; needs manual repair
		log.Error("compensation failed", zap.String("op", op), zap.Error(err))
		metrics.MembershipOps.WithLabelValues(op, "compensation_failed").Inc()
		return
	}
	log.Warn("membership write compensated", zap.String("op", op))
	metrics.MembershipOps.WithLabelValues(op, "compensated").Inc()
}

func observe(op string, err error) {
	metrics.MembershipOps.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAlreadyMember):
		return "already_member"
	case errors.Is(err, ErrNotAMember):
		return "not_member"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMissingParameter), errors.Is(err, ErrInvalidIdentifier):
		return "bad_request"
	}
	return "error"
}
