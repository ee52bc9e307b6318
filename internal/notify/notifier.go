// Package notify turns community events into mail for the people they
// concern.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/metrics"
	"github.com/tazhibayda/community-service/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CommunityLookup interface {
	FindCommunityByID(ctx context.Context, id primitive.ObjectID) (*domain.Community, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Notifier struct {
	communities CommunityLookup
	mail        Mailer
	log         *zap.Logger
}

func New(communities CommunityLookup, mail Mailer, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{communities: communities, mail: mail, log: log}
}

// Handle is a queue.HandlerFunc. Unknown routing keys are acknowledged and
// ignored; undecodable bodies fail with queue.ErrPermanent.
func (n *Notifier) Handle(ctx context.Context, key string, body []byte) (err error) {
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.EventsConsumed.WithLabelValues(key, status).Inc()
	}()

	switch key {
	case queue.KeyUserRegistered:
		var ev queue.UserRegistered
		if err := decode(body, &ev); err != nil {
			return err
		}
		return n.mail.Send(ctx, ev.Email, "Welcome", "Your account is ready. Find a community to join.")

	case queue.KeyCommunityCreated:
		var ev queue.CommunityCreated
		if err := decode(body, &ev); err != nil {
			return err
		}
		if ev.AdminEmail == "" {
			return nil
		}
		return n.mail.Send(ctx, ev.AdminEmail, "Community created",
			fmt.Sprintf("Your community %s is live.", ev.CommunityID))

	case queue.KeyMemberJoined:
		var ev queue.MemberJoined
		if err := decode(body, &ev); err != nil {
			return err
		}
		return n.notifyAdmin(ctx, ev.CommunityID, "Membership update", "A new member joined your community.")

	case queue.KeyMemberLeft:
		var ev queue.MemberLeft
		if err := decode(body, &ev); err != nil {
			return err
		}
		return n.notifyAdmin(ctx, ev.CommunityID, "Membership update", "A member left your community.")

	case queue.KeyPostCreated:
		var ev queue.PostCreated
		if err := decode(body, &ev); err != nil {
			return err
		}
		return n.notifyAdmin(ctx, ev.CommunityID, "New post",
			fmt.Sprintf("Post %s was published in your community.", ev.PostID))
	}

	n.log.Debug("ignoring event", zap.String("key", key))
	return nil
}

// notifyAdmin mails the community's admin. Posts may reference ids that are
// not communities; those are skipped.
func (n *Notifier) notifyAdmin(ctx context.Context, communityID, subject, body string) error {
	oid, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		n.log.Debug("skip notification, not a community id", zap.String("community_id", communityID))
		return nil
	}
	c, err := n.communities.FindCommunityByID(ctx, oid)
	if err != nil {
		return err
	}
	if c == nil || c.AdminEmail == "" {
		return nil
	}
	return n.mail.Send(ctx, c.AdminEmail, subject, body)
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode event: %v: %w", err, queue.ErrPermanent)
	}
	return nil
}
