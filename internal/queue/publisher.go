package queue

import "context"

// Publisher announces community events. reqID ties the message to the HTTP
// request that caused it.
type Publisher interface {
	Publish(ctx context.Context, ev Event, reqID string) error
	Close() error
}

// NoopPub is used when RABBIT_URL is not configured.
type NoopPub struct{}

func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(context.Context, Event, string) error { return nil }
func (NoopPub) Close() error                                 { return nil }
