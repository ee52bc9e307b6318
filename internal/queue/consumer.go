package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	applog "github.com/tazhibayda/community-service/internal/log"
	"go.uber.org/zap"
)

// ErrPermanent marks a delivery that will never succeed; it is dropped
// instead of requeued.
var ErrPermanent = errors.New("permanent failure")

// HandlerFunc processes one delivery identified by its routing key.
type HandlerFunc func(ctx context.Context, key string, body []byte) error

type Consumer struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	q    string
	log  *zap.Logger
}

func NewConsumer(url, exchange, queue, key string, log *zap.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbit: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	qd, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(qd.Name, key, exchange, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{conn: conn, ch: ch, q: qd.Name, log: log}, nil
}

func (c *Consumer) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Consume runs workers goroutines until ctx is done or the delivery channel
// closes.
func (c *Consumer) Consume(ctx context.Context, workers int, handle HandlerFunc) error {
	if c == nil || c.ch == nil {
		return fmt.Errorf("consumer is not initialized")
	}
	if workers <= 0 {
		workers = 1
	}

	if err := c.ch.Qos(50, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	msgs, err := c.ch.Consume(c.q, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case d, ok := <-msgs:
					if !ok {
						return
					}
					c.dispatch(ctx, d, handle)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	wg.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return errors.New("delivery channel closed")
}

type acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery, handle HandlerFunc) {
	ctx = applog.WithRequestID(ctx, d.CorrelationId)
	settle(ctx, applog.For(ctx, c.log), &d, d.RoutingKey, d.Body, d.Redelivered, handle)
}

// settle acks on success, drops permanent or repeated failures and requeues
// first-time transient failures.
func settle(ctx context.Context, log *zap.Logger, a acker, key string, body []byte, redelivered bool, handle HandlerFunc) {
	err := handle(ctx, key, body)
	switch {
	case err == nil:
		_ = a.Ack(false)
	case errors.Is(err, ErrPermanent) || redelivered:
		log.Warn("dropping message", zap.String("key", key), zap.Error(err))
		_ = a.Nack(false, false)
	default:
		log.Info("requeue message", zap.String("key", key), zap.Error(err))
		_ = a.Nack(false, true)
	}
}
