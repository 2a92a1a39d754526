package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/pkg/mailer"
)

// Handler decides the fate of one delivery body.
type Handler interface {
	Handle(ctx context.Context, body []byte) mailer.Outcome
}

type acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Consumer reads a durable queue with manual acks.
type Consumer struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *logrus.Logger
}

func NewConsumer(url, queue string, prefetch int, logger *logrus.Logger) (*Consumer, error) {
	conn, ch, err := open(url, queue)
	if err != nil {
		return nil, err
	}
	// Prefetch for fair dispatch
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("qos: %w", err)
	}
	return &Consumer{conn: conn, ch: ch, queue: queue, logger: logger}, nil
}

// Run consumes until ctx is done or the channel closes.
func (c *Consumer) Run(ctx context.Context, h Handler) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	c.logger.WithField("queue", c.queue).Info("consumer started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("consume %s: delivery channel closed", c.queue)
			}
			settle(&msg, h.Handle(ctx, msg.Body), c.logger)
		}
	}
}

func settle(msg acker, outcome mailer.Outcome, logger *logrus.Logger) {
	var err error
	switch outcome {
	case mailer.Ack:
		err = msg.Ack(false)
	case mailer.Requeue:
		err = msg.Nack(false, true)
	default:
		err = msg.Nack(false, false)
	}
	if err != nil {
		logger.WithError(err).WithField("outcome", outcome.String()).Warn("settle delivery failed")
	}
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
