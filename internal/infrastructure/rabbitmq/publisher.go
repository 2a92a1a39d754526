package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/pkg/mailer"
	"github.com/oksasatya/go-hexagonal-users/pkg/mailer/templates"
)

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher turns domain events into email jobs on a durable queue.
type Publisher struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	pub     publishChannel
	mu      sync.Mutex
	Queue   string
	AppName string
	Timeout time.Duration
}

// NewPublisher dials url and declares queue as durable.
func NewPublisher(url, queue, appName string) (*Publisher, error) {
	conn, ch, err := open(url, queue)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, pub: ch, Queue: queue, AppName: appName, Timeout: 5 * time.Second}, nil
}

func open(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	return conn, ch, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishUserRegistered enqueues a welcome email for the new user.
func (p *Publisher) PublishUserRegistered(ctx context.Context, evt application.UserRegistered) error {
	return p.PublishJSON(ctx, WelcomeJob(p.AppName, evt))
}

// PublishJSON publishes a persistent JSON message to the queue.
func (p *Publisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.pub.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.Queue, err)
	}
	return nil
}

// WelcomeJob is the email job sent for a UserRegistered event.
func WelcomeJob(appName string, evt application.UserRegistered) mailer.EmailJob {
	return mailer.EmailJob{
		To:       evt.Email,
		Template: templates.Welcome,
		Data:     templates.WelcomeData(appName, evt.Email, evt.UserID, evt.OccurredAt),
	}
}

var _ application.EventPublisher = (*Publisher)(nil)
