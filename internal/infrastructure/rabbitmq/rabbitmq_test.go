package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/pkg/mailer"
)

type recordingChannel struct {
	mu   sync.Mutex
	msgs []amqp.Publishing
	keys []string
	err  error
}

func (r *recordingChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	r.keys = append(r.keys, key)
	return nil
}

func TestPublishUserRegistered(t *testing.T) {
	ch := &recordingChannel{}
	p := &Publisher{pub: ch, Queue: "emails", AppName: "Users"}
	evt := application.UserRegistered{
		UserID:     "u-1",
		Email:      "ana@example.com",
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, p.PublishUserRegistered(context.Background(), evt))
	require.Len(t, ch.msgs, 1)
	msg := ch.msgs[0]
	assert.Equal(t, "emails", ch.keys[0])
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)

	var job mailer.EmailJob
	require.NoError(t, json.Unmarshal(msg.Body, &job))
	assert.Equal(t, "ana@example.com", job.To)
	assert.Equal(t, "welcome", job.Template)
	assert.Equal(t, "u-1", job.Data["UserID"])
	assert.Equal(t, "Users", job.Data["AppName"])

	_, _, _, err := mailer.Prepare(job)
	assert.NoError(t, err)
}

func TestPublish_WrapsError(t *testing.T) {
	p := &Publisher{pub: &recordingChannel{err: amqp.ErrClosed}, Queue: "emails"}
	err := p.PublishUserRegistered(context.Background(), application.UserRegistered{Email: "a@b.io"})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

type fakeDelivery struct {
	acked, requeued, dropped bool
	err                      error
}

func (f *fakeDelivery) Ack(bool) error {
	f.acked = true
	return f.err
}

func (f *fakeDelivery) Nack(_, requeue bool) error {
	if requeue {
		f.requeued = true
	} else {
		f.dropped = true
	}
	return f.err
}

func TestSettle(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d := &fakeDelivery{}
	settle(d, mailer.Ack, logger)
	assert.True(t, d.acked)

	d = &fakeDelivery{}
	settle(d, mailer.Requeue, logger)
	assert.True(t, d.requeued)

	d = &fakeDelivery{err: errors.New("channel closed")}
	settle(d, mailer.Drop, logger)
	assert.True(t, d.dropped)
}
