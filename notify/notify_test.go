package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"private-chef-api/models"
)

type fakeNotifier struct {
	name string
	err  error
	got  []Event
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Notify(_ context.Context, e Event) error {
	f.got = append(f.got, e)
	return f.err
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *fakeChannel) Close() error { return nil }

func sampleEvent() Event {
	return Event{
		Type:       EventBookingConfirmed,
		Booking:    models.Booking{ID: "bk-1", UserID: "u-1", ChefName: "Marco Rossi", TotalPrice: 510},
		OccurredAt: time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
	}
}

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	ok := &fakeNotifier{name: "email"}
	broken := &fakeNotifier{name: "amqp", err: errors.New("connection reset")}
	after := &fakeNotifier{name: "audit"}

	err := NewFanout(nil, ok, broken, after).Notify(context.Background(), sampleEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "amqp: connection reset")
	assert.Len(t, ok.got, 1)
	assert.Len(t, after.got, 1)
}

func TestFanout_NoErrors(t *testing.T) {
	err := NewFanout(nil, NewEmailNotifier()).Notify(context.Background(), sampleEvent())
	assert.NoError(t, err)
}

func TestAMQPPublisher_PublishesJSONOnRoutingKey(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{channel: ch}

	require.NoError(t, p.Notify(context.Background(), sampleEvent()))

	assert.Equal(t, ExchangeName, ch.exchange)
	assert.Equal(t, "booking.confirmed", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "bk-1", ch.msg.MessageId)

	var decoded Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, 510.0, decoded.Booking.TotalPrice)
}

func TestAMQPPublisher_WrapsPublishError(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := &AMQPPublisher{channel: ch}

	err := p.Notify(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, amqp.ErrClosed)
}
