package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"private-chef-api/metrics"
	"private-chef-api/models"
)

// Event types double as AMQP routing keys.
const (
	EventBookingConfirmed     = "booking.confirmed"
	EventBookingStatusChanged = "booking.status_changed"
)

type Event struct {
	Type       string         `json:"type"`
	Booking    models.Booking `json:"booking"`
	Message    string         `json:"message,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// Notifier delivers booking events to one channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, e Event) error
}

// Fanout sends an event to every notifier, keeps going past failures and
// reports them together.
type Fanout struct {
	notifiers []Notifier
	metrics   *metrics.Collector
}

func NewFanout(m *metrics.Collector, notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers, metrics: m}
}

func (f *Fanout) Name() string { return "fanout" }

func (f *Fanout) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, e); err != nil {
			f.metrics.NotifyFailed(n.Name())
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// EmailNotifier stands in for a transactional mail provider and only logs.
type EmailNotifier struct {
	log *logrus.Entry
}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{log: logrus.WithField("notifier", "email")}
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Notify(_ context.Context, e Event) error {
	n.log.WithFields(logrus.Fields{
		"event":   e.Type,
		"booking": e.Booking.ID,
		"user":    e.Booking.UserID,
		"chef":    e.Booking.ChefName,
	}).Info("Email dispatched")
	return nil
}
