package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"private-chef-api/models"
	"private-chef-api/notify"
	"private-chef-api/statemachine"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("booking belongs to someone else")
	ErrUnknownStatus   = errors.New("unknown booking status")
)

// StatusChange asks to move a booking to a new status. Force skips the
// transition table and is honoured for admins only.
type StatusChange struct {
	BookingID string
	To        models.BookingStatus
	Note      string
	Force     bool
}

// ChangeStatus moves a booking along on behalf of actor. Only the status
// field is rewritten; the change is recorded in the booking history and
// the system log.
func (s *Service) ChangeStatus(ctx context.Context, actor models.User, req StatusChange) (models.Booking, error) {
	if !statemachine.IsKnownStatus(req.To) {
		return models.Booking{}, fmt.Errorf("%w: %s", ErrUnknownStatus, req.To)
	}

	booking, ok := s.store.Bookings.Get(ctx, req.BookingID)
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}

	role := statemachine.ActorFor(actor.Role)
	switch role {
	case statemachine.ActorChef:
		if booking.ChefID != actor.ID {
			return models.Booking{}, ErrForbidden
		}
	case statemachine.ActorDiner:
		if booking.UserID != actor.ID {
			return models.Booking{}, ErrForbidden
		}
	}

	forced := req.Force && role == statemachine.ActorAdmin
	if !forced {
		if err := statemachine.CanTransition(booking.Status, req.To, role); err != nil {
			return models.Booking{}, err
		}
	}

	from := booking.Status
	booking.Status = req.To
	if _, err := s.store.UpdateBooking(ctx, booking); err != nil {
		return models.Booking{}, fmt.Errorf("update booking: %w", err)
	}

	change := models.BookingStatusChange{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		FromStatus: from,
		ToStatus:   req.To,
		ChangedBy:  actor.ID,
		Note:       req.Note,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}
	if forced {
		change.Note = "[override] " + change.Note
	}
	if err := s.store.BookingHistory.Append(ctx, change); err != nil {
		logrus.WithError(err).WithField("booking", booking.ID).Error("Failed to record status history")
	}
	s.store.AddSystemLog(ctx, fmt.Sprintf("Booking %s moved %s → %s by %s", booking.ID, from, req.To, actor.Name))
	s.metrics.StatusChanged(string(req.To), role)

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, notify.Event{
			Type:       notify.EventBookingStatusChanged,
			Booking:    booking,
			Message:    req.Note,
			OccurredAt: s.now(),
		})
		if err != nil {
			logrus.WithError(err).WithField("booking", booking.ID).Warn("Status notification failed")
		}
	}
	return booking, nil
}

// History returns the recorded status changes for one booking, oldest first.
func (s *Service) History(ctx context.Context, bookingID string) []models.BookingStatusChange {
	return s.store.BookingHistory.Filter(ctx, func(h models.BookingStatusChange) bool { return h.BookingID == bookingID })
}
