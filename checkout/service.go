package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"private-chef-api/metrics"
	"private-chef-api/models"
	"private-chef-api/notify"
	"private-chef-api/payment"
	"private-chef-api/store"
)

const defaultConfirmation = "Your booking is confirmed."

var ErrChefNotFound = errors.New("chef not found")

// Confirmer writes the personalised confirmation message.
type Confirmer interface {
	GenerateBookingConfirmation(ctx context.Context, chefName, menuName string, guests int, date, at string) (string, error)
}

// Service drives the checkout: selections live in the Registry, bookings
// in the Store.
type Service struct {
	store     *store.Store
	flows     *Registry
	payments  payment.Processor
	confirmer Confirmer
	notifier  notify.Notifier
	metrics   *metrics.Collector
	currency  string
	now       func() time.Time
}

type Option func(*Service)

func WithNotifier(n notify.Notifier) Option { return func(s *Service) { s.notifier = n } }

func WithMetrics(m *metrics.Collector) Option { return func(s *Service) { s.metrics = m } }

func WithCurrency(c string) Option { return func(s *Service) { s.currency = c } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(st *store.Store, payments payment.Processor, confirmer Confirmer, opts ...Option) *Service {
	s := &Service{
		store:     st,
		flows:     NewRegistry(),
		payments:  payments,
		confirmer: confirmer,
		currency:  "GBP",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Flow(userID string) Flow { return s.flows.Get(userID) }

// Land puts a freshly signed-in user on their role's landing view.
func (s *Service) Land(userID string, role models.UserRole) Flow {
	f, _ := s.flows.Update(userID, func(f *Flow) error {
		f.View = LandingView(role)
		return nil
	})
	return f
}

func (s *Service) Navigate(userID string, action Action) (Flow, error) {
	return s.flows.Update(userID, func(f *Flow) error { return f.Go(action) })
}

func (s *Service) Search(userID, location, cuisine string) (Flow, error) {
	return s.flows.Update(userID, func(f *Flow) error { return f.Search(location, cuisine) })
}

func (s *Service) SelectChef(ctx context.Context, userID, chefID string) (Flow, error) {
	chef, ok := s.store.ChefByID(ctx, chefID)
	if !ok {
		return s.flows.Get(userID), fmt.Errorf("%w: %s", ErrChefNotFound, chefID)
	}
	return s.flows.Update(userID, func(f *Flow) error { return f.SelectChef(chef) })
}

func (s *Service) SetDetails(userID, date, at string, guests int) (Flow, error) {
	return s.flows.Update(userID, func(f *Flow) error { return f.SetDetails(date, at, guests) })
}

func (s *Service) BookMenu(userID, menuID string) (Flow, error) {
	return s.flows.Update(userID, func(f *Flow) error { return f.BookMenu(menuID) })
}

func (s *Service) ProceedToPayment(userID string) (Flow, error) {
	return s.flows.Update(userID, func(f *Flow) error { return f.ProceedToPayment() })
}

// Pay charges the selected menu and, on success, finalizes the booking.
// A failed charge leaves the flow on PAYMENT.
func (s *Service) Pay(ctx context.Context, user models.User, token string) (Flow, error) {
	f := s.flows.Get(user.ID)
	if f.View != ViewPayment {
		return f, fmt.Errorf("%w: pay from %s", ErrInvalidAction, f.View)
	}
	if err := f.ready(); err != nil {
		return f, err
	}

	receipt, err := s.payments.Charge(ctx, payment.Charge{
		Amount:      f.Total(),
		Currency:    s.currency,
		Token:       token,
		Description: fmt.Sprintf("%s with Chef %s", f.Menu.Name, f.Chef.Name),
		Metadata:    map[string]string{"user_id": user.ID, "chef_id": f.Chef.ID, "menu_id": f.Menu.ID},
	})
	s.metrics.PaymentAttempt(s.payments.Name(), err)
	if err != nil {
		logrus.WithError(err).WithField("user", user.ID).Warn("Payment declined")
		return f, err
	}
	logrus.WithFields(logrus.Fields{"receipt": receipt.ID, "amount": receipt.Amount}).Info("Payment captured")

	booking, msg, err := s.Finalize(ctx, user, *f.Chef, *f.Menu, f.Date, f.Time, f.Guests)
	if err != nil {
		return f, err
	}

	return s.flows.Update(user.ID, func(f *Flow) error {
		if err := f.fire(ActionPaymentSucceeded); err != nil {
			return err
		}
		f.LastBooking = &booking
		f.Confirmation = msg
		return nil
	})
}

// Finalize writes a CONFIRMED booking and then tries to send the
// confirmation. Nothing after the write can undo it.
func (s *Service) Finalize(ctx context.Context, user models.User, chef models.Chef, menu models.Menu, date, at string, guests int) (models.Booking, string, error) {
	if user.ID == "" || chef.ID == "" || menu.Name == "" || date == "" || at == "" || guests < 1 {
		return models.Booking{}, "", ErrIncompleteBooking
	}

	booking := models.Booking{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		ChefID:     chef.ID,
		ChefName:   chef.Name,
		ChefImage:  chef.ImageURL,
		MenuName:   menu.Name,
		Date:       date,
		Time:       at,
		Guests:     guests,
		TotalPrice: TotalPrice(menu, guests),
		Status:     models.StatusConfirmed,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return models.Booking{}, "", fmt.Errorf("save booking: %w", err)
	}
	s.metrics.BookingCreated(string(booking.Status))
	logrus.WithFields(logrus.Fields{"booking": booking.ID, "chef": chef.ID, "total": booking.TotalPrice}).Info("Booking confirmed")

	msg := s.confirm(ctx, booking)
	return booking, msg, nil
}

func (s *Service) confirm(ctx context.Context, b models.Booking) string {
	msg := defaultConfirmation
	if s.confirmer != nil {
		generated, err := s.confirmer.GenerateBookingConfirmation(ctx, b.ChefName, b.MenuName, b.Guests, b.Date, b.Time)
		if err != nil {
			logrus.WithError(err).WithField("booking", b.ID).Error("AI confirmation generation failed")
		} else {
			msg = generated
		}
	}

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, notify.Event{
			Type:       notify.EventBookingConfirmed,
			Booking:    b,
			Message:    msg,
			OccurredAt: s.now(),
		})
		if err != nil {
			logrus.WithError(err).WithField("booking", b.ID).Error("Booking notification failed")
		}
	}
	return msg
}
