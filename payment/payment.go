package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Charge is one card payment for a booking.
type Charge struct {
	Amount      float64 // major units, e.g. pounds
	Currency    string
	Token       string // payment method id or card token
	Description string
	Metadata    map[string]string
}

// Receipt confirms a captured payment.
type Receipt struct {
	ID       string
	Amount   float64
	Currency string
	Status   string
}

// Processor charges cards. Implementations do not retry.
type Processor interface {
	Name() string
	Charge(ctx context.Context, c Charge) (*Receipt, error)
}

// Error is a declined or failed payment. Message is safe to show the payer.
type Error struct {
	Message string
	Code    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment failed: %s: %v", e.Message, e.Err)
	}
	return "payment failed: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage extracts the payer-facing text from any charge error.
func UserMessage(err error) string {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return "Payment could not be processed. Please try again."
}

var ErrInvalidAmount = errors.New("charge amount must be positive")

func (c Charge) validate() error {
	if c.Amount <= 0 || math.IsNaN(c.Amount) {
		return &Error{Message: "Invalid payment amount.", Code: "invalid_amount", Err: ErrInvalidAmount}
	}
	if strings.TrimSpace(c.Token) == "" {
		return &Error{Message: "Please provide card details.", Code: "missing_payment_method"}
	}
	return nil
}

// minorUnits converts 85.5 GBP into 8550 pence.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
