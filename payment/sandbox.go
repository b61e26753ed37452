package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Test tokens the sandbox declines, mirroring Stripe's test cards.
var declinedTokens = map[string]bool{
	"pm_card_chargeDeclined": true,
	"tok_chargeDeclined":     true,
}

// SandboxProcessor approves every well-formed charge except the known
// decline tokens. Used when no Stripe key is configured.
type SandboxProcessor struct{}

func NewSandboxProcessor() *SandboxProcessor { return &SandboxProcessor{} }

func (p *SandboxProcessor) Name() string { return "sandbox" }

func (p *SandboxProcessor) Charge(_ context.Context, c Charge) (*Receipt, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if declinedTokens[c.Token] {
		return nil, &Error{Message: "Your card was declined.", Code: "card_declined"}
	}

	r := &Receipt{
		ID:       "pi_sandbox_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Amount:   float64(minorUnits(c.Amount)) / 100,
		Currency: strings.ToUpper(c.Currency),
		Status:   "succeeded",
	}
	logrus.WithFields(logrus.Fields{"receipt": r.ID, "amount": r.Amount, "currency": r.Currency}).Info("Sandbox charge captured")
	return r, nil
}
