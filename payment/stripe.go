package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProcessor confirms a PaymentIntent in one call.
type StripeProcessor struct {
	api *client.API
}

func NewStripeProcessor(secretKey string) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{api: api}
}

func (p *StripeProcessor) Name() string { return "stripe" }

func (p *StripeProcessor) Charge(ctx context.Context, c Charge) (*Receipt, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(minorUnits(c.Amount)),
		Currency:      stripe.String(strings.ToLower(c.Currency)),
		PaymentMethod: stripe.String(c.Token),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if c.Description != "" {
		params.Description = stripe.String(c.Description)
	}
	for k, v := range c.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) {
			msg := serr.Msg
			if msg == "" {
				msg = "Your card was declined."
			}
			return nil, &Error{Message: msg, Code: string(serr.Code), Err: err}
		}
		return nil, &Error{Message: "Payment could not be processed. Please try again.", Err: err}
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		logrus.WithFields(logrus.Fields{"intent": pi.ID, "status": pi.Status}).Warn("PaymentIntent not settled")
		return nil, &Error{Message: "Payment requires additional authentication.", Code: string(pi.Status)}
	}

	return &Receipt{
		ID:       pi.ID,
		Amount:   float64(pi.Amount) / 100,
		Currency: strings.ToUpper(string(pi.Currency)),
		Status:   string(pi.Status),
	}, nil
}
