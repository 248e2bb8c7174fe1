package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"kayakbay-backend/internal/logger"
)

// StripeAuthority implements Authority against the Stripe API.
type StripeAuthority struct {
	sc *client.API
}

func NewStripeAuthority(secretKey string) *StripeAuthority {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeAuthority{sc: sc}
}

func (s *StripeAuthority) CreateIntent(ctx context.Context, amountDollars int64, receiptEmail, description string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(DollarsToCents(amountDollars)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if receiptEmail != "" {
		params.ReceiptEmail = stripe.String(receiptEmail)
	}
	if description != "" {
		params.Description = stripe.String(description)
	}

	logger.ExternalServiceCall("stripe", "CreateIntent", "amount_dollars", amountDollars)
	pi, err := s.sc.PaymentIntents.New(params)
	logger.ExternalServiceResult("stripe", "CreateIntent", err)
	if err != nil {
		return "", "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

func (s *StripeAuthority) VerifyIntent(ctx context.Context, intentID string) (*Authorization, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := s.sc.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}
	return &Authorization{
		IntentID:    pi.ID,
		Succeeded:   pi.Status == stripe.PaymentIntentStatusSucceeded,
		Status:      string(pi.Status),
		AmountCents: pi.Amount,
	}, nil
}

func (s *StripeAuthority) ChargeStored(ctx context.Context, customerID, paymentMethodID string, amountDollars int64, description string) (*Authorization, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(DollarsToCents(amountDollars)),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		Customer:      stripe.String(customerID),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}
	params.Context = ctx
	if description != "" {
		params.Description = stripe.String(description)
	}

	logger.ExternalServiceCall("stripe", "ChargeStored", "amount_dollars", amountDollars)
	pi, err := s.sc.PaymentIntents.New(params)
	logger.ExternalServiceResult("stripe", "ChargeStored", err)
	if err != nil {
		return nil, fmt.Errorf("off-session charge: %w", err)
	}
	return &Authorization{
		IntentID:    pi.ID,
		Succeeded:   pi.Status == stripe.PaymentIntentStatusSucceeded,
		Status:      string(pi.Status),
		AmountCents: pi.Amount,
	}, nil
}

func (s *StripeAuthority) Refund(ctx context.Context, intentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}
	params.Context = ctx

	logger.ExternalServiceCall("stripe", "Refund", "intent_id", intentID)
	_, err := s.sc.Refunds.New(params)
	logger.ExternalServiceResult("stripe", "Refund", err, "intent_id", intentID)
	if err != nil {
		return fmt.Errorf("refund payment intent: %w", err)
	}
	return nil
}

func (s *StripeAuthority) EnsureCustomer(ctx context.Context, customerID, email, name string) (string, error) {
	if customerID != "" {
		return customerID, nil
	}
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	if name != "" {
		params.Name = stripe.String(name)
	}

	cust, err := s.sc.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	return cust.ID, nil
}

func (s *StripeAuthority) AttachInstrument(ctx context.Context, customerID, paymentMethodID string) (*Instrument, error) {
	attachParams := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	attachParams.Context = ctx

	pm, err := s.sc.PaymentMethods.Attach(paymentMethodID, attachParams)
	if err != nil {
		return nil, fmt.Errorf("attach payment method: %w", err)
	}

	updateParams := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	updateParams.Context = ctx
	if _, err := s.sc.Customers.Update(customerID, updateParams); err != nil {
		return nil, fmt.Errorf("set default payment method: %w", err)
	}

	inst := &Instrument{PaymentMethodID: pm.ID}
	if pm.Card != nil {
		inst.Brand = string(pm.Card.Brand)
		inst.Last4 = pm.Card.Last4
	}
	return inst, nil
}
