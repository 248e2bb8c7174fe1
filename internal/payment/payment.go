package payment

import (
	"context"
	"math"
)

// Authorization is the outcome of charging a customer. Succeeded is false for
// charges that require further customer action (3DS and friends); callers
// treat those the same as declines.
type Authorization struct {
	IntentID    string
	Succeeded   bool
	Status      string
	AmountCents int64
}

// Instrument describes a stored card after it is attached to a customer.
type Instrument struct {
	PaymentMethodID string
	Brand           string
	Last4           string
}

// Authority abstracts the payment processor. All amounts cross this boundary
// in whole dollars; conversion to the processor's minor units happens inside.
type Authority interface {
	// CreateIntent opens a customer-confirmable payment for the given amount.
	// The returned client secret is handed to the frontend for confirmation.
	CreateIntent(ctx context.Context, amountDollars int64, receiptEmail, description string) (intentID, clientSecret string, err error)

	// VerifyIntent reports whether the intent has been successfully captured.
	VerifyIntent(ctx context.Context, intentID string) (*Authorization, error)

	// ChargeStored charges a saved payment method off-session.
	ChargeStored(ctx context.Context, customerID, paymentMethodID string, amountDollars int64, description string) (*Authorization, error)

	// Refund returns the full captured amount of an intent.
	Refund(ctx context.Context, intentID string) error

	// EnsureCustomer returns the processor-side customer ID, creating the
	// customer when customerID is empty.
	EnsureCustomer(ctx context.Context, customerID, email, name string) (string, error)

	// AttachInstrument stores a payment method on a customer and makes it
	// the default for off-session charges.
	AttachInstrument(ctx context.Context, customerID, paymentMethodID string) (*Instrument, error)
}

// DollarsToCents converts a whole-dollar amount to processor minor units.
func DollarsToCents(dollars int64) int64 {
	return dollars * 100
}

// CentsToDollars rounds processor minor units to whole dollars.
func CentsToDollars(cents int64) int64 {
	return int64(math.Round(float64(cents) / 100))
}
