package domain

import (
	"errors"
	"fmt"
)

// Caller-resolvable errors. Each maps to a specific API response so clients
// can tell "fix your input" from "try again later".
var (
	// ErrUserNotFound is returned when the referenced user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrKayakNotFound is returned when the referenced kayak doesn't exist
	ErrKayakNotFound = errors.New("kayak not found")

	// ErrRentalNotFound is returned when the referenced rental doesn't exist
	ErrRentalNotFound = errors.New("rental not found")

	// ErrWaiverRequired is returned when a renter has not signed the
	// liability waiver; callers redirect to the waiver flow
	ErrWaiverRequired = errors.New("please sign the liability waiver before renting")

	// ErrPaymentRequired is returned when a rent request carries no
	// completed payment reference
	ErrPaymentRequired = errors.New("payment required")

	// ErrAlreadyReturned is returned when a return is attempted on a rental
	// that already has a return photo
	ErrAlreadyReturned = errors.New("kayak has already been returned")

	// ErrNotAuthorized is returned when a caller acts on a rental they do
	// not own
	ErrNotAuthorized = errors.New("not authorized for this rental")

	// ErrPhotoRequired is returned when a return or pickup-photo update is
	// attempted without a photo payload
	ErrPhotoRequired = errors.New("photo is required")

	// ErrNoStoredPaymentMethod is returned when a damage charge targets a
	// user without a saved payment instrument
	ErrNoStoredPaymentMethod = errors.New("user has no saved payment method")

	// ErrInvalidCredentials is returned on failed login
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when signing up with a registered email
	ErrEmailTaken = errors.New("email already registered")

	// ErrResetTokenInvalid is returned for unknown or expired reset tokens
	ErrResetTokenInvalid = errors.New("password reset token is invalid or expired")
)

// InsufficientAvailabilityError reports a rent request that asked for more
// kayaks than the pool could supply at claim time.
type InsufficientAvailabilityError struct {
	Requested int
	Available int
}

func (e *InsufficientAvailabilityError) Error() string {
	return fmt.Sprintf("only %d kayak(s) available, requested %d", e.Available, e.Requested)
}
