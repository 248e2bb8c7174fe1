package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Rental is one kayak handed to one renter for a time window.
// PasscodeID is the lock platform's handle for early revocation; 0 means the
// passcode was generated locally (provider outage) and only the time window
// bounds access. A set ReturnPhotoURL is the canonical "returned" marker;
// there is no separate status column.
type Rental struct {
	ID              int32         `json:"id"`
	UserID          int32         `json:"user_id"`
	KayakID         int32         `json:"kayak_id"`
	RentalStart     time.Time     `json:"rental_start"`
	RentalEnd       time.Time     `json:"rental_end"`
	Passcode        string        `json:"passcode"`
	PasscodeID      int64         `json:"passcode_id"`
	PaymentIntentID string        `json:"payment_intent_id"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PickupPhotoURL  string        `json:"pickup_photo_url,omitempty"`
	ReturnPhotoURL  string        `json:"return_photo_url,omitempty"`
	ReminderSent    bool          `json:"-"`
	CreatedOn       time.Time     `json:"created_on"`

	Kayak *Kayak `json:"kayak,omitempty"` // populated by joined queries
	User  *User  `json:"user,omitempty"`  // populated for admin listings
}

// Returned reports whether the rental reached its terminal state.
func (r *Rental) Returned() bool {
	return r.ReturnPhotoURL != ""
}
