package domain

import "time"

type User struct {
	ID           int32  `json:"id"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone,omitempty"`
	Name         string `json:"name,omitempty"`
	WaiverSigned bool   `json:"waiver_signed"`
	IsAdmin      bool   `json:"is_admin"`

	ResetPasswordToken   string     `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	// Stored payment instrument, captured opportunistically the first time
	// the user saves a card. Required for admin damage charges.
	StripeCustomerID       string `json:"-"`
	DefaultPaymentMethodID string `json:"-"`
	CardLast4              string `json:"card_last4,omitempty"`
	CardBrand              string `json:"card_brand,omitempty"`

	CreatedOn time.Time `json:"created_on"`
}

// HasStoredInstrument reports whether an off-session charge is possible.
func (u *User) HasStoredInstrument() bool {
	return u.StripeCustomerID != "" && u.DefaultPaymentMethodID != ""
}

// DisplayName returns the friendliest available name for notifications.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Username != "" {
		return u.Username
	}
	return "User"
}
