package domain

import "time"

// Waiver records a signed liability waiver. Signature holds the data URL of
// the signature image captured at signing time.
type Waiver struct {
	ID         int32     `json:"id"`
	UserID     int32     `json:"user_id"`
	Signature  string    `json:"signature"`
	DateSigned time.Time `json:"date_signed"`
}
