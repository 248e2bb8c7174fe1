package domain

import "time"

// Kayak is a physical boat secured by a smart lock. LockID is the opaque
// identifier the lock platform uses for the padlock on this kayak.
type Kayak struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	LockID      int64     `json:"lock_id"`
	IsAvailable bool      `json:"is_available"`
	Location    string    `json:"location"`
	CreatedOn   time.Time `json:"created_on"`
}
