package service

import (
	"context"
	"time"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/payment"
)

// RentRequest carries everything needed to open a rental. PickupPhoto is an
// optional base64 data URI documenting kayak condition at hand-off; one photo
// covers the whole batch.
type RentRequest struct {
	UserID          int32
	Quantity        int32
	DurationSeconds int64
	PaymentIntentID string
	PickupPhoto     string
}

// RentedKayak is the per-kayak slice of a successful rental batch.
type RentedKayak struct {
	RentalID      int32     `json:"rental_id"`
	Passcode      string    `json:"passcode"`
	KayakName     string    `json:"kayak_name"`
	KayakLocation string    `json:"kayak_location"`
	RentalEnd     time.Time `json:"rental_end"`
}

type RentResult struct {
	Kayaks        []RentedKayak `json:"kayaks"`
	RentalEnd     time.Time     `json:"rental_end"`
	AmountDollars int64         `json:"amount_dollars"`
}

type RentalService interface {
	Rent(ctx context.Context, req RentRequest) (*RentResult, error)
	Return(ctx context.Context, callerID int32, isAdmin bool, rentalID int32, returnPhoto string) (*domain.Rental, error)
	UpdatePickupPhoto(ctx context.Context, callerID, rentalID int32, photo string) (*domain.Rental, error)
	History(ctx context.Context, userID int32) ([]domain.Rental, error)
	AvailableKayaks(ctx context.Context) ([]domain.Kayak, error)
}

type AuthService interface {
	Signup(ctx context.Context, username, email, password, phone, name string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type WaiverService interface {
	Sign(ctx context.Context, userID int32, signature string) (*domain.Waiver, error)
	Status(ctx context.Context, userID int32) (bool, *domain.Waiver, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, userID int32, amountDollars int64, description string) (intentID, clientSecret string, err error)
	IntentStatus(ctx context.Context, intentID string) (*payment.Authorization, error)
	SavePaymentMethod(ctx context.Context, userID int32, paymentMethodID string) (*domain.User, error)
}

type AdminService interface {
	Stats(ctx context.Context) (*domain.AdminStats, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	ListActiveRentals(ctx context.Context) ([]domain.Rental, error)
	AddKayak(ctx context.Context, kayak *domain.Kayak) error
	SetKayakAvailability(ctx context.Context, kayakID int32, available bool) error
	ChargeDamage(ctx context.Context, userID int32, amountDollars int64, description string) (string, error)
}

type EmailService interface {
	SendRentalConfirmation(ctx context.Context, email, name, kayakLabel, passcode string, rentalEnd time.Time, amountDollars int64) error
	SendReturnConfirmation(ctx context.Context, email, name, kayakName string) error
	SendPasswordReset(ctx context.Context, email, name, resetURL string) error
	SendPasswordResetConfirmation(ctx context.Context, email, name string) error
}

type SMSService interface {
	SendRentalConfirmation(ctx context.Context, phone, kayakLabel, passcode string, rentalEnd time.Time) error
	SendReturnConfirmation(ctx context.Context, phone, kayakName string) error
	SendReturnReminder(ctx context.Context, phone, kayakName string, rentalEnd time.Time) error
}
