package repository

import (
	"context"
	"time"

	"kayakbay-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int32, error)
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type KayakRepository interface {
	Create(ctx context.Context, kayak *domain.Kayak) error
	GetByID(ctx context.Context, id int32) (*domain.Kayak, error)
	ListAvailable(ctx context.Context) ([]domain.Kayak, error)
	Count(ctx context.Context) (int32, error)
	CountAvailable(ctx context.Context) (int32, error)

	// ClaimAvailable atomically flips up to limit kayaks from available to
	// unavailable and returns the claimed rows. Concurrent callers never
	// claim the same kayak; fewer than limit rows means the pool ran short.
	ClaimAvailable(ctx context.Context, limit int32) ([]domain.Kayak, error)

	// Release marks a kayak available again.
	Release(ctx context.Context, id int32) error

	// SetAvailability is the admin maintenance override.
	SetAvailability(ctx context.Context, id int32, available bool) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error)
	ListAll(ctx context.Context) ([]domain.Rental, error)
	ListActive(ctx context.Context) ([]domain.Rental, error)
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
	SetPickupPhoto(ctx context.Context, id int32, url string) error

	// SetReturnPhoto performs the terminal state transition. It only
	// succeeds while the rental has no return photo; false means another
	// call already returned this rental.
	SetReturnPhoto(ctx context.Context, id int32, url string) (bool, error)

	MarkReminderSent(ctx context.Context, id int32) error
	Count(ctx context.Context) (int32, error)
	CountActive(ctx context.Context) (int32, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int32, error)
}

type WaiverRepository interface {
	Create(ctx context.Context, waiver *domain.Waiver) error
	GetByUser(ctx context.Context, userID int32) (*domain.Waiver, error)
}
