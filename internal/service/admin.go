package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/logger"
	"kayakbay-backend/internal/payment"
	"kayakbay-backend/internal/repository"
	"kayakbay-backend/internal/utils"
)

type adminService struct {
	userRepo   repository.UserRepository
	kayakRepo  repository.KayakRepository
	rentalRepo repository.RentalRepository
	authority  payment.Authority
}

func NewAdminService(
	userRepo repository.UserRepository,
	kayakRepo repository.KayakRepository,
	rentalRepo repository.RentalRepository,
	authority payment.Authority,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		kayakRepo:  kayakRepo,
		rentalRepo: rentalRepo,
		authority:  authority,
	}
}

func (s *adminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{}
	var err error

	if stats.TotalRentals, err = s.rentalRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveRentals, err = s.rentalRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalKayaks, err = s.kayakRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.AvailableKayaks, err = s.kayakRepo.CountAvailable(ctx); err != nil {
		return nil, err
	}
	if stats.RecentRentals, err = s.rentalRepo.CountCreatedSince(ctx, time.Now().AddDate(0, 0, -7)); err != nil {
		return nil, err
	}

	// Revenue from the tier table: each rental row is one kayak.
	rentals, err := s.rentalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rt := range rentals {
		duration := int64(rt.RentalEnd.Sub(rt.RentalStart).Seconds())
		stats.TotalRevenueDollars += utils.RentalPriceDollars(duration, 1)
	}
	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.ListAll(ctx)
}

func (s *adminService) ListActiveRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.ListActive(ctx)
}

func (s *adminService) AddKayak(ctx context.Context, kayak *domain.Kayak) error {
	if kayak.Name == "" || kayak.LockID == 0 {
		return errors.New("kayak name and lock id are required")
	}
	kayak.IsAvailable = true
	return s.kayakRepo.Create(ctx, kayak)
}

// SetKayakAvailability bypasses the rental workflow entirely; it exists for
// maintenance pull-out and put-back.
func (s *adminService) SetKayakAvailability(ctx context.Context, kayakID int32, available bool) error {
	if err := s.kayakRepo.SetAvailability(ctx, kayakID, available); err != nil {
		return err
	}
	logger.Info("kayak availability overridden", "kayak_id", kayakID, "available", available)
	return nil
}

// ChargeDamage bills the renter's stored instrument off-session. It is not
// tied to any rental record; the charge lands on the user's profile.
func (s *adminService) ChargeDamage(ctx context.Context, userID int32, amountDollars int64, description string) (string, error) {
	if amountDollars <= 0 {
		return "", errors.New("amount must be positive")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.HasStoredInstrument() {
		return "", domain.ErrNoStoredPaymentMethod
	}

	auth, err := s.authority.ChargeStored(ctx, user.StripeCustomerID, user.DefaultPaymentMethodID, amountDollars, description)
	if err != nil {
		return "", err
	}
	if !auth.Succeeded {
		return "", fmt.Errorf("damage charge not captured: %s", auth.Status)
	}

	logger.Info("damage charge captured", "user_id", userID, "amount_dollars", amountDollars, "intent_id", auth.IntentID)
	return auth.IntentID, nil
}
