package service

import (
	"context"
	"fmt"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/payment"
	"kayakbay-backend/internal/repository"
)

type paymentService struct {
	userRepo  repository.UserRepository
	authority payment.Authority
}

func NewPaymentService(userRepo repository.UserRepository, authority payment.Authority) PaymentService {
	return &paymentService{userRepo: userRepo, authority: authority}
}

func (s *paymentService) CreateIntent(ctx context.Context, userID int32, amountDollars int64, description string) (string, string, error) {
	if amountDollars <= 0 {
		return "", "", fmt.Errorf("amount must be positive")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return s.authority.CreateIntent(ctx, amountDollars, user.Email, description)
}

func (s *paymentService) IntentStatus(ctx context.Context, intentID string) (*payment.Authorization, error) {
	return s.authority.VerifyIntent(ctx, intentID)
}

// SavePaymentMethod stores a reusable instrument on the user's profile; the
// damage-charge flow bills against it off-session later.
func (s *paymentService) SavePaymentMethod(ctx context.Context, userID int32, paymentMethodID string) (*domain.User, error) {
	if paymentMethodID == "" {
		return nil, fmt.Errorf("payment method id is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	customerID, err := s.authority.EnsureCustomer(ctx, user.StripeCustomerID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	inst, err := s.authority.AttachInstrument(ctx, customerID, paymentMethodID)
	if err != nil {
		return nil, err
	}

	user.StripeCustomerID = customerID
	user.DefaultPaymentMethodID = inst.PaymentMethodID
	user.CardBrand = inst.Brand
	user.CardLast4 = inst.Last4
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
