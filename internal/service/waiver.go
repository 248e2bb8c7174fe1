package service

import (
	"context"
	"errors"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/logger"
	"kayakbay-backend/internal/repository"
)

type waiverService struct {
	waiverRepo repository.WaiverRepository
	userRepo   repository.UserRepository
}

func NewWaiverService(waiverRepo repository.WaiverRepository, userRepo repository.UserRepository) WaiverService {
	return &waiverService{waiverRepo: waiverRepo, userRepo: userRepo}
}

// Sign records the liability waiver and flips the user's waiver gate, which
// the rent flow reads as its second guard.
func (s *waiverService) Sign(ctx context.Context, userID int32, signature string) (*domain.Waiver, error) {
	if signature == "" {
		return nil, errors.New("signature is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	waiver := &domain.Waiver{
		UserID:    userID,
		Signature: signature,
	}
	if err := s.waiverRepo.Create(ctx, waiver); err != nil {
		return nil, err
	}

	if !user.WaiverSigned {
		user.WaiverSigned = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	logger.Info("waiver signed", "user_id", userID)
	return waiver, nil
}

func (s *waiverService) Status(ctx context.Context, userID int32) (bool, *domain.Waiver, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, nil, err
	}
	waiver, err := s.waiverRepo.GetByUser(ctx, userID)
	if err != nil {
		return false, nil, err
	}
	return user.WaiverSigned, waiver, nil
}
