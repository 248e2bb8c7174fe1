package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/lock"
	"kayakbay-backend/internal/logger"
	"kayakbay-backend/internal/payment"
	"kayakbay-backend/internal/repository"
	"kayakbay-backend/internal/storage"
	"kayakbay-backend/internal/utils"
)

type rentalService struct {
	rentalRepo repository.RentalRepository
	kayakRepo  repository.KayakRepository
	userRepo   repository.UserRepository
	locks      lock.PasscodeProvider
	payments   payment.Authority
	images     storage.ImageStore
	emailSvc   EmailService
	smsSvc     SMSService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	kayakRepo repository.KayakRepository,
	userRepo repository.UserRepository,
	locks lock.PasscodeProvider,
	payments payment.Authority,
	images storage.ImageStore,
	emailSvc EmailService,
	smsSvc SMSService,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		kayakRepo:  kayakRepo,
		userRepo:   userRepo,
		locks:      locks,
		payments:   payments,
		images:     images,
		emailSvc:   emailSvc,
		smsSvc:     smsSvc,
	}
}

// Rent opens a batch of rentals. Guards run in a fixed order: user, waiver,
// payment reference, availability. The kayak claim is a single conditional
// update, so two concurrent requests can never allocate the same kayak.
func (s *rentalService) Rent(ctx context.Context, req RentRequest) (*RentResult, error) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.WaiverSigned {
		return nil, domain.ErrWaiverRequired
	}
	if req.PaymentIntentID == "" {
		return nil, domain.ErrPaymentRequired
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if req.DurationSeconds <= 0 {
		return nil, errors.New("rental duration must be positive")
	}

	available, err := s.kayakRepo.CountAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if available < quantity {
		return nil, &domain.InsufficientAvailabilityError{Requested: int(quantity), Available: int(available)}
	}

	rentalStart := time.Now()
	rentalEnd := rentalStart.Add(time.Duration(req.DurationSeconds) * time.Second)

	// One pickup photo documents the condition of the whole batch.
	pickupURL := ""
	if req.PickupPhoto != "" {
		pickupURL, err = s.images.UploadBase64(ctx, req.PickupPhoto, "pickups")
		if err != nil {
			return nil, fmt.Errorf("upload pickup photo: %w", err)
		}
	}

	claimed, err := s.kayakRepo.ClaimAvailable(ctx, quantity)
	if err != nil {
		return nil, err
	}
	if int32(len(claimed)) < quantity {
		// Another request raced us to part of the pool. Give back what we
		// took and report the shortfall.
		s.releaseAll(ctx, claimed)
		return nil, &domain.InsufficientAvailabilityError{Requested: int(quantity), Available: len(claimed)}
	}

	results := make([]RentedKayak, 0, len(claimed))
	for i, kayak := range claimed {
		// A lock-provider failure for one kayak must not abort the others;
		// IssueTimedCode degrades to a fallback code on its own.
		grant := s.locks.IssueTimedCode(ctx, kayak.LockID, rentalStart, rentalEnd)

		rental := &domain.Rental{
			UserID:          req.UserID,
			KayakID:         kayak.ID,
			RentalStart:     rentalStart,
			RentalEnd:       rentalEnd,
			Passcode:        grant.Code,
			PasscodeID:      grant.Handle,
			PaymentIntentID: req.PaymentIntentID,
			PaymentStatus:   domain.PaymentStatusSucceeded,
			PickupPhotoURL:  pickupURL,
		}
		if err := s.rentalRepo.Create(ctx, rental); err != nil {
			// Rentals persisted so far stand; kayaks without a rental row go
			// back to the pool.
			s.releaseAll(ctx, claimed[i:])
			if len(results) > 0 {
				logger.Error("rental batch persisted partially",
					"user_id", req.UserID, "persisted", len(results), "requested", quantity, "error", err)
			}
			return nil, fmt.Errorf("persist rental: %w", err)
		}

		results = append(results, RentedKayak{
			RentalID:      rental.ID,
			Passcode:      rental.Passcode,
			KayakName:     kayak.Name,
			KayakLocation: kayak.Location,
			RentalEnd:     rentalEnd,
		})
	}

	amount := s.resolveAmount(ctx, req.PaymentIntentID, req.DurationSeconds, quantity)

	kayakLabel := results[0].KayakName
	if len(results) > 1 {
		kayakLabel = fmt.Sprintf("%d kayaks", len(results))
	}
	_ = s.emailSvc.SendRentalConfirmation(ctx, user.Email, user.DisplayName(), kayakLabel, results[0].Passcode, rentalEnd, amount)
	if user.Phone != "" {
		_ = s.smsSvc.SendRentalConfirmation(ctx, user.Phone, kayakLabel, results[0].Passcode, rentalEnd)
	}

	return &RentResult{Kayaks: results, RentalEnd: rentalEnd, AmountDollars: amount}, nil
}

// resolveAmount prefers the amount actually captured on the payment intent;
// when the lookup fails it falls back to the tier table.
func (s *rentalService) resolveAmount(ctx context.Context, intentID string, durationSeconds int64, quantity int32) int64 {
	auth, err := s.payments.VerifyIntent(ctx, intentID)
	if err != nil {
		logger.Warn("payment intent lookup failed, pricing from tier table", "intent_id", intentID, "error", err)
		return utils.RentalPriceDollars(durationSeconds, quantity)
	}
	expected := utils.RentalPriceDollars(durationSeconds, quantity)
	charged := payment.CentsToDollars(auth.AmountCents)
	if charged != expected {
		logger.Warn("charged amount differs from tier price",
			"intent_id", intentID, "charged_dollars", charged, "tier_dollars", expected)
	}
	return charged
}

func (s *rentalService) releaseAll(ctx context.Context, kayaks []domain.Kayak) {
	for _, k := range kayaks {
		if err := s.kayakRepo.Release(ctx, k.ID); err != nil {
			logger.Error("failed to release claimed kayak", "kayak_id", k.ID, "error", err)
		}
	}
}

// Return closes a rental. Persisting the return photo URL is the terminal
// state transition; passcode revocation and notifications are best-effort
// afterwards, since the grant's own time window is the authoritative access
// boundary.
func (s *rentalService) Return(ctx context.Context, callerID int32, isAdmin bool, rentalID int32, returnPhoto string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Returned() {
		return nil, domain.ErrAlreadyReturned
	}
	if !isAdmin && rt.UserID != callerID {
		return nil, domain.ErrNotAuthorized
	}
	if returnPhoto == "" {
		return nil, domain.ErrPhotoRequired
	}

	url, err := s.images.UploadBase64(ctx, returnPhoto, "returns")
	if err != nil {
		return nil, fmt.Errorf("upload return photo: %w", err)
	}

	ok, err := s.rentalRepo.SetReturnPhoto(ctx, rentalID, url)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent return won; its photo stands.
		return nil, domain.ErrAlreadyReturned
	}
	rt.ReturnPhotoURL = url

	s.reconcilePasscode(ctx, rt)

	if err := s.kayakRepo.Release(ctx, rt.KayakID); err != nil {
		return nil, fmt.Errorf("release kayak: %w", err)
	}

	s.notifyReturn(ctx, rt)
	return rt, nil
}

// reconcilePasscode revokes the keypad code when that is still worthwhile.
// Past rentalEnd the grant has already self-expired server-side; unmanaged
// grants (handle 0) have nothing to revoke.
func (s *rentalService) reconcilePasscode(ctx context.Context, rt *domain.Rental) {
	if !time.Now().Before(rt.RentalEnd) || rt.PasscodeID <= 0 {
		return
	}
	kayak, err := s.kayakRepo.GetByID(ctx, rt.KayakID)
	if err != nil {
		logger.Warn("passcode revocation skipped, kayak lookup failed", "rental_id", rt.ID, "error", err)
		return
	}
	if !s.locks.RevokeCode(ctx, kayak.LockID, rt.PasscodeID) {
		logger.Warn("passcode not revoked, grant will self-expire",
			"rental_id", rt.ID, "lock_id", kayak.LockID, "rental_end", rt.RentalEnd)
	}
}

func (s *rentalService) notifyReturn(ctx context.Context, rt *domain.Rental) {
	user, err := s.userRepo.GetByID(ctx, rt.UserID)
	if err != nil {
		logger.Warn("return confirmation skipped, user lookup failed", "rental_id", rt.ID, "error", err)
		return
	}
	kayakName := fmt.Sprintf("kayak #%d", rt.KayakID)
	if kayak, err := s.kayakRepo.GetByID(ctx, rt.KayakID); err == nil {
		kayakName = kayak.Name
	}
	_ = s.emailSvc.SendReturnConfirmation(ctx, user.Email, user.DisplayName(), kayakName)
	if user.Phone != "" {
		_ = s.smsSvc.SendReturnConfirmation(ctx, user.Phone, kayakName)
	}
}

// UpdatePickupPhoto lets the owning renter attach or replace the pre-use
// condition photo before return. It never touches availability or passcode
// state.
func (s *rentalService) UpdatePickupPhoto(ctx context.Context, callerID, rentalID int32, photo string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != callerID {
		return nil, domain.ErrNotAuthorized
	}
	if rt.Returned() {
		return nil, domain.ErrAlreadyReturned
	}
	if photo == "" {
		return nil, domain.ErrPhotoRequired
	}

	url, err := s.images.UploadBase64(ctx, photo, "pickups")
	if err != nil {
		return nil, fmt.Errorf("upload pickup photo: %w", err)
	}
	if err := s.rentalRepo.SetPickupPhoto(ctx, rentalID, url); err != nil {
		return nil, err
	}
	rt.PickupPhotoURL = url
	return rt, nil
}

func (s *rentalService) History(ctx context.Context, userID int32) ([]domain.Rental, error) {
	return s.rentalRepo.ListByUser(ctx, userID)
}

func (s *rentalService) AvailableKayaks(ctx context.Context) ([]domain.Kayak, error) {
	return s.kayakRepo.ListAvailable(ctx)
}
