package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/lock"
	"kayakbay-backend/internal/payment"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockUserRepo) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockKayakRepo struct{ mock.Mock }

func (m *MockKayakRepo) Create(ctx context.Context, k *domain.Kayak) error {
	return m.Called(ctx, k).Error(0)
}

func (m *MockKayakRepo) GetByID(ctx context.Context, id int32) (*domain.Kayak, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Kayak), args.Error(1)
}

func (m *MockKayakRepo) ListAvailable(ctx context.Context) ([]domain.Kayak, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Kayak), args.Error(1)
}

func (m *MockKayakRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockKayakRepo) CountAvailable(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockKayakRepo) ClaimAvailable(ctx context.Context, limit int32) ([]domain.Kayak, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Kayak), args.Error(1)
}

func (m *MockKayakRepo) Release(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockKayakRepo) SetAvailability(ctx context.Context, id int32, available bool) error {
	return m.Called(ctx, id, available).Error(0)
}

type MockRentalRepo struct{ mock.Mock }

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.Rental) error {
	return m.Called(ctx, rt).Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListAll(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListActive(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) SetPickupPhoto(ctx context.Context, id int32, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *MockRentalRepo) SetReturnPhoto(ctx context.Context, id int32, url string) (bool, error) {
	args := m.Called(ctx, id, url)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepo) MarkReminderSent(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRentalRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockRentalRepo) CountActive(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockRentalRepo) CountCreatedSince(ctx context.Context, since time.Time) (int32, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int32), args.Error(1)
}

type MockWaiverRepo struct{ mock.Mock }

func (m *MockWaiverRepo) Create(ctx context.Context, w *domain.Waiver) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWaiverRepo) GetByUser(ctx context.Context, userID int32) (*domain.Waiver, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Waiver), args.Error(1)
}

type MockPasscodeProvider struct{ mock.Mock }

func (m *MockPasscodeProvider) IssueTimedCode(ctx context.Context, lockID int64, validFrom, validUntil time.Time) lock.Grant {
	args := m.Called(ctx, lockID, validFrom, validUntil)
	return args.Get(0).(lock.Grant)
}

func (m *MockPasscodeProvider) RevokeCode(ctx context.Context, lockID, handle int64) bool {
	return m.Called(ctx, lockID, handle).Bool(0)
}

type MockPaymentAuthority struct{ mock.Mock }

func (m *MockPaymentAuthority) CreateIntent(ctx context.Context, amountDollars int64, receiptEmail, description string) (string, string, error) {
	args := m.Called(ctx, amountDollars, receiptEmail, description)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockPaymentAuthority) VerifyIntent(ctx context.Context, intentID string) (*payment.Authorization, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Authorization), args.Error(1)
}

func (m *MockPaymentAuthority) ChargeStored(ctx context.Context, customerID, paymentMethodID string, amountDollars int64, description string) (*payment.Authorization, error) {
	args := m.Called(ctx, customerID, paymentMethodID, amountDollars, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Authorization), args.Error(1)
}

func (m *MockPaymentAuthority) Refund(ctx context.Context, intentID string) error {
	return m.Called(ctx, intentID).Error(0)
}

func (m *MockPaymentAuthority) EnsureCustomer(ctx context.Context, customerID, email, name string) (string, error) {
	args := m.Called(ctx, customerID, email, name)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentAuthority) AttachInstrument(ctx context.Context, customerID, paymentMethodID string) (*payment.Instrument, error) {
	args := m.Called(ctx, customerID, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Instrument), args.Error(1)
}

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) UploadBase64(ctx context.Context, dataURI string, folder string) (string, error) {
	args := m.Called(ctx, dataURI, folder)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendRentalConfirmation(ctx context.Context, email, name, kayakLabel, passcode string, rentalEnd time.Time, amountDollars int64) error {
	return m.Called(ctx, email, name, kayakLabel, passcode, rentalEnd, amountDollars).Error(0)
}

func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, email, name, kayakName string) error {
	return m.Called(ctx, email, name, kayakName).Error(0)
}

func (m *MockEmailService) SendPasswordReset(ctx context.Context, email, name, resetURL string) error {
	return m.Called(ctx, email, name, resetURL).Error(0)
}

func (m *MockEmailService) SendPasswordResetConfirmation(ctx context.Context, email, name string) error {
	return m.Called(ctx, email, name).Error(0)
}

type MockSMSService struct{ mock.Mock }

func (m *MockSMSService) SendRentalConfirmation(ctx context.Context, phone, kayakLabel, passcode string, rentalEnd time.Time) error {
	return m.Called(ctx, phone, kayakLabel, passcode, rentalEnd).Error(0)
}

func (m *MockSMSService) SendReturnConfirmation(ctx context.Context, phone, kayakName string) error {
	return m.Called(ctx, phone, kayakName).Error(0)
}

func (m *MockSMSService) SendReturnReminder(ctx context.Context, phone, kayakName string, rentalEnd time.Time) error {
	return m.Called(ctx, phone, kayakName, rentalEnd).Error(0)
}
