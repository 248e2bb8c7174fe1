package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/payment"
)

func newAdminService(t *testing.T) (AdminService, *MockUserRepo, *MockKayakRepo, *MockRentalRepo, *MockPaymentAuthority) {
	t.Helper()
	users := &MockUserRepo{}
	kayaks := &MockKayakRepo{}
	rentals := &MockRentalRepo{}
	pay := &MockPaymentAuthority{}
	return NewAdminService(users, kayaks, rentals, pay), users, kayaks, rentals, pay
}

func TestChargeDamage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, users, _, _, pay := newAdminService(t)
		users.On("GetByID", ctx, int32(7)).Return(&domain.User{
			ID: 7, StripeCustomerID: "cus_1", DefaultPaymentMethodID: "pm_1",
		}, nil)
		pay.On("ChargeStored", ctx, "cus_1", "pm_1", int64(75), "Cracked hull").
			Return(&payment.Authorization{IntentID: "pi_dmg", Succeeded: true, Status: "succeeded"}, nil)

		intentID, err := svc.ChargeDamage(ctx, 7, 75, "Cracked hull")
		require.NoError(t, err)
		assert.Equal(t, "pi_dmg", intentID)
	})

	t.Run("NoStoredPaymentMethod", func(t *testing.T) {
		svc, users, _, _, pay := newAdminService(t)
		users.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7}, nil)

		_, err := svc.ChargeDamage(ctx, 7, 75, "Cracked hull")
		assert.ErrorIs(t, err, domain.ErrNoStoredPaymentMethod)
		pay.AssertNotCalled(t, "ChargeStored", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DeclinedCharge", func(t *testing.T) {
		svc, users, _, _, pay := newAdminService(t)
		users.On("GetByID", ctx, int32(7)).Return(&domain.User{
			ID: 7, StripeCustomerID: "cus_1", DefaultPaymentMethodID: "pm_1",
		}, nil)
		pay.On("ChargeStored", ctx, "cus_1", "pm_1", int64(75), "Cracked hull").
			Return(&payment.Authorization{IntentID: "pi_dmg", Succeeded: false, Status: "requires_payment_method"}, nil)

		_, err := svc.ChargeDamage(ctx, 7, 75, "Cracked hull")
		assert.ErrorContains(t, err, "requires_payment_method")
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		svc, _, _, _, _ := newAdminService(t)
		_, err := svc.ChargeDamage(ctx, 7, 0, "nothing")
		assert.Error(t, err)
	})
}

func TestAdminStats(t *testing.T) {
	ctx := context.Background()
	svc, users, kayaks, rentals, _ := newAdminService(t)

	now := time.Now()
	rentals.On("Count", ctx).Return(int32(3), nil)
	rentals.On("CountActive", ctx).Return(int32(1), nil)
	users.On("Count", ctx).Return(int32(10), nil)
	kayaks.On("Count", ctx).Return(int32(4), nil)
	kayaks.On("CountAvailable", ctx).Return(int32(3), nil)
	rentals.On("CountCreatedSince", ctx, mock.Anything).Return(int32(2), nil)
	rentals.On("ListAll", ctx).Return([]domain.Rental{
		{RentalStart: now, RentalEnd: now.Add(time.Hour)},      // $10
		{RentalStart: now, RentalEnd: now.Add(2 * time.Hour)},  // $18
		{RentalStart: now, RentalEnd: now.Add(3 * time.Hour)},  // off-tier, $30
	}, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(3), stats.TotalRentals)
	assert.Equal(t, int32(1), stats.ActiveRentals)
	assert.Equal(t, int32(10), stats.TotalUsers)
	assert.Equal(t, int32(4), stats.TotalKayaks)
	assert.Equal(t, int32(3), stats.AvailableKayaks)
	assert.Equal(t, int32(2), stats.RecentRentals)
	assert.Equal(t, int64(58), stats.TotalRevenueDollars)
}

func TestSetKayakAvailability(t *testing.T) {
	ctx := context.Background()
	svc, _, kayaks, _, _ := newAdminService(t)
	kayaks.On("SetAvailability", ctx, int32(3), false).Return(nil)

	assert.NoError(t, svc.SetKayakAvailability(ctx, 3, false))
	kayaks.AssertExpectations(t)
}

func TestAddKayak(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, kayaks, _, _ := newAdminService(t)
		kayaks.On("Create", ctx, mock.Anything).Return(nil)

		kayak := &domain.Kayak{Name: "Blue Heron", LockID: 9100, Location: "Dock A"}
		require.NoError(t, svc.AddKayak(ctx, kayak))
		assert.True(t, kayak.IsAvailable)
	})

	t.Run("MissingLockID", func(t *testing.T) {
		svc, _, kayaks, _, _ := newAdminService(t)
		assert.Error(t, svc.AddKayak(ctx, &domain.Kayak{Name: "No Lock"}))
		kayaks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
