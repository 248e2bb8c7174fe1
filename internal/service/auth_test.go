package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/security"
)

func newAuthService(t *testing.T) (AuthService, *MockUserRepo, *MockEmailService) {
	t.Helper()
	users := &MockUserRepo{}
	email := &MockEmailService{}
	tokens := security.NewTokenManager("test-secret", 60)
	return NewAuthService(users, tokens, email, "https://kayakbay.test"), users, email
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByEmail", ctx, "new@test.com").Return(nil, domain.ErrUserNotFound)
		users.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 12
		}).Return(nil)

		user, token, err := svc.Signup(ctx, "newbie", "new@test.com", "hunter22", "", "New Person")
		require.NoError(t, err)
		assert.Equal(t, int32(12), user.ID)
		assert.NotEmpty(t, token)
		// Password is stored hashed, never in the clear.
		assert.NotEqual(t, "hunter22", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
	})

	t.Run("EmailTaken", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByEmail", ctx, "dupe@test.com").Return(&domain.User{ID: 1}, nil)

		_, _, err := svc.Signup(ctx, "dupe", "dupe@test.com", "pw123456", "", "")
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)

	t.Run("Success", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByEmail", ctx, "renter@test.com").
			Return(&domain.User{ID: 7, Email: "renter@test.com", PasswordHash: string(hash)}, nil)

		user, token, err := svc.Login(ctx, "renter@test.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, int32(7), user.ID)

		claims, err := security.NewTokenManager("test-secret", 60).ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int32(7), claims.UserID)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByEmail", ctx, "renter@test.com").
			Return(&domain.User{ID: 7, PasswordHash: string(hash)}, nil)

		_, _, err := svc.Login(ctx, "renter@test.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("UnknownEmailMapsToInvalidCredentials", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByEmail", ctx, "ghost@test.com").Return(nil, domain.ErrUserNotFound)

		_, _, err := svc.Login(ctx, "ghost@test.com", "anything")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestStoresTokenAndEmailsLink", func(t *testing.T) {
		svc, users, email := newAuthService(t)
		user := &domain.User{ID: 7, Email: "renter@test.com", Name: "Robin"}
		users.On("GetByEmail", ctx, "renter@test.com").Return(user, nil)
		users.On("Update", ctx, user).Return(nil)
		email.On("SendPasswordReset", ctx, "renter@test.com", "Robin",
			mock.MatchedBy(func(url string) bool {
				return len(url) > len("https://kayakbay.test/reset-password/")
			})).Return(nil)

		require.NoError(t, svc.RequestPasswordReset(ctx, "renter@test.com"))
		assert.NotEmpty(t, user.ResetPasswordToken)
		require.NotNil(t, user.ResetPasswordExpires)
		assert.True(t, user.ResetPasswordExpires.After(time.Now()))
		email.AssertExpectations(t)
	})

	t.Run("UnknownEmailIsSilent", func(t *testing.T) {
		svc, users, email := newAuthService(t)
		users.On("GetByEmail", ctx, "ghost@test.com").Return(nil, domain.ErrUserNotFound)

		assert.NoError(t, svc.RequestPasswordReset(ctx, "ghost@test.com"))
		email.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ResetWithValidToken", func(t *testing.T) {
		svc, users, email := newAuthService(t)
		expires := time.Now().Add(30 * time.Minute)
		user := &domain.User{ID: 7, Email: "renter@test.com", ResetPasswordToken: "tok123", ResetPasswordExpires: &expires}
		users.On("GetByResetToken", ctx, "tok123").Return(user, nil)
		users.On("Update", ctx, user).Return(nil)
		email.On("SendPasswordResetConfirmation", ctx, "renter@test.com", mock.Anything).Return(nil)

		require.NoError(t, svc.ResetPassword(ctx, "tok123", "new-password"))
		assert.Empty(t, user.ResetPasswordToken)
		assert.Nil(t, user.ResetPasswordExpires)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")))
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		expires := time.Now().Add(-time.Minute)
		users.On("GetByResetToken", ctx, "stale").
			Return(&domain.User{ID: 7, ResetPasswordToken: "stale", ResetPasswordExpires: &expires}, nil)

		assert.ErrorIs(t, svc.ResetPassword(ctx, "stale", "new-password"), domain.ErrResetTokenInvalid)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByResetToken", ctx, "bogus").Return(nil, domain.ErrUserNotFound)

		assert.ErrorIs(t, svc.ResetPassword(ctx, "bogus", "new-password"), domain.ErrResetTokenInvalid)
	})
}
