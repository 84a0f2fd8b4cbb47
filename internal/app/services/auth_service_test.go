package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
	"github.com/ybamri/recycleapp/internal/pkg/auth"
)

func newAuthFixture(emailSkipped bool) (*AuthService, *fakeUserRepo, *fakeEmailService) {
	userRepo := newFakeUserRepo()
	emailSvc := &fakeEmailService{}
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "recycleapp-test",
	})
	return NewAuthService(userRepo, jwtSvc, emailSvc, emailSkipped, zerolog.Nop()), userRepo, emailSvc
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Youssef",
		Email:    "Youssef@Example.com",
		Password: "secret123",
		Phone:    "+216 20 123 456",
	}
}

func TestAuthRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesUnverifiedUserAndSendsEmail", func(t *testing.T) {
		svc, repo, emailSvc := newAuthFixture(false)

		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		assert.Equal(t, "youssef@example.com", resp.User.Email)
		assert.False(t, resp.User.IsVerified)
		assert.Equal(t, models.RoleUser, resp.User.Role)
		assert.Empty(t, resp.VerificationToken)
		assert.Equal(t, []string{"youssef@example.com"}, emailSvc.sent)

		stored := repo.users[resp.User.ID]
		require.NotNil(t, stored.VerificationToken)
		assert.NotEqual(t, "secret123", stored.Password)
	})

	t.Run("ExposesTokenWhenEmailSkipped", func(t *testing.T) {
		svc, _, _ := newAuthFixture(true)

		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, resp.VerificationToken)
	})

	t.Run("RejectsDuplicateEmail", func(t *testing.T) {
		svc, _, _ := newAuthFixture(false)

		_, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerRequest())
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("RejectsInvalidEmail", func(t *testing.T) {
		svc, _, _ := newAuthFixture(false)

		req := registerRequest()
		req.Email = "pas-un-email"
		_, err := svc.Register(ctx, req)
		assert.Error(t, err)
	})

	t.Run("HonorsAdminRole", func(t *testing.T) {
		svc, _, _ := newAuthFixture(false)

		req := registerRequest()
		req.Role = "admin"
		resp, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, resp.User.Role)
	})
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc *AuthService) *dto.RegisterResponse {
		t.Helper()
		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		return resp
	}

	t.Run("IssuesTokenForVerifiedUser", func(t *testing.T) {
		svc, repo, _ := newAuthFixture(false)
		resp := register(t, svc)
		require.NoError(t, repo.SetVerified(ctx, resp.User.ID))

		login, err := svc.Login(ctx, &dto.LoginRequest{Email: "youssef@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, login.AccessToken)
		assert.Equal(t, "Bearer", login.TokenType)
		assert.Equal(t, int64(3600), login.ExpiresIn)
	})

	t.Run("RejectsUnverifiedUser", func(t *testing.T) {
		svc, _, _ := newAuthFixture(false)
		register(t, svc)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "youssef@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)
	})

	t.Run("RejectsWrongPassword", func(t *testing.T) {
		svc, repo, _ := newAuthFixture(false)
		resp := register(t, svc)
		require.NoError(t, repo.SetVerified(ctx, resp.User.ID))

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "youssef@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("UnknownEmailIsNotFound", func(t *testing.T) {
		svc, _, _ := newAuthFixture(false)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestAuthVerifyEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAuthFixture(true)

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	token := resp.VerificationToken

	t.Run("VerifiesAndClearsToken", func(t *testing.T) {
		verified, err := svc.VerifyEmail(ctx, token)
		require.NoError(t, err)
		assert.True(t, verified.User.IsVerified)
		assert.Nil(t, repo.users[resp.User.ID].VerificationToken)
	})

	t.Run("ReplayFails", func(t *testing.T) {
		_, err := svc.VerifyEmail(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationToken)
	})

	t.Run("EmptyTokenFails", func(t *testing.T) {
		_, err := svc.VerifyEmail(ctx, "  ")
		assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationToken)
	})
}
