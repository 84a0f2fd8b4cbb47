package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
	"github.com/ybamri/recycleapp/internal/pkg/auth"
	"github.com/ybamri/recycleapp/internal/pkg/email"
)

// AuthUserRepository is the user persistence surface the auth flow needs.
type AuthUserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SetVerified(ctx context.Context, userID int64) error
}

// AuthService handles registration, login and email verification
type AuthService struct {
	userRepo     AuthUserRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	emailSkipped bool
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService. emailSkipped mirrors the SMTP
// skip flag so registration responses can expose the verification token in
// local setups.
func NewAuthService(
	userRepo AuthUserRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	emailSkipped bool,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		emailService: emailService,
		emailSkipped: emailSkipped,
		logger:       logger,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validateEmail validates an email address format
func (s *AuthService) validateEmail(address string) error {
	if strings.TrimSpace(address) == "" {
		return apperrors.NewBadRequestError("Email cannot be empty")
	}
	if !emailRegex.MatchString(address) {
		return apperrors.NewBadRequestError("Invalid email format")
	}
	return nil
}

// Register creates an unverified account and sends the verification email.
// Email sending is best effort; a delivery failure does not fail the
// registration.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validateEmail(normalizedEmail); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, normalizedEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := email.GenerateVerificationToken()
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if req.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:              req.Name,
		Email:             normalizedEmail,
		Password:          hashed,
		Phone:             req.Phone,
		Role:              role,
		IsVerified:        false,
		VerificationToken: &token,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.emailService.SendVerificationEmail(created.Email, created.Name, token); err != nil {
		s.logger.Error().Err(err).Str("email", created.Email).Msg("Failed to send verification email")
	}

	response := &dto.RegisterResponse{
		Message: "Inscription réussie. Vérifie ta boîte mail pour activer ton compte.",
		User:    created,
	}
	if s.emailSkipped {
		response.VerificationToken = token
	}

	return response, nil
}

// Login authenticates a user and issues a signed access token. An unknown
// email is a not-found error; a wrong password or an unverified account is
// an authentication error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")

	return &dto.LoginResponse{
		Message:     "Connexion réussie",
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// VerifyEmail confirms an account from its single-use verification token.
// The token is cleared on success, so replaying it fails.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*dto.VerifyEmailResponse, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.ErrInvalidVerificationToken
	}

	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetVerified(ctx, user.ID); err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.VerificationToken = nil

	s.logger.Info().Int64("userId", user.ID).Msg("Email verified")

	return &dto.VerifyEmailResponse{
		Message: "Email vérifié avec succès. Tu peux maintenant te connecter.",
		User:    user,
	}, nil
}
