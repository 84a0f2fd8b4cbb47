package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/db"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// ParticipationRepository is the contribution persistence surface the
// participation service needs. The Tx variants run inside the transaction
// that also updates the challenge total.
type ParticipationRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, participation *models.Participation) error
	GetByID(ctx context.Context, id int64) (*models.Participation, error)
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Participation, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Participation, error)
	GetByDefiID(ctx context.Context, defiID int64) ([]*models.Participation, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error
}

// ContributionApplier mutates a challenge's running total atomically.
type ContributionApplier interface {
	ApplyContribution(ctx context.Context, tx pgx.Tx, defiID int64, quantity float64) error
	ReverseContribution(ctx context.Context, tx pgx.Tx, defiID int64, quantity float64) error
}

// ParticipationUserRepository checks contributor accounts.
type ParticipationUserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// ParticipationService handles challenge contributions. Every mutation of a
// contribution and its challenge total commits in a single transaction.
type ParticipationService struct {
	participationRepo ParticipationRepository
	defiRepo          ContributionApplier
	userRepo          ParticipationUserRepository
	txRunner          TxRunner
	logger            zerolog.Logger
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(
	participationRepo ParticipationRepository,
	defiRepo ContributionApplier,
	userRepo ParticipationUserRepository,
	txRunner TxRunner,
	logger zerolog.Logger,
) *ParticipationService {
	return &ParticipationService{
		participationRepo: participationRepo,
		defiRepo:          defiRepo,
		userRepo:          userRepo,
		txRunner:          txRunner,
		logger:            logger,
	}
}

// Create records a contribution. The quantity must be positive and may not
// exceed what remains to reach the target; a rejected contribution leaves
// both the challenge and the participations untouched.
func (s *ParticipationService) Create(ctx context.Context, req *dto.CreateParticipationRequest) (*models.Participation, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	participation := &models.Participation{
		UserID:   req.UserID,
		DefiID:   req.DefiID,
		Quantity: req.Quantity,
	}

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.defiRepo.ApplyContribution(ctx, tx, req.DefiID, req.Quantity); err != nil {
			return err
		}
		return s.participationRepo.CreateTx(ctx, tx, participation)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("participationId", participation.ID).
		Int64("defiId", req.DefiID).
		Int64("userId", req.UserID).
		Float64("quantity", req.Quantity).
		Msg("Participation recorded")

	return s.participationRepo.GetByID(ctx, participation.ID)
}

// GetByID retrieves one contribution with its user and challenge
func (s *ParticipationService) GetByID(ctx context.Context, id int64) (*models.Participation, error) {
	return s.participationRepo.GetByID(ctx, id)
}

// GetByUserID retrieves a user's contributions, newest first
func (s *ParticipationService) GetByUserID(ctx context.Context, userID int64) ([]*models.Participation, error) {
	return s.participationRepo.GetByUserID(ctx, userID)
}

// GetByDefiID retrieves a challenge's contributions, newest first
func (s *ParticipationService) GetByDefiID(ctx context.Context, defiID int64) ([]*models.Participation, error) {
	return s.participationRepo.GetByDefiID(ctx, defiID)
}

// Delete removes a contribution and subtracts its quantity from the
// challenge total, flooring at zero. A total dropping back below the target
// reverts the challenge to in progress.
func (s *ParticipationService) Delete(ctx context.Context, id int64) error {
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		participation, err := s.participationRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.defiRepo.ReverseContribution(ctx, tx, participation.DefiID, participation.Quantity); err != nil {
			return err
		}
		return s.participationRepo.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("participationId", id).Msg("Participation removed")
	return nil
}
