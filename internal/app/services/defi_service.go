package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
	"github.com/ybamri/recycleapp/internal/pkg/helpers"
)

// DefiRepository is the challenge persistence surface the defi service needs.
type DefiRepository interface {
	Create(ctx context.Context, defi *models.Defi) (*models.Defi, error)
	GetByID(ctx context.Context, id int64) (*models.Defi, error)
	GetByIDWithParticipations(ctx context.Context, id int64) (*models.Defi, error)
	GetAll(ctx context.Context) ([]*models.Defi, error)
	Update(ctx context.Context, defi *models.Defi) error
	Delete(ctx context.Context, id int64) error
}

// DefiService handles sponsored challenges
type DefiService struct {
	defiRepo DefiRepository
	logger   zerolog.Logger
}

// NewDefiService creates a new DefiService
func NewDefiService(defiRepo DefiRepository, logger zerolog.Logger) *DefiService {
	return &DefiService{
		defiRepo: defiRepo,
		logger:   logger,
	}
}

// Create registers a new challenge. The running amount and status are always
// initialized server-side, whatever the caller sent.
func (s *DefiService) Create(ctx context.Context, req *dto.CreateDefiRequest) (*models.Defi, error) {
	if req.Target <= 0 {
		return nil, apperrors.NewBadRequestError("Target must be greater than zero")
	}

	defi := &models.Defi{
		Title:         req.Title,
		Description:   req.Description,
		Sponsor:       req.Sponsor,
		Cause:         req.CauseName(),
		Target:        req.Target,
		Unit:          req.Unit,
		Reward:        req.Reward,
		CurrentAmount: 0,
		Status:        models.DefiStatusInProgress,
	}

	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := helpers.ParseDate(*req.Deadline)
		if err != nil {
			return nil, err
		}
		defi.Deadline = &deadline
	}

	created, err := s.defiRepo.Create(ctx, defi)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("defiId", created.ID).Str("title", created.Title).Msg("Defi created")
	return created, nil
}

// GetAll retrieves all challenges with their participations
func (s *DefiService) GetAll(ctx context.Context) ([]*models.Defi, error) {
	return s.defiRepo.GetAll(ctx)
}

// GetByID retrieves one challenge with its participations
func (s *DefiService) GetByID(ctx context.Context, id int64) (*models.Defi, error) {
	return s.defiRepo.GetByIDWithParticipations(ctx, id)
}

// Update merges the provided fields into the challenge. The status is
// re-derived from the merged accounting fields in both directions, so
// lowering the running amount below the target reverts a completed
// challenge to in progress.
func (s *DefiService) Update(ctx context.Context, id int64, req *dto.UpdateDefiRequest) (*models.Defi, error) {
	defi, err := s.defiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		defi.Title = *req.Title
	}
	if req.Description != nil {
		defi.Description = *req.Description
	}
	if req.Sponsor != nil {
		defi.Sponsor = *req.Sponsor
	}
	if req.Cause != nil {
		defi.Cause = *req.Cause
	}
	if req.Target != nil {
		if *req.Target <= 0 {
			return nil, apperrors.NewBadRequestError("Target must be greater than zero")
		}
		defi.Target = *req.Target
	}
	if req.Unit != nil {
		defi.Unit = *req.Unit
	}
	if req.Reward != nil {
		defi.Reward = *req.Reward
	}
	if req.CurrentAmount != nil {
		if *req.CurrentAmount < 0 {
			return nil, apperrors.NewBadRequestError("Current amount cannot be negative")
		}
		defi.CurrentAmount = *req.CurrentAmount
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			defi.Deadline = nil
		} else {
			deadline, err := helpers.ParseDate(*req.Deadline)
			if err != nil {
				return nil, err
			}
			defi.Deadline = &deadline
		}
	}

	defi.Status = models.ComputeDefiStatus(defi.CurrentAmount, defi.Target)

	if err := s.defiRepo.Update(ctx, defi); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("defiId", defi.ID).Str("status", string(defi.Status)).Msg("Defi updated")
	return defi, nil
}

// Delete removes a challenge and its participations
func (s *DefiService) Delete(ctx context.Context, id int64) error {
	if err := s.defiRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("defiId", id).Msg("Defi deleted")
	return nil
}
