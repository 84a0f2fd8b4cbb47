package services

import (
	"context"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
	"github.com/ybamri/recycleapp/internal/pkg/filestorage"
)

// ArticleRepository is the listing persistence surface the article service needs.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetAll(ctx context.Context) ([]*models.Article, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
}

// ArticleService handles marketplace listings
type ArticleService struct {
	articleRepo ArticleRepository
	storage     filestorage.Storage
	logger      zerolog.Logger
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo ArticleRepository, storage filestorage.Storage, logger zerolog.Logger) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		storage:     storage,
		logger:      logger,
	}
}

// statusFromInput maps the action intent ("type") or an explicit status to a
// listing status. The intent wins when both are present; anything
// unrecognized falls back to a sale listing.
func statusFromInput(intent, status string) models.ArticleStatus {
	switch strings.ToLower(strings.TrimSpace(intent)) {
	case "revendre":
		return models.ArticleStatusSale
	case "echanger":
		return models.ArticleStatusExchange
	case "donner":
		return models.ArticleStatusGiveaway
	}

	switch models.ArticleStatus(strings.ToLower(strings.TrimSpace(status))) {
	case models.ArticleStatusSale, models.ArticleStatusExchange,
		models.ArticleStatusGiveaway, models.ArticleStatusSold:
		return models.ArticleStatus(strings.ToLower(strings.TrimSpace(status)))
	}

	return models.ArticleStatusSale
}

// Create builds a listing from a normalized form and an optional photo.
// The photo is stored first; if persisting the listing fails afterwards the
// stored file is removed again.
func (s *ArticleService) Create(ctx context.Context, userID int64, input dto.CreateArticleInput, photo *multipart.FileHeader) (*models.Article, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.ErrTitleRequired
	}

	article := &models.Article{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Condition:   input.Condition,
		Location:    input.Location,
		Status:      statusFromInput(input.Type, input.Status),
		UserID:      userID,
	}

	if input.Price != "" {
		price, err := strconv.ParseFloat(input.Price, 64)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid price format")
		}
		article.Price = &price
	}

	if input.ExchangeFor != "" {
		exchangeFor := input.ExchangeFor
		article.ExchangeFor = &exchangeFor
	}

	if photo != nil {
		path, err := s.storage.SaveFile(photo)
		if err != nil {
			return nil, err
		}
		if path != "" {
			article.Photo = &path
		}
	}

	created, err := s.articleRepo.Create(ctx, article)
	if err != nil {
		if article.Photo != nil {
			_ = s.storage.DeleteFile(*article.Photo)
		}
		return nil, err
	}

	s.logger.Info().Str("articleId", created.ID).Int64("userId", userID).Msg("Article created")
	return created, nil
}

// GetAll retrieves all listings, newest first
func (s *ArticleService) GetAll(ctx context.Context) ([]*models.Article, error) {
	return s.articleRepo.GetAll(ctx)
}

// GetByUserID retrieves one user's listings
func (s *ArticleService) GetByUserID(ctx context.Context, userID int64) ([]*models.Article, error) {
	return s.articleRepo.GetByUserID(ctx, userID)
}

// GetByID retrieves one listing
func (s *ArticleService) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

// Update merges the provided fields into the listing
func (s *ArticleService) Update(ctx context.Context, id string, req *dto.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.ErrTitleRequired
		}
		article.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Price != nil {
		article.Price = req.Price
	}
	if req.Location != nil {
		article.Location = *req.Location
	}
	if req.Status != nil {
		article.Status = statusFromInput("", *req.Status)
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info().Str("articleId", article.ID).Msg("Article updated")
	return article, nil
}

// Delete removes a listing and its stored photo
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return err
	}

	if article.Photo != nil {
		if err := s.storage.DeleteFile(*article.Photo); err != nil {
			s.logger.Warn().Err(err).Str("articleId", id).Msg("Failed to delete article photo")
		}
	}

	s.logger.Info().Str("articleId", id).Msg("Article deleted")
	return nil
}
