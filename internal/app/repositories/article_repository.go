package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
)

// articleColumns are the scanned article columns, prefixed for joins.
var articleColumns = []string{
	"a.id", "a.title", "a.description", "a.category", "a.condition", "a.location",
	"a.status", "a.price", "a.exchange_for", "a.photo", "a.user_id", "a.created_at",
}

// ArticleRepository handles database operations for listings
type ArticleRepository struct {
	db *pgxpool.Pool
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// selectWithOwner builds the base article query joined to the owning user.
func selectWithOwner() squirrel.SelectBuilder {
	columns := append([]string{}, articleColumns...)
	columns = append(columns, "u.id", "u.name", "u.email", "u.phone", "u.is_verified")
	return squirrel.Select(columns...).
		From("articles a").
		Join("users u ON u.id = a.user_id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanArticleWithOwner(row pgx.Row) (*models.Article, error) {
	var article models.Article
	var owner models.User
	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Description,
		&article.Category,
		&article.Condition,
		&article.Location,
		&article.Status,
		&article.Price,
		&article.ExchangeFor,
		&article.Photo,
		&article.UserID,
		&article.CreatedAt,
		&owner.ID,
		&owner.Name,
		&owner.Email,
		&owner.Phone,
		&owner.IsVerified,
	)
	if err != nil {
		return nil, err
	}
	article.Owner = &owner
	return &article, nil
}

// Create inserts a new article
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := squirrel.Insert("articles").
		Columns("id", "title", "description", "category", "condition", "location",
			"status", "price", "exchange_for", "photo", "user_id").
		Values(article.ID, article.Title, article.Description, article.Category,
			article.Condition, article.Location, article.Status, article.Price,
			article.ExchangeFor, article.Photo, article.UserID).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&article.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return article, nil
}

// GetByID retrieves an article with its owner
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := selectWithOwner().Where("a.id = ?", id)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	article, err := scanArticleWithOwner(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return article, nil
}

// GetAll retrieves all articles newest first, each with its owner
func (r *ArticleRepository) GetAll(ctx context.Context) ([]*models.Article, error) {
	query := selectWithOwner().OrderBy("a.created_at DESC")
	return r.queryMany(ctx, query)
}

// GetByUserID retrieves the articles published by a user, newest first
func (r *ArticleRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Article, error) {
	query := selectWithOwner().
		Where("a.user_id = ?", userID).
		OrderBy("a.created_at DESC")
	return r.queryMany(ctx, query)
}

func (r *ArticleRepository) queryMany(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Article, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticleWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// Update persists modified article fields
func (r *ArticleRepository) Update(ctx context.Context, article *models.Article) error {
	query := squirrel.Update("articles").
		Set("title", article.Title).
		Set("description", article.Description).
		Set("category", article.Category).
		Set("condition", article.Condition).
		Set("location", article.Location).
		Set("status", article.Status).
		Set("price", article.Price).
		Set("exchange_for", article.ExchangeFor).
		Set("photo", article.Photo).
		Where("id = ?", article.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}

	return nil
}

// Delete removes an article
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	query := squirrel.Delete("articles").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}

	return nil
}
