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

// ParticipationRepository handles database operations for challenge participations
type ParticipationRepository struct {
	db *pgxpool.Pool
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

// CreateTx inserts a participation inside an existing transaction, so the
// insert commits together with the challenge total update.
func (r *ParticipationRepository) CreateTx(ctx context.Context, tx pgx.Tx, participation *models.Participation) error {
	query := squirrel.Insert("participations").
		Columns("user_id", "defi_id", "quantity").
		Values(participation.UserID, participation.DefiID, participation.Quantity).
		Suffix("RETURNING id, participated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&participation.ID, &participation.ParticipatedAt)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves a participation with its user and challenge
func (r *ParticipationRepository) GetByID(ctx context.Context, id int64) (*models.Participation, error) {
	query := squirrel.Select(
		"p.id", "p.user_id", "p.defi_id", "p.quantity", "p.participated_at",
		"u.id", "u.name", "u.email", "u.is_verified",
		"d.id", "d.title", "d.target", "d.unit", "d.current_amount", "d.status",
	).
		From("participations p").
		Join("users u ON u.id = p.user_id").
		Join("defis d ON d.id = p.defi_id").
		Where("p.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	participation, err := scanParticipationWithRelations(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return participation, nil
}

// GetByIDTx retrieves a participation inside a transaction, locking the row
// so a concurrent removal of the same participation waits.
func (r *ParticipationRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Participation, error) {
	const sql = `
		SELECT id, user_id, defi_id, quantity, participated_at
		FROM participations
		WHERE id = $1
		FOR UPDATE`

	var participation models.Participation
	err := tx.QueryRow(ctx, sql, id).Scan(
		&participation.ID,
		&participation.UserID,
		&participation.DefiID,
		&participation.Quantity,
		&participation.ParticipatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &participation, nil
}

// GetByUserID retrieves a user's participations with their challenges, newest first
func (r *ParticipationRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Participation, error) {
	query := squirrel.Select(
		"p.id", "p.user_id", "p.defi_id", "p.quantity", "p.participated_at",
		"u.id", "u.name", "u.email", "u.is_verified",
		"d.id", "d.title", "d.target", "d.unit", "d.current_amount", "d.status",
	).
		From("participations p").
		Join("users u ON u.id = p.user_id").
		Join("defis d ON d.id = p.defi_id").
		Where("p.user_id = ?", userID).
		OrderBy("p.participated_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	for rows.Next() {
		participation, err := scanParticipationWithRelations(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		participations = append(participations, participation)
	}

	return participations, nil
}

// GetByDefiID retrieves a challenge's participations with their contributors, newest first
func (r *ParticipationRepository) GetByDefiID(ctx context.Context, defiID int64) ([]*models.Participation, error) {
	query := squirrel.Select(
		"p.id", "p.user_id", "p.defi_id", "p.quantity", "p.participated_at",
		"u.id", "u.name", "u.email", "u.is_verified",
		"d.id", "d.title", "d.target", "d.unit", "d.current_amount", "d.status",
	).
		From("participations p").
		Join("users u ON u.id = p.user_id").
		Join("defis d ON d.id = p.defi_id").
		Where("p.defi_id = ?", defiID).
		OrderBy("p.participated_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	for rows.Next() {
		participation, err := scanParticipationWithRelations(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		participations = append(participations, participation)
	}

	return participations, nil
}

func scanParticipationWithRelations(row pgx.Row) (*models.Participation, error) {
	var participation models.Participation
	var user models.User
	var defi models.Defi
	err := row.Scan(
		&participation.ID,
		&participation.UserID,
		&participation.DefiID,
		&participation.Quantity,
		&participation.ParticipatedAt,
		&user.ID,
		&user.Name,
		&user.Email,
		&user.IsVerified,
		&defi.ID,
		&defi.Title,
		&defi.Target,
		&defi.Unit,
		&defi.CurrentAmount,
		&defi.Status,
	)
	if err != nil {
		return nil, err
	}
	participation.User = &user
	participation.Defi = &defi
	return &participation, nil
}

// DeleteTx removes a participation inside an existing transaction
func (r *ParticipationRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	query := squirrel.Delete("participations").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrParticipationNotFound
	}

	return nil
}
