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

// defiColumns are the scanned defi columns, in order.
var defiColumns = []string{
	"id", "title", "description", "sponsor", "cause", "target", "unit",
	"reward", "current_amount", "deadline", "status",
}

// DefiRepository handles database operations for challenges
type DefiRepository struct {
	db *pgxpool.Pool
}

// NewDefiRepository creates a new DefiRepository
func NewDefiRepository(db *pgxpool.Pool) *DefiRepository {
	return &DefiRepository{db: db}
}

func scanDefi(row pgx.Row) (*models.Defi, error) {
	var defi models.Defi
	err := row.Scan(
		&defi.ID,
		&defi.Title,
		&defi.Description,
		&defi.Sponsor,
		&defi.Cause,
		&defi.Target,
		&defi.Unit,
		&defi.Reward,
		&defi.CurrentAmount,
		&defi.Deadline,
		&defi.Status,
	)
	if err != nil {
		return nil, err
	}
	return &defi, nil
}

// Create inserts a new challenge
func (r *DefiRepository) Create(ctx context.Context, defi *models.Defi) (*models.Defi, error) {
	query := squirrel.Insert("defis").
		Columns("title", "description", "sponsor", "cause", "target", "unit",
			"reward", "current_amount", "deadline", "status").
		Values(defi.Title, defi.Description, defi.Sponsor, defi.Cause, defi.Target,
			defi.Unit, defi.Reward, defi.CurrentAmount, defi.Deadline, defi.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&defi.ID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return defi, nil
}

// GetByID retrieves a challenge by ID
func (r *DefiRepository) GetByID(ctx context.Context, id int64) (*models.Defi, error) {
	query := squirrel.Select(defiColumns...).
		From("defis").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	defi, err := scanDefi(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDefiNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return defi, nil
}

// GetByIDWithParticipations retrieves a challenge with its participations and
// the participating users.
func (r *DefiRepository) GetByIDWithParticipations(ctx context.Context, id int64) (*models.Defi, error) {
	defi, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	participations, err := r.getParticipations(ctx, id)
	if err != nil {
		return nil, err
	}
	defi.Participations = participations

	return defi, nil
}

// GetAll retrieves all challenges with their participations
func (r *DefiRepository) GetAll(ctx context.Context) ([]*models.Defi, error) {
	query := squirrel.Select(defiColumns...).
		From("defis").
		OrderBy("id DESC").
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

	var defis []*models.Defi
	for rows.Next() {
		defi, err := scanDefi(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		defis = append(defis, defi)
	}

	for _, defi := range defis {
		participations, err := r.getParticipations(ctx, defi.ID)
		if err != nil {
			return nil, err
		}
		defi.Participations = participations
	}

	return defis, nil
}

// getParticipations loads the participations of a challenge, newest first,
// including each participant's public profile fields.
func (r *DefiRepository) getParticipations(ctx context.Context, defiID int64) ([]*models.Participation, error) {
	query := squirrel.Select(
		"p.id", "p.user_id", "p.defi_id", "p.quantity", "p.participated_at",
		"u.id", "u.name", "u.email", "u.is_verified",
	).
		From("participations p").
		Join("users u ON u.id = p.user_id").
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
		var participation models.Participation
		var user models.User
		err := rows.Scan(
			&participation.ID,
			&participation.UserID,
			&participation.DefiID,
			&participation.Quantity,
			&participation.ParticipatedAt,
			&user.ID,
			&user.Name,
			&user.Email,
			&user.IsVerified,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		participation.User = &user
		participations = append(participations, &participation)
	}

	return participations, nil
}

// Update persists modified challenge fields
func (r *DefiRepository) Update(ctx context.Context, defi *models.Defi) error {
	query := squirrel.Update("defis").
		Set("title", defi.Title).
		Set("description", defi.Description).
		Set("sponsor", defi.Sponsor).
		Set("cause", defi.Cause).
		Set("target", defi.Target).
		Set("unit", defi.Unit).
		Set("reward", defi.Reward).
		Set("current_amount", defi.CurrentAmount).
		Set("deadline", defi.Deadline).
		Set("status", defi.Status).
		Where("id = ?", defi.ID).
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
		return apperrors.ErrDefiNotFound
	}

	return nil
}

// ApplyContribution atomically adds quantity to a challenge's running total.
// The UPDATE only matches while the new total stays within the target, so a
// concurrent contribution that would overshoot is rejected instead of lost.
// The status flips to complete in the same statement when the target is
// reached. Returns ErrQuantityExceedsRemaining when the guard rejects the
// contribution and ErrDefiNotFound when the challenge does not exist.
func (r *DefiRepository) ApplyContribution(ctx context.Context, tx pgx.Tx, defiID int64, quantity float64) error {
	const sql = `
		UPDATE defis
		SET current_amount = current_amount + $1,
		    status = CASE WHEN current_amount + $1 >= target THEN 'complete' ELSE status END
		WHERE id = $2 AND current_amount + $1 <= target`

	result, err := tx.Exec(ctx, sql, quantity, defiID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing challenge from a rejected contribution
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM defis WHERE id = $1)`, defiID).Scan(&exists); err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if !exists {
			return apperrors.ErrDefiNotFound
		}
		return apperrors.ErrQuantityExceedsRemaining
	}

	return nil
}

// ReverseContribution atomically subtracts quantity from a challenge's
// running total, flooring at zero, and recomputes the status so that a total
// dropping below the target reverts the challenge to in progress.
func (r *DefiRepository) ReverseContribution(ctx context.Context, tx pgx.Tx, defiID int64, quantity float64) error {
	const sql = `
		UPDATE defis
		SET current_amount = GREATEST(0, current_amount - $1),
		    status = CASE WHEN GREATEST(0, current_amount - $1) >= target THEN 'complete' ELSE 'en_cours' END
		WHERE id = $2`

	result, err := tx.Exec(ctx, sql, quantity, defiID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrDefiNotFound
	}

	return nil
}

// Delete removes a challenge. Its participations are removed by the
// ON DELETE CASCADE constraint.
func (r *DefiRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("defis").
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
		return apperrors.ErrDefiNotFound
	}

	return nil
}
