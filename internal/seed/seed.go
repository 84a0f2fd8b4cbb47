// Package seed creates default data after migrations.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/ybamri/recycleapp/internal/app/models"
	appRepos "github.com/ybamri/recycleapp/internal/app/repositories"
	"github.com/ybamri/recycleapp/internal/config"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
	"github.com/ybamri/recycleapp/internal/pkg/auth"
)

// CreateDefaultData ensures a default admin account exists so the moderation
// panel is reachable on a fresh database. The credentials come from the
// ADMIN_EMAIL and ADMIN_PASSWORD environment variables and default to a
// local development account. Seeding is idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@recycleapp.local")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "admin123")

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Str("email", adminEmail).Msg("Default admin already exists")
		return nil
	}

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Name:       "Admin",
		Email:      adminEmail,
		Password:   hashed,
		Role:       appModels.RoleAdmin,
		IsVerified: true,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		// A concurrent boot may have created it in between
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
	return nil
}
