package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestDefiCreate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDefiRepo()
	svc := NewDefiService(repo, zerolog.Nop())

	t.Run("InitializesAccountingServerSide", func(t *testing.T) {
		defi, err := svc.Create(ctx, &dto.CreateDefiRequest{
			Title:   "Collecte de verre",
			Sponsor: "EcoCorp",
			Cause:   "Croissant Rouge",
			Target:  50,
			Unit:    "kg",
			Reward:  300,
		})
		require.NoError(t, err)
		assert.Equal(t, float64(0), defi.CurrentAmount)
		assert.Equal(t, models.DefiStatusInProgress, defi.Status)
		assert.Equal(t, "Croissant Rouge", defi.Cause)
	})

	t.Run("ParsesDeadline", func(t *testing.T) {
		defi, err := svc.Create(ctx, &dto.CreateDefiRequest{
			Title:    "Collecte de papier",
			Target:   10,
			Deadline: strPtr("2026-12-31"),
		})
		require.NoError(t, err)
		require.NotNil(t, defi.Deadline)
		assert.Equal(t, 2026, defi.Deadline.Year())
	})

	t.Run("RejectsBadDeadline", func(t *testing.T) {
		_, err := svc.Create(ctx, &dto.CreateDefiRequest{
			Title:    "Collecte",
			Target:   10,
			Deadline: strPtr("pas une date"),
		})
		assert.Error(t, err)
	})

	t.Run("RejectsNonPositiveTarget", func(t *testing.T) {
		_, err := svc.Create(ctx, &dto.CreateDefiRequest{Title: "Collecte", Target: 0})
		assert.Error(t, err)
	})
}

func TestDefiUpdateStatusRecomputation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDefiRepo()
	svc := NewDefiService(repo, zerolog.Nop())

	defi, err := svc.Create(ctx, &dto.CreateDefiRequest{Title: "Collecte", Target: 20, Unit: "kg"})
	require.NoError(t, err)

	t.Run("RaisingAmountCompletes", func(t *testing.T) {
		updated, err := svc.Update(ctx, defi.ID, &dto.UpdateDefiRequest{CurrentAmount: floatPtr(20)})
		require.NoError(t, err)
		assert.Equal(t, models.DefiStatusComplete, updated.Status)
	})

	t.Run("LoweringAmountReverts", func(t *testing.T) {
		updated, err := svc.Update(ctx, defi.ID, &dto.UpdateDefiRequest{CurrentAmount: floatPtr(10)})
		require.NoError(t, err)
		assert.Equal(t, models.DefiStatusInProgress, updated.Status)
	})

	t.Run("RaisingTargetReverts", func(t *testing.T) {
		_, err := svc.Update(ctx, defi.ID, &dto.UpdateDefiRequest{CurrentAmount: floatPtr(20)})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, defi.ID, &dto.UpdateDefiRequest{Target: floatPtr(40)})
		require.NoError(t, err)
		assert.Equal(t, models.DefiStatusInProgress, updated.Status)
	})

	t.Run("RejectsNegativeAmount", func(t *testing.T) {
		_, err := svc.Update(ctx, defi.ID, &dto.UpdateDefiRequest{CurrentAmount: floatPtr(-1)})
		assert.Error(t, err)
	})
}
