package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
)

func newParticipationFixture(t *testing.T, target float64) (*ParticipationService, *fakeDefiRepo, *fakeParticipationRepo, *models.User, *models.Defi) {
	t.Helper()

	userRepo := newFakeUserRepo()
	user := userRepo.add(&models.User{Name: "Youssef", Email: "y@example.com", Role: models.RoleUser, IsVerified: true})

	defiRepo := newFakeDefiRepo()
	defi, err := defiRepo.Create(context.Background(), &models.Defi{
		Title:  "Collecte de plastique",
		Target: target,
		Unit:   "kg",
		Status: models.DefiStatusInProgress,
	})
	require.NoError(t, err)

	participationRepo := newFakeParticipationRepo()
	svc := NewParticipationService(participationRepo, defiRepo, userRepo, &fakeTxRunner{}, zerolog.Nop())
	return svc, defiRepo, participationRepo, user, defi
}

func TestParticipationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("AccumulatesAndCompletes", func(t *testing.T) {
		svc, defiRepo, _, user, defi := newParticipationFixture(t, 20)

		_, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, float64(5), defiRepo.defis[defi.ID].CurrentAmount)
		assert.Equal(t, models.DefiStatusInProgress, defiRepo.defis[defi.ID].Status)

		_, err = svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 15})
		require.NoError(t, err)
		assert.Equal(t, float64(20), defiRepo.defis[defi.ID].CurrentAmount)
		assert.Equal(t, models.DefiStatusComplete, defiRepo.defis[defi.ID].Status)
	})

	t.Run("RejectsAfterComplete", func(t *testing.T) {
		svc, defiRepo, participationRepo, user, defi := newParticipationFixture(t, 20)

		_, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 20})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrQuantityExceedsRemaining)
		assert.Equal(t, float64(20), defiRepo.defis[defi.ID].CurrentAmount)
		assert.Len(t, participationRepo.participations, 1)
	})

	t.Run("RejectsOverRemaining", func(t *testing.T) {
		svc, defiRepo, participationRepo, user, defi := newParticipationFixture(t, 20)

		_, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 18})
		require.NoError(t, err)

		// 3 > the 2 remaining; nothing may change
		_, err = svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 3})
		assert.ErrorIs(t, err, apperrors.ErrQuantityExceedsRemaining)
		assert.Equal(t, float64(18), defiRepo.defis[defi.ID].CurrentAmount)
		assert.Equal(t, models.DefiStatusInProgress, defiRepo.defis[defi.ID].Status)
		assert.Len(t, participationRepo.participations, 1)
	})

	t.Run("RejectsNonPositiveQuantity", func(t *testing.T) {
		svc, _, _, user, defi := newParticipationFixture(t, 20)

		_, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 0})
		assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)

		_, err = svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: -4})
		assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)
	})

	t.Run("RejectsUnknownUser", func(t *testing.T) {
		svc, _, _, _, defi := newParticipationFixture(t, 20)

		_, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: 999, DefiID: defi.ID, Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("ListsByDefi", func(t *testing.T) {
		svc, _, _, user, defi := newParticipationFixture(t, 20)

		_, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 5})
		require.NoError(t, err)
		_, err = svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 7})
		require.NoError(t, err)

		participations, err := svc.GetByDefiID(ctx, defi.ID)
		require.NoError(t, err)
		assert.Len(t, participations, 2)

		participations, err = svc.GetByDefiID(ctx, defi.ID+1)
		require.NoError(t, err)
		assert.Empty(t, participations)
	})

	t.Run("RejectsUnknownDefi", func(t *testing.T) {
		svc, _, _, user, _ := newParticipationFixture(t, 20)

		_, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: 999, Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrDefiNotFound)
	})
}

func TestParticipationDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("RevertsCompletedStatus", func(t *testing.T) {
		svc, defiRepo, _, user, defi := newParticipationFixture(t, 20)

		first, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 20})
		require.NoError(t, err)
		assert.Equal(t, models.DefiStatusComplete, defiRepo.defis[defi.ID].Status)

		require.NoError(t, svc.Delete(ctx, first.ID))
		assert.Equal(t, float64(0), defiRepo.defis[defi.ID].CurrentAmount)
		assert.Equal(t, models.DefiStatusInProgress, defiRepo.defis[defi.ID].Status)
	})

	t.Run("FloorsAtZero", func(t *testing.T) {
		svc, defiRepo, _, user, defi := newParticipationFixture(t, 20)

		first, err := svc.Create(ctx, &dto.CreateParticipationRequest{UserID: user.ID, DefiID: defi.ID, Quantity: 5})
		require.NoError(t, err)

		// Simulate an admin resetting the running amount below the
		// participation's quantity before the removal
		defiRepo.defis[defi.ID].CurrentAmount = 2

		require.NoError(t, svc.Delete(ctx, first.ID))
		assert.Equal(t, float64(0), defiRepo.defis[defi.ID].CurrentAmount)
	})

	t.Run("UnknownParticipation", func(t *testing.T) {
		svc, _, _, _, _ := newParticipationFixture(t, 20)
		assert.ErrorIs(t, svc.Delete(ctx, 42), apperrors.ErrParticipationNotFound)
	})
}
