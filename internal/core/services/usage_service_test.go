package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUsageValidationOrder(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     domain.UsageRequest
		wantErr error
	}{
		{"missing boat", domain.UsageRequest{DurationHours: ptr(2.0)}, domain.ErrValidation},
		{"missing boat and duration", domain.UsageRequest{}, domain.ErrValidation},
		{"missing duration", domain.UsageRequest{BoatID: uuid.NewString()}, domain.ErrValidation},
		{"zero duration", domain.UsageRequest{BoatID: uuid.NewString(), DurationHours: ptr(0.0)}, domain.ErrValidation},
		{"negative duration", domain.UsageRequest{BoatID: uuid.NewString(), DurationHours: ptr(-1.0)}, domain.ErrValidation},
		{"huge duration", domain.UsageRequest{BoatID: uuid.NewString(), DurationHours: ptr(3e6)}, domain.ErrValidation},
		{"duration past max", domain.UsageRequest{BoatID: uuid.NewString(), DurationHours: ptr(domain.MaxDurationHours + 1.0)}, domain.ErrValidation},
		{"nan duration", domain.UsageRequest{BoatID: uuid.NewString(), DurationHours: ptr(math.NaN())}, domain.ErrValidation},
		{"bad duration beats unknown boat", domain.UsageRequest{BoatID: "not-a-uuid", DurationHours: ptr(0.0)}, domain.ErrValidation},
		{"malformed boat", domain.UsageRequest{BoatID: "not-a-uuid", DurationHours: ptr(1.0)}, domain.ErrNotFound},
		{"unknown boat", domain.UsageRequest{BoatID: uuid.NewString(), DurationHours: ptr(1.0)}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usages.CreateUsage(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Zero(t, f.countRows(t, &domain.BoatUsage{}))
}

func TestCreateUsageRecordsRequester(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	boat := f.createBoat(t, "Eco1")
	userID := uuid.New()

	usage, err := f.usages.CreateUsage(context.Background(), domain.UsageRequest{
		BoatID:        boat.ID.String(),
		DurationHours: ptr(1.5),
		Note:          "  entrenamiento  ",
		Requester:     domain.Principal{UserID: userID.String(), Email: "ana@club.test"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@club.test", usage.RequesterName)
	assert.Equal(t, "entrenamiento", usage.Note)
	require.NotNil(t, usage.UserID)
	assert.Equal(t, userID, *usage.UserID)
	assert.Equal(t, usage.RequestedAt.Add(90*time.Minute), usage.EstimatedReturn)
}

func TestCreateUsageAnonymousRequester(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	boat := f.createBoat(t, "Eco1")

	usage, err := f.usages.CreateUsage(context.Background(), domain.UsageRequest{
		BoatID:        boat.ID.String(),
		DurationHours: ptr(1.0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownRequester, usage.RequesterName)
	assert.Nil(t, usage.UserID)
}

func TestAdvisoryPolicyAllowsOverlap(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	boat := f.createBoat(t, "Eco1")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.usages.CreateUsage(ctx, domain.UsageRequest{BoatID: boat.ID.String(), DurationHours: ptr(2.0)})
		require.NoError(t, err)
	}

	usages, err := f.usages.ListUsages(ctx, boat.ID.String())
	require.NoError(t, err)
	assert.Len(t, usages, 2)
}

func TestStrictPolicyRejectsLockedBoat(t *testing.T) {
	f := newFixture(t, domain.PolicyStrict)
	boat := f.createBoat(t, "Eco1")
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f.setClock(func() time.Time { return t0 })

	first, err := f.usages.CreateUsage(ctx, domain.UsageRequest{BoatID: boat.ID.String(), DurationHours: ptr(2.0)})
	require.NoError(t, err)

	f.setClock(func() time.Time { return t0.Add(time.Hour) })
	_, err = f.usages.CreateUsage(ctx, domain.UsageRequest{BoatID: boat.ID.String(), DurationHours: ptr(1.0)})
	require.ErrorIs(t, err, domain.ErrConflict)

	var locked *domain.BoatLockedError
	require.True(t, errors.As(err, &locked))
	assert.True(t, locked.LockedUntil.Equal(first.EstimatedReturn))
	assert.Equal(t, int64(1), f.countRows(t, &domain.BoatUsage{}))

	// the advisory lock is released after each attempt
	assert.Empty(t, f.cache.locks)

	f.setClock(func() time.Time { return first.EstimatedReturn.Add(time.Second) })
	_, err = f.usages.CreateUsage(ctx, domain.UsageRequest{BoatID: boat.ID.String(), DurationHours: ptr(1.0)})
	require.NoError(t, err)
}

func TestStrictPolicyConcurrentAttempt(t *testing.T) {
	f := newFixture(t, domain.PolicyStrict)
	boat := f.createBoat(t, "Eco1")
	ctx := context.Background()

	key := "boat-usage-lock:" + boat.ID.String()
	token, held, err := f.cache.AcquireLock(ctx, key, reservationLockTTL)
	require.NoError(t, err)
	require.True(t, held)

	_, err = f.usages.CreateUsage(ctx, domain.UsageRequest{BoatID: boat.ID.String(), DurationHours: ptr(1.0)})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, f.countRows(t, &domain.BoatUsage{}))

	// the rejected attempt leaves the other holder's lock in place
	assert.Equal(t, token, f.cache.locks[key])
}

func TestReservationScenario(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f.setClock(func() time.Time { return t0 })

	boat := f.createBoat(t, "Eco1")
	_, err := f.usages.CreateUsage(ctx, domain.UsageRequest{BoatID: boat.ID.String(), DurationHours: ptr(2.0)})
	require.NoError(t, err)

	usages, err := f.usages.ListUsages(ctx, "")
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.True(t, usages[0].EstimatedReturn.Equal(t0.Add(2*time.Hour)))

	lock, err := f.usages.BoatLock(ctx, boat.ID.String())
	require.NoError(t, err)
	assert.True(t, lock.Locked)

	f.setClock(func() time.Time { return t0.Add(2*time.Hour + time.Second) })
	availability, err := f.usages.Availability(ctx)
	require.NoError(t, err)
	require.Len(t, availability, 1)
	assert.Equal(t, "Eco1", availability[0].Boat.Name)
	assert.False(t, availability[0].Locked)
	assert.Nil(t, availability[0].LockedUntil)
}

func TestDeleteUsage(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	boat := f.createBoat(t, "Eco1")
	ctx := context.Background()

	usage, err := f.usages.CreateUsage(ctx, domain.UsageRequest{BoatID: boat.ID.String(), DurationHours: ptr(1.0)})
	require.NoError(t, err)

	got, err := f.usages.GetUsage(ctx, usage.ID.String())
	require.NoError(t, err)
	assert.Equal(t, usage.ID, got.ID)
	assert.True(t, got.EstimatedReturn.Equal(usage.EstimatedReturn))

	require.NoError(t, f.usages.DeleteUsage(ctx, usage.ID.String()))
	_, err = f.usages.GetUsage(ctx, usage.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.usages.GetUsage(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, f.usages.DeleteUsage(ctx, usage.ID.String()), domain.ErrNotFound)
	assert.ErrorIs(t, f.usages.DeleteUsage(ctx, "nope"), domain.ErrValidation)
}
