package services

import (
	"context"
	"testing"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoat(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()

	boat := f.createBoat(t, " Eco1 ")
	assert.Equal(t, "Eco1", boat.Name)
	assert.Equal(t, domain.BoatActive, boat.Status)

	_, err := f.boats.CreateBoat(ctx, BoatInput{Name: ptr("Eco2"), Type: ptr("canoa")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.boats.CreateBoat(ctx, BoatInput{Type: ptr("single")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetBoatUsesCache(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()
	boat := f.createBoat(t, "Eco1")

	_, err := f.boats.GetBoatByID(ctx, boat.ID.String())
	require.NoError(t, err)
	_, cached := f.cache.items[boatCacheKey(boat.ID)]
	assert.True(t, cached)

	updated, err := f.boats.UpdateBoat(ctx, boat.ID.String(), BoatInput{Status: ptr("mantenimiento")})
	require.NoError(t, err)
	assert.Equal(t, domain.BoatMaintenance, updated.Status)
	_, cached = f.cache.items[boatCacheKey(boat.ID)]
	assert.False(t, cached)

	got, err := f.boats.GetBoatByID(ctx, boat.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.BoatMaintenance, got.Status)
}

func TestBoatNotFound(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()

	_, err := f.boats.GetBoatByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.boats.GetBoatByID(ctx, "eco1")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, f.boats.DeleteBoat(ctx, uuid.NewString()), domain.ErrNotFound)
}
