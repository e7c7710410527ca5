package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUsage(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	boat := srv.createBoat(t, "Eco1")

	before := time.Now().UTC().Truncate(time.Millisecond)
	w := srv.request(t, http.MethodPost, "/api/boat-usages", map[string]interface{}{
		"boatId":        boat.ID,
		"durationHours": 2,
		"note":          "remo largo",
	}, map[string]string{})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var usage domain.BoatUsage
	decode(t, w, &usage)
	assert.Equal(t, boat.ID, usage.BoatID)
	assert.Equal(t, domain.UnknownRequester, usage.RequesterName)
	assert.False(t, usage.RequestedAt.Before(before))
	assert.True(t, usage.EstimatedReturn.Equal(usage.RequestedAt.Add(2*time.Hour)))

	w = srv.request(t, http.MethodGet, "/api/boat-usages", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var usages []domain.BoatUsage
	decode(t, w, &usages)
	require.Len(t, usages, 1)
	assert.Equal(t, usage.ID, usages[0].ID)
}

func TestCreateUsageRejected(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	boat := srv.createBoat(t, "Eco1")

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode int
	}{
		{"missing boat", map[string]interface{}{"durationHours": 1}, http.StatusBadRequest},
		{"missing duration", map[string]interface{}{"boatId": boat.ID}, http.StatusBadRequest},
		{"zero duration", map[string]interface{}{"boatId": boat.ID, "durationHours": 0}, http.StatusBadRequest},
		{"negative duration", map[string]interface{}{"boatId": boat.ID, "durationHours": -3}, http.StatusBadRequest},
		{"huge duration", map[string]interface{}{"boatId": boat.ID, "durationHours": 1e10}, http.StatusBadRequest},
		{"unknown boat", map[string]interface{}{"boatId": uuid.New(), "durationHours": 1}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.request(t, http.MethodPost, "/api/boat-usages", tt.body, nil)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())

			var body errorResponse
			decode(t, w, &body)
			assert.NotEmpty(t, body.Error)
		})
	}

	var count int64
	require.NoError(t, srv.db.Model(&domain.BoatUsage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateUsageUsesPrincipal(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	boat := srv.createBoat(t, "Eco1")

	w := srv.request(t, http.MethodPost, "/api/boat-usages", map[string]interface{}{
		"boatId":        boat.ID,
		"durationHours": 1,
	}, srv.bearer(t, domain.Trainer))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var usage domain.BoatUsage
	decode(t, w, &usage)
	assert.Equal(t, "Test", usage.RequesterName)
	assert.Equal(t, "test@club.test", usage.RequesterEmail)
	assert.NotNil(t, usage.UserID)
}

func TestStrictPolicyConflict(t *testing.T) {
	srv := newTestServer(t, serverOptions{policy: domain.PolicyStrict})
	boat := srv.createBoat(t, "Eco1")
	body := map[string]interface{}{"boatId": boat.ID, "durationHours": 2}

	w := srv.request(t, http.MethodPost, "/api/boat-usages", body, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first domain.BoatUsage
	decode(t, w, &first)

	w = srv.request(t, http.MethodPost, "/api/boat-usages", body, nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var locked lockedResponse
	decode(t, w, &locked)
	assert.Equal(t, "boat is reserved", locked.Error)
	assert.True(t, locked.LockedUntil.Equal(first.EstimatedReturn))
}

func TestAdvisoryPolicyAllowsSecondReservation(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	boat := srv.createBoat(t, "Eco1")
	body := map[string]interface{}{"boatId": boat.ID, "durationHours": 2}

	for i := 0; i < 2; i++ {
		w := srv.request(t, http.MethodPost, "/api/boat-usages", body, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := srv.request(t, http.MethodGet, "/api/boats/"+boat.ID.String()+"/lock", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lock domain.BoatAvailability
	decode(t, w, &lock)
	assert.True(t, lock.Locked)
	require.NotNil(t, lock.LockedUntil)
}

func TestDeleteUsageRoleGate(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	boat := srv.createBoat(t, "Eco1")

	w := srv.request(t, http.MethodPost, "/api/boat-usages", map[string]interface{}{"boatId": boat.ID, "durationHours": 1}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var usage domain.BoatUsage
	decode(t, w, &usage)
	path := "/api/boat-usages/" + usage.ID.String()

	w = srv.request(t, http.MethodDelete, path, nil, srv.bearer(t, domain.Trainer))
	require.Equal(t, http.StatusForbidden, w.Code)
	var body errorResponse
	decode(t, w, &body)
	assert.Equal(t, "forbidden", body.Error)

	var count int64
	require.NoError(t, srv.db.Model(&domain.BoatUsage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = srv.request(t, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.BoatUsage
	decode(t, w, &got)
	assert.Equal(t, usage.ID, got.ID)

	w = srv.request(t, http.MethodDelete, path, nil, srv.bearer(t, domain.Admin))
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.request(t, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.request(t, http.MethodDelete, path, nil, srv.bearer(t, domain.Admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
