package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxUsageListSize caps the reservation history returned by a listing.
	MaxUsageListSize = 200
	UnknownRequester = "Unknown"
	// MaxDurationHours keeps estimated returns well inside the range of time.Duration.
	MaxDurationHours = 24 * 365 * 100
)

type ReservationPolicy string

const (
	// PolicyAdvisory persists every valid reservation, even for a locked boat.
	PolicyAdvisory ReservationPolicy = "advisory"
	// PolicyStrict rejects a reservation while the boat has an unexpired lock window.
	PolicyStrict ReservationPolicy = "strict"
)

// BoatUsage is a reservation record. It is never mutated after creation.
type BoatUsage struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BoatID          uuid.UUID  `gorm:"type:uuid;index;not null" json:"boatId" validate:"required"`
	UserID          *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`
	RequesterName   string     `gorm:"size:160;not null" json:"requesterName" validate:"required"`
	RequesterEmail  string     `gorm:"size:320" json:"requesterEmail,omitempty"`
	RequestedAt     time.Time  `gorm:"index;not null" json:"requestedAt" validate:"required"`
	DurationHours   float64    `gorm:"not null" json:"durationHours" validate:"gt=0,lte=876000"`
	EstimatedReturn time.Time  `gorm:"index;not null" json:"estimatedReturn" validate:"required"`
	Note            string     `gorm:"size:500" json:"note,omitempty" validate:"max=500"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type UsageRequest struct {
	BoatID        string
	DurationHours *float64
	Note          string
	Requester     Principal
}

type UsageFilter struct {
	BoatID *uuid.UUID
	Limit  int
}

// LockState is the derived availability of a boat at a given instant.
type LockState struct {
	BoatID      uuid.UUID  `json:"boatId"`
	Locked      bool       `json:"locked"`
	LockedUntil *time.Time `json:"lockedUntil,omitempty"`
}

type BoatAvailability struct {
	Boat *Boat `json:"boat"`
	LockState
}

// EstimatedReturn is requestedAt plus durationHours*3,600,000 ms, rounded to the millisecond.
func EstimatedReturn(requestedAt time.Time, durationHours float64) time.Time {
	ms := math.Round(durationHours * float64(time.Hour/time.Millisecond))
	return requestedAt.Add(time.Duration(ms) * time.Millisecond)
}

func ValidDuration(hours float64) bool {
	return hours > 0 && hours <= MaxDurationHours && !math.IsNaN(hours)
}

// ComputeLock returns the lock state of boatID from its usages. The boat stays
// locked until the latest estimated return that is still after now.
func ComputeLock(boatID uuid.UUID, usages []*BoatUsage, now time.Time) LockState {
	state := LockState{BoatID: boatID}
	for _, u := range usages {
		if u.BoatID != boatID || !u.EstimatedReturn.After(now) {
			continue
		}
		if state.LockedUntil == nil || u.EstimatedReturn.After(*state.LockedUntil) {
			until := u.EstimatedReturn
			state.LockedUntil = &until
		}
	}
	state.Locked = state.LockedUntil != nil
	return state
}
