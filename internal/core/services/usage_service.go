package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const reservationLockTTL = 10 * time.Second

type UsageService struct {
	usageRepo   ports.UsageRepository
	boatService *BoatService
	logger      ports.LoggerPort
	validate    *validator.Validate
	cache       ports.CachePort
	policy      domain.ReservationPolicy
	now         func() time.Time
}

func NewUsageService(
	usageRepo ports.UsageRepository,
	boatService *BoatService,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
	policy domain.ReservationPolicy,
) *UsageService {
	if policy != domain.PolicyStrict {
		policy = domain.PolicyAdvisory
	}
	return &UsageService{
		usageRepo:   usageRepo,
		boatService: boatService,
		logger:      logger,
		validate:    validate,
		cache:       cache,
		policy:      policy,
		now:         time.Now,
	}
}

// CreateUsage validates boatId, then duration, then boat existence, in that order.
func (s *UsageService) CreateUsage(ctx context.Context, req domain.UsageRequest) (*domain.BoatUsage, error) {
	if strings.TrimSpace(req.BoatID) == "" {
		return nil, fmt.Errorf("%w: boatId is required", domain.ErrValidation)
	}
	if req.DurationHours == nil || !domain.ValidDuration(*req.DurationHours) {
		return nil, fmt.Errorf("%w: durationHours must be a number greater than 0 and at most %d", domain.ErrValidation, domain.MaxDurationHours)
	}

	boatID, err := parseRef("boat", req.BoatID)
	if err != nil {
		return nil, err
	}
	boat, err := s.boatService.getBoat(ctx, boatID)
	if err != nil {
		return nil, err
	}

	if s.policy == domain.PolicyStrict {
		release, err := s.lockBoat(ctx, boat.ID)
		if err != nil {
			return nil, err
		}
		defer release()

		if err := s.ensureAvailable(ctx, boat.ID); err != nil {
			return nil, err
		}
	}

	requestedAt := s.now().UTC().Truncate(time.Millisecond)
	usage := &domain.BoatUsage{
		ID:              uuid.New(),
		BoatID:          boat.ID,
		RequesterName:   req.Requester.DisplayName(),
		RequesterEmail:  strings.TrimSpace(req.Requester.Email),
		RequestedAt:     requestedAt,
		DurationHours:   *req.DurationHours,
		EstimatedReturn: domain.EstimatedReturn(requestedAt, *req.DurationHours),
		Note:            strings.TrimSpace(req.Note),
	}
	if userID, err := uuid.Parse(req.Requester.UserID); err == nil {
		usage.UserID = &userID
	}
	if err := validationError(s.validate, usage); err != nil {
		return nil, err
	}

	createdUsage, err := s.usageRepo.CreateUsage(ctx, usage)
	if err != nil {
		s.logger.Error("Failed to create boat usage", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": boat.ID,
		})
		return nil, err
	}

	s.logger.Info("Boat reserved", map[string]interface{}{
		"usage_id":         createdUsage.ID,
		"boat_id":          boat.ID,
		"requester":        createdUsage.RequesterName,
		"estimated_return": createdUsage.EstimatedReturn,
		"policy":           s.policy,
	})
	return createdUsage, nil
}

func (s *UsageService) lockBoat(ctx context.Context, boatID uuid.UUID) (func(), error) {
	key := fmt.Sprintf("boat-usage-lock:%s", boatID)
	token, acquired, err := s.cache.AcquireLock(ctx, key, reservationLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock boat %s: %w", boatID, err)
	}
	if !acquired {
		return nil, fmt.Errorf("another reservation for boat %s is in progress: %w", boatID, domain.ErrConflict)
	}

	return func() {
		if err := s.cache.ReleaseLock(context.WithoutCancel(ctx), key, token); err != nil {
			s.logger.Warn("Failed to release boat lock", map[string]interface{}{
				"error":   err.Error(),
				"boat_id": boatID,
			})
		}
	}, nil
}

func (s *UsageService) ensureAvailable(ctx context.Context, boatID uuid.UUID) error {
	active, err := s.usageRepo.ListActiveUsages(ctx, &boatID, s.now().UTC())
	if err != nil {
		return err
	}
	state := domain.ComputeLock(boatID, active, s.now().UTC())
	if state.Locked {
		s.logger.Info("Reservation rejected, boat locked", map[string]interface{}{
			"boat_id":      boatID,
			"locked_until": *state.LockedUntil,
		})
		return &domain.BoatLockedError{BoatID: boatID, LockedUntil: *state.LockedUntil}
	}
	return nil
}

func (s *UsageService) ListUsages(ctx context.Context, boatID string) ([]*domain.BoatUsage, error) {
	filter := domain.UsageFilter{Limit: domain.MaxUsageListSize}
	if strings.TrimSpace(boatID) != "" {
		id, err := parseID("boat", boatID)
		if err != nil {
			return nil, err
		}
		filter.BoatID = &id
	}

	usages, err := s.usageRepo.ListUsages(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list boat usages", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return usages, nil
}

func (s *UsageService) GetUsage(ctx context.Context, usageID string) (*domain.BoatUsage, error) {
	id, err := parseID("boat usage", usageID)
	if err != nil {
		return nil, err
	}
	return s.usageRepo.GetUsageByID(ctx, id)
}

func (s *UsageService) DeleteUsage(ctx context.Context, usageID string) error {
	id, err := parseID("boat usage", usageID)
	if err != nil {
		return err
	}
	if err := s.usageRepo.DeleteUsage(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to delete boat usage", map[string]interface{}{
				"error":    err.Error(),
				"usage_id": id,
			})
		}
		return err
	}

	s.logger.Info("Boat usage deleted", map[string]interface{}{
		"usage_id": id,
	})
	return nil
}

// BoatLock returns the current lock window of one boat.
func (s *UsageService) BoatLock(ctx context.Context, boatID string) (*domain.BoatAvailability, error) {
	id, err := parseID("boat", boatID)
	if err != nil {
		return nil, err
	}
	boat, err := s.boatService.getBoat(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	active, err := s.usageRepo.ListActiveUsages(ctx, &id, now)
	if err != nil {
		return nil, err
	}
	return &domain.BoatAvailability{Boat: boat, LockState: domain.ComputeLock(id, active, now)}, nil
}

// Availability returns every boat with its lock window at the current instant.
func (s *UsageService) Availability(ctx context.Context) ([]*domain.BoatAvailability, error) {
	boats, err := s.boatService.ListBoats(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	active, err := s.usageRepo.ListActiveUsages(ctx, nil, now)
	if err != nil {
		s.logger.Error("Failed to list active usages", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	byBoat := make(map[uuid.UUID][]*domain.BoatUsage)
	for _, u := range active {
		byBoat[u.BoatID] = append(byBoat[u.BoatID], u)
	}

	result := make([]*domain.BoatAvailability, 0, len(boats))
	for _, boat := range boats {
		result = append(result, &domain.BoatAvailability{
			Boat:      boat,
			LockState: domain.ComputeLock(boat.ID, byBoat[boat.ID], now),
		})
	}
	return result, nil
}
