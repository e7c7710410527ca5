package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const boatCacheTTL = 15 * time.Minute

type BoatService struct {
	boatRepo ports.BoatRepository
	logger   ports.LoggerPort
	validate *validator.Validate
	cache    ports.CachePort
	now      func() time.Time
}

type BoatInput struct {
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	Status     *string `json:"status"`
	IntakeDate *string `json:"intakeDate"`
}

func NewBoatService(
	boatRepo ports.BoatRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *BoatService {
	return &BoatService{
		boatRepo: boatRepo,
		logger:   logger,
		validate: validate,
		cache:    cache,
		now:      time.Now,
	}
}

func (s *BoatService) CreateBoat(ctx context.Context, in BoatInput) (*domain.Boat, error) {
	boat := &domain.Boat{
		ID:         uuid.New(),
		Status:     domain.BoatActive,
		IntakeDate: s.now().UTC(),
	}
	if err := applyBoatInput(boat, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, boat); err != nil {
		s.logger.Error("Boat validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	createdBoat, err := s.boatRepo.CreateBoat(ctx, boat)
	if err != nil {
		s.logger.Error("Failed to create boat", map[string]interface{}{
			"error": err.Error(),
			"name":  boat.Name,
		})
		return nil, err
	}

	s.logger.Info("Boat created successfully", map[string]interface{}{
		"boat_id": createdBoat.ID,
		"name":    createdBoat.Name,
	})
	return createdBoat, nil
}

func (s *BoatService) GetBoatByID(ctx context.Context, boatID string) (*domain.Boat, error) {
	id, err := parseID("boat", boatID)
	if err != nil {
		return nil, err
	}
	return s.getBoat(ctx, id)
}

func (s *BoatService) getBoat(ctx context.Context, id uuid.UUID) (*domain.Boat, error) {
	cacheKey := boatCacheKey(id)
	cachedData, err := s.cache.Get(cacheKey)
	if err == nil {
		var cachedBoat domain.Boat
		if err := json.Unmarshal(cachedData, &cachedBoat); err == nil {
			s.logger.Debug("Boat found in cache", map[string]interface{}{
				"boat_id": id,
			})
			return &cachedBoat, nil
		}
	}

	boat, err := s.boatRepo.GetBoatByID(ctx, id)
	if err != nil {
		s.logger.Warn("Failed to get boat", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": id,
		})
		return nil, err
	}

	boatData, err := json.Marshal(boat)
	if err != nil {
		s.logger.Warn("Failed to marshal boat for cache", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": id,
		})
	} else if err := s.cache.Set(cacheKey, boatData, boatCacheTTL); err != nil {
		s.logger.Warn("Failed to cache boat", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": id,
		})
	}

	return boat, nil
}

func (s *BoatService) ListBoats(ctx context.Context) ([]*domain.Boat, error) {
	boats, err := s.boatRepo.ListBoats(ctx)
	if err != nil {
		s.logger.Error("Failed to list boats", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return boats, nil
}

func (s *BoatService) UpdateBoat(ctx context.Context, boatID string, in BoatInput) (*domain.Boat, error) {
	id, err := parseID("boat", boatID)
	if err != nil {
		return nil, err
	}

	boat, err := s.boatRepo.GetBoatByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyBoatInput(boat, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, boat); err != nil {
		s.logger.Error("Boat validation failed", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": id,
		})
		return nil, err
	}

	updatedBoat, err := s.boatRepo.UpdateBoat(ctx, boat)
	if err != nil {
		s.logger.Error("Failed to update boat", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": id,
		})
		return nil, err
	}
	s.invalidate(id)

	s.logger.Info("Boat updated successfully", map[string]interface{}{
		"boat_id": id,
		"status":  updatedBoat.Status,
	})
	return updatedBoat, nil
}

func (s *BoatService) DeleteBoat(ctx context.Context, boatID string) error {
	id, err := parseID("boat", boatID)
	if err != nil {
		return err
	}

	if err := s.boatRepo.DeleteBoat(ctx, id); err != nil {
		s.logger.Error("Failed to delete boat", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": id,
		})
		return err
	}
	s.invalidate(id)

	s.logger.Info("Boat deleted successfully", map[string]interface{}{
		"boat_id": id,
	})
	return nil
}

func (s *BoatService) invalidate(id uuid.UUID) {
	if err := s.cache.Delete(boatCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate boat cache", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": id,
		})
	}
}

func boatCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("boat:%s", id)
}

func applyBoatInput(boat *domain.Boat, in BoatInput) error {
	if in.Name != nil {
		boat.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		boat.Type = domain.BoatType(strings.ToLower(strings.TrimSpace(*in.Type)))
	}
	if in.Status != nil {
		boat.Status = domain.BoatStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
	}
	if in.IntakeDate != nil && strings.TrimSpace(*in.IntakeDate) != "" {
		intake, err := parseDate("intakeDate", *in.IntakeDate)
		if err != nil {
			return err
		}
		boat.IntakeDate = intake
	}
	return nil
}
