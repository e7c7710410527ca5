package postgres

import (
	"context"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageRepository struct {
	records[domain.BoatUsage]
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{records[domain.BoatUsage]{db: db, entity: "boat usage"}}
}

func (r *UsageRepository) CreateUsage(ctx context.Context, usage *domain.BoatUsage) (*domain.BoatUsage, error) {
	return r.create(ctx, usage)
}

func (r *UsageRepository) GetUsageByID(ctx context.Context, usageID uuid.UUID) (*domain.BoatUsage, error) {
	return r.get(ctx, usageID)
}

func (r *UsageRepository) ListUsages(ctx context.Context, filter domain.UsageFilter) ([]*domain.BoatUsage, error) {
	limit := filter.Limit
	if limit <= 0 || limit > domain.MaxUsageListSize {
		limit = domain.MaxUsageListSize
	}

	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		if filter.BoatID != nil {
			q = q.Where("boat_id = ?", *filter.BoatID)
		}
		return q.Order("requested_at DESC").Order("created_at DESC").Limit(limit)
	})
}

func (r *UsageRepository) ListActiveUsages(ctx context.Context, boatID *uuid.UUID, now time.Time) ([]*domain.BoatUsage, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		q = q.Where("estimated_return > ?", now)
		if boatID != nil {
			q = q.Where("boat_id = ?", *boatID)
		}
		return q.Order("estimated_return DESC")
	})
}

func (r *UsageRepository) DeleteUsage(ctx context.Context, usageID uuid.UUID) error {
	return r.delete(ctx, usageID)
}
