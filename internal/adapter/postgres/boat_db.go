package postgres

import (
	"context"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoatRepository struct {
	records[domain.Boat]
}

func NewBoatRepository(db *gorm.DB) *BoatRepository {
	return &BoatRepository{records[domain.Boat]{db: db, entity: "boat"}}
}

func (r *BoatRepository) CreateBoat(ctx context.Context, boat *domain.Boat) (*domain.Boat, error) {
	return r.create(ctx, boat)
}

func (r *BoatRepository) GetBoatByID(ctx context.Context, boatID uuid.UUID) (*domain.Boat, error) {
	return r.get(ctx, boatID)
}

func (r *BoatRepository) ListBoats(ctx context.Context) ([]*domain.Boat, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("name ASC")
	})
}

func (r *BoatRepository) UpdateBoat(ctx context.Context, boat *domain.Boat) (*domain.Boat, error) {
	return r.update(ctx, boat)
}

func (r *BoatRepository) DeleteBoat(ctx context.Context, boatID uuid.UUID) error {
	return r.delete(ctx, boatID)
}
