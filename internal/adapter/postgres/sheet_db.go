package postgres

import (
	"context"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SheetRepository struct {
	records[domain.TechnicalSheet]
}

func NewSheetRepository(db *gorm.DB) *SheetRepository {
	return &SheetRepository{records[domain.TechnicalSheet]{db: db, entity: "technical sheet"}}
}

func (r *SheetRepository) CreateSheet(ctx context.Context, sheet *domain.TechnicalSheet) (*domain.TechnicalSheet, error) {
	return r.create(ctx, sheet)
}

func (r *SheetRepository) GetSheetByID(ctx context.Context, sheetID uuid.UUID) (*domain.TechnicalSheet, error) {
	return r.get(ctx, sheetID)
}

func (r *SheetRepository) ListSheets(ctx context.Context, studentID *uuid.UUID) ([]*domain.TechnicalSheet, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		if studentID != nil {
			q = q.Where("student_id = ?", *studentID)
		}
		return q.Order("fecha DESC").Order("created_at DESC")
	})
}

func (r *SheetRepository) UpdateSheet(ctx context.Context, sheet *domain.TechnicalSheet) (*domain.TechnicalSheet, error) {
	return r.update(ctx, sheet)
}

func (r *SheetRepository) DeleteSheet(ctx context.Context, sheetID uuid.UUID) error {
	return r.delete(ctx, sheetID)
}
