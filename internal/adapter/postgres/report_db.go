package postgres

import (
	"context"
	"fmt"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository struct {
	records[domain.BoatReport]
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{records[domain.BoatReport]{db: db, entity: "boat report"}}
}

func (r *ReportRepository) CreateReport(ctx context.Context, report *domain.BoatReport) (*domain.BoatReport, error) {
	return r.create(ctx, report)
}

func (r *ReportRepository) GetReportByID(ctx context.Context, reportID uuid.UUID) (*domain.BoatReport, error) {
	return r.get(ctx, reportID)
}

func (r *ReportRepository) ListReports(ctx context.Context, boatID *uuid.UUID) ([]*domain.BoatReport, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		if boatID != nil {
			q = q.Where("boat_id = ?", *boatID)
		}
		return q.Order("created_at DESC")
	})
}

func (r *ReportRepository) UpdateReportStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus) (*domain.BoatReport, error) {
	res := r.db.WithContext(ctx).Model(&domain.BoatReport{}).Where("id = ?", reportID).Update("status", status)
	if res.Error != nil {
		return nil, translateError(r.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%s %w", r.entity, domain.ErrNotFound)
	}
	return r.get(ctx, reportID)
}

func (r *ReportRepository) DeleteReport(ctx context.Context, reportID uuid.UUID) error {
	return r.delete(ctx, reportID)
}
