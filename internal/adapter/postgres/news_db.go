package postgres

import (
	"context"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newestFirst(q *gorm.DB) *gorm.DB {
	return q.Order("fecha DESC").Order("created_at DESC")
}

type AnnouncementRepository struct {
	records[domain.Announcement]
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{records[domain.Announcement]{db: db, entity: "announcement"}}
}

func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	return r.create(ctx, a)
}

func (r *AnnouncementRepository) GetAnnouncementByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	return r.get(ctx, id)
}

func (r *AnnouncementRepository) ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error) {
	return r.find(ctx, newestFirst)
}

func (r *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	return r.update(ctx, a)
}

func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}

type EventRepository struct {
	records[domain.Event]
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{records[domain.Event]{db: db, entity: "event"}}
}

func (r *EventRepository) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	return r.create(ctx, e)
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.get(ctx, id)
}

func (r *EventRepository) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return r.find(ctx, newestFirst)
}

func (r *EventRepository) UpdateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	return r.update(ctx, e)
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}
