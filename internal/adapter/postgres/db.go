package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted type. Tests migrate them with gorm; production uses goose.
func Models() []interface{} {
	return []interface{}{
		&domain.Boat{},
		&domain.BoatUsage{},
		&domain.BoatReport{},
		&domain.Student{},
		&domain.TechnicalSheet{},
		&domain.User{},
		&domain.Announcement{},
		&domain.Event{},
	}
}

// Open wraps an already migrated *sql.DB in gorm.
func Open(db *sql.DB) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	return gormDB, nil
}

func translateError(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s already exists: %w", entity, domain.ErrConflict)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%s already exists: %w", entity, domain.ErrConflict)
		case "23502":
			return fmt.Errorf("required field is missing: %w", domain.ErrValidation)
		}
	}
	return fmt.Errorf("%s query failed: %w", entity, err)
}

// records holds the CRUD shared by every repository.
type records[T any] struct {
	db     *gorm.DB
	entity string
}

func (r records[T]) create(ctx context.Context, v *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, translateError(r.entity, err)
	}
	return v, nil
}

func (r records[T]) get(ctx context.Context, id uuid.UUID) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, translateError(r.entity, err)
	}
	return &v, nil
}

func (r records[T]) find(ctx context.Context, query func(*gorm.DB) *gorm.DB) ([]*T, error) {
	out := make([]*T, 0)
	if err := query(r.db.WithContext(ctx)).Find(&out).Error; err != nil {
		return nil, translateError(r.entity, err)
	}
	return out, nil
}

// update writes every column of v except id and created_at.
func (r records[T]) update(ctx context.Context, v *T) (*T, error) {
	res := r.db.WithContext(ctx).Model(v).Select("*").Omit("id", "created_at").Updates(v)
	if res.Error != nil {
		return nil, translateError(r.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%s %w", r.entity, domain.ErrNotFound)
	}
	return v, nil
}

func (r records[T]) delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return translateError(r.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %w", r.entity, domain.ErrNotFound)
	}
	return nil
}
