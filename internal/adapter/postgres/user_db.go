package postgres

import (
	"context"
	"strings"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	records[domain.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{records[domain.User]{db: db, entity: "user"}}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.create(ctx, user)
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return r.get(ctx, userID)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) GetUserByDNI(ctx context.Context, dni string) (*domain.User, error) {
	return r.first(ctx, "dni = ?", strings.TrimSpace(dni))
}

func (r *UserRepository) GetUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.first(ctx, "reset_token = ?", token)
}

func (r *UserRepository) ListUsers(ctx context.Context, role *domain.UserRole) ([]*domain.User, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		if role != nil {
			q = q.Where("role = ?", *role)
		}
		return q.Order("apellido ASC").Order("nombre ASC")
	})
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.update(ctx, user)
}

func (r *UserRepository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return r.delete(ctx, userID)
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		return nil, translateError(r.entity, err)
	}
	return &user, nil
}
