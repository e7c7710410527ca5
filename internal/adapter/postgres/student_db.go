package postgres

import (
	"context"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentRepository struct {
	records[domain.Student]
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{records[domain.Student]{db: db, entity: "student"}}
}

func (r *StudentRepository) CreateStudent(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	return r.create(ctx, student)
}

func (r *StudentRepository) GetStudentByID(ctx context.Context, studentID uuid.UUID) (*domain.Student, error) {
	return r.get(ctx, studentID)
}

func (r *StudentRepository) ListStudents(ctx context.Context) ([]*domain.Student, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("apellido ASC").Order("nombre ASC")
	})
}

func (r *StudentRepository) UpdateStudent(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	return r.update(ctx, student)
}

func (r *StudentRepository) DeleteStudent(ctx context.Context, studentID uuid.UUID) error {
	return r.delete(ctx, studentID)
}
