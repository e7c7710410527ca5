package services

import (
	"context"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type StudentService struct {
	studentRepo ports.StudentRepository
	logger      ports.LoggerPort
	validate    *validator.Validate
	now         func() time.Time
}

type StudentInput struct {
	Nombre          *string `json:"nombre"`
	Apellido        *string `json:"apellido"`
	DNI             *string `json:"dni"`
	Categoria       *string `json:"categoria"`
	Email           *string `json:"email"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Becado          *bool   `json:"becado"`
	Competitivo     *bool   `json:"competitivo"`
	Federado        *bool   `json:"federado"`
	Estado          *string `json:"estado"`
	FechaIngreso    *string `json:"fechaIngreso"`
	Avatar          *string `json:"avatar"`
}

func NewStudentService(studentRepo ports.StudentRepository, logger ports.LoggerPort, validate *validator.Validate) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
		validate:    validate,
		now:         time.Now,
	}
}

func (s *StudentService) CreateStudent(ctx context.Context, in StudentInput) (*domain.Student, error) {
	student := &domain.Student{
		ID:           uuid.New(),
		Estado:       domain.StudentActive,
		FechaIngreso: s.now().UTC(),
	}
	if err := applyStudentInput(student, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, student); err != nil {
		return nil, err
	}

	created, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		s.logger.Warn("Failed to create student", map[string]interface{}{
			"error": err.Error(),
			"dni":   student.DNI,
		})
		return nil, err
	}

	s.logger.Info("Student created", map[string]interface{}{
		"student_id": created.ID,
	})
	return created, nil
}

func (s *StudentService) GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	id, err := parseID("student", studentID)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.GetStudentByID(ctx, id)
}

func (s *StudentService) ListStudents(ctx context.Context) ([]*domain.Student, error) {
	return s.studentRepo.ListStudents(ctx)
}

func (s *StudentService) UpdateStudent(ctx context.Context, studentID string, in StudentInput) (*domain.Student, error) {
	id, err := parseID("student", studentID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyStudentInput(student, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, student); err != nil {
		return nil, err
	}

	updated, err := s.studentRepo.UpdateStudent(ctx, student)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student updated", map[string]interface{}{
		"student_id": id,
	})
	return updated, nil
}

func (s *StudentService) DeleteStudent(ctx context.Context, studentID string) error {
	id, err := parseID("student", studentID)
	if err != nil {
		return err
	}
	if err := s.studentRepo.DeleteStudent(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Student deleted", map[string]interface{}{
		"student_id": id,
	})
	return nil
}

func applyStudentInput(st *domain.Student, in StudentInput) error {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&st.Nombre, in.Nombre)
	setString(&st.Apellido, in.Apellido)
	setString(&st.DNI, in.DNI)
	setString(&st.Categoria, in.Categoria)
	setString(&st.Telefono, in.Telefono)
	setString(&st.Direccion, in.Direccion)
	setString(&st.Avatar, in.Avatar)
	if in.Email != nil {
		st.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Estado != nil {
		st.Estado = domain.StudentStatus(strings.ToLower(strings.TrimSpace(*in.Estado)))
	}
	if in.Becado != nil {
		st.Becado = *in.Becado
	}
	if in.Competitivo != nil {
		st.Competitivo = *in.Competitivo
	}
	if in.Federado != nil {
		st.Federado = *in.Federado
	}

	if in.FechaNacimiento != nil {
		if strings.TrimSpace(*in.FechaNacimiento) == "" {
			st.FechaNacimiento = nil
		} else {
			born, err := parseDate("fechaNacimiento", *in.FechaNacimiento)
			if err != nil {
				return err
			}
			st.FechaNacimiento = &born
		}
	}
	if in.FechaIngreso != nil && strings.TrimSpace(*in.FechaIngreso) != "" {
		joined, err := parseDate("fechaIngreso", *in.FechaIngreso)
		if err != nil {
			return err
		}
		st.FechaIngreso = joined
	}
	return nil
}
