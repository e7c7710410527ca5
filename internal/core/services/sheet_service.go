package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type SheetService struct {
	sheetRepo   ports.SheetRepository
	studentRepo ports.StudentRepository
	userRepo    ports.UserRepository
	logger      ports.LoggerPort
	validate    *validator.Validate
	now         func() time.Time
}

type SheetInput struct {
	StudentID     *string `json:"studentId"`
	TrainerID     *string `json:"trainerId"`
	Fecha         *string `json:"fecha"`
	Postura       *int    `json:"postura"`
	Remada        *int    `json:"remada"`
	Equilibrio    *int    `json:"equilibrio"`
	Coordinacion  *int    `json:"coordinacion"`
	Resistencia   *int    `json:"resistencia"`
	Velocidad     *int    `json:"velocidad"`
	Observaciones *string `json:"observaciones"`
}

func NewSheetService(
	sheetRepo ports.SheetRepository,
	studentRepo ports.StudentRepository,
	userRepo ports.UserRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *SheetService {
	return &SheetService{
		sheetRepo:   sheetRepo,
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
		validate:    validate,
		now:         time.Now,
	}
}

func (s *SheetService) CreateSheet(ctx context.Context, in SheetInput) (*domain.TechnicalSheet, error) {
	if in.StudentID == nil || strings.TrimSpace(*in.StudentID) == "" {
		return nil, fmt.Errorf("%w: studentId is required", domain.ErrValidation)
	}
	if in.TrainerID == nil || strings.TrimSpace(*in.TrainerID) == "" {
		return nil, fmt.Errorf("%w: trainerId is required", domain.ErrValidation)
	}

	sheet := &domain.TechnicalSheet{ID: uuid.New(), Fecha: s.now().UTC()}
	if err := applySheetInput(sheet, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, sheet); err != nil {
		return nil, err
	}
	if err := s.populate(ctx, sheet); err != nil {
		return nil, err
	}

	created, err := s.sheetRepo.CreateSheet(ctx, sheet)
	if err != nil {
		s.logger.Error("Failed to create technical sheet", map[string]interface{}{
			"error":      err.Error(),
			"student_id": sheet.StudentID,
		})
		return nil, err
	}

	s.logger.Info("Technical sheet created", map[string]interface{}{
		"sheet_id":   created.ID,
		"student_id": created.StudentID,
		"trainer_id": created.TrainerID,
	})
	return created, nil
}

func (s *SheetService) GetSheetByID(ctx context.Context, sheetID string) (*domain.TechnicalSheet, error) {
	id, err := parseID("technical sheet", sheetID)
	if err != nil {
		return nil, err
	}
	sheet, err := s.sheetRepo.GetSheetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateLenient(ctx, sheet)
	return sheet, nil
}

func (s *SheetService) ListSheets(ctx context.Context, studentID string) ([]*domain.TechnicalSheet, error) {
	var filter *uuid.UUID
	if strings.TrimSpace(studentID) != "" {
		id, err := parseID("student", studentID)
		if err != nil {
			return nil, err
		}
		filter = &id
	}

	sheets, err := s.sheetRepo.ListSheets(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, sheet := range sheets {
		s.populateLenient(ctx, sheet)
	}
	return sheets, nil
}

func (s *SheetService) UpdateSheet(ctx context.Context, sheetID string, in SheetInput) (*domain.TechnicalSheet, error) {
	id, err := parseID("technical sheet", sheetID)
	if err != nil {
		return nil, err
	}
	sheet, err := s.sheetRepo.GetSheetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySheetInput(sheet, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, sheet); err != nil {
		return nil, err
	}
	if err := s.populate(ctx, sheet); err != nil {
		return nil, err
	}

	updated, err := s.sheetRepo.UpdateSheet(ctx, sheet)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Technical sheet updated", map[string]interface{}{
		"sheet_id": id,
	})
	return updated, nil
}

func (s *SheetService) DeleteSheet(ctx context.Context, sheetID string) error {
	id, err := parseID("technical sheet", sheetID)
	if err != nil {
		return err
	}
	if err := s.sheetRepo.DeleteSheet(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Technical sheet deleted", map[string]interface{}{
		"sheet_id": id,
	})
	return nil
}

// populate fills the score average and resolves the student and trainer
// references. It fails if either reference is missing.
func (s *SheetService) populate(ctx context.Context, sheet *domain.TechnicalSheet) error {
	sheet.Promedio = sheet.Average()

	student, err := s.studentRepo.GetStudentByID(ctx, sheet.StudentID)
	if err != nil {
		return err
	}
	trainer, err := s.userRepo.GetUserByID(ctx, sheet.TrainerID)
	if err != nil {
		return err
	}
	sheet.Student = student.Summary()
	sheet.Trainer = trainer.Summary()
	return nil
}

// populateLenient is used on reads, where a deleted student or trainer leaves the reference unresolved.
func (s *SheetService) populateLenient(ctx context.Context, sheet *domain.TechnicalSheet) {
	if err := s.populate(ctx, sheet); err != nil {
		s.logger.Debug("Technical sheet reference not resolved", map[string]interface{}{
			"sheet_id": sheet.ID,
			"error":    err.Error(),
		})
	}
}

func applySheetInput(sheet *domain.TechnicalSheet, in SheetInput) error {
	if in.StudentID != nil {
		id, err := parseRef("student", *in.StudentID)
		if err != nil {
			return err
		}
		sheet.StudentID = id
	}
	if in.TrainerID != nil {
		id, err := parseRef("trainer", *in.TrainerID)
		if err != nil {
			return err
		}
		sheet.TrainerID = id
	}
	if in.Fecha != nil && strings.TrimSpace(*in.Fecha) != "" {
		fecha, err := parseDate("fecha", *in.Fecha)
		if err != nil {
			return err
		}
		sheet.Fecha = fecha
	}

	scores := []struct {
		dst *int
		src *int
	}{
		{&sheet.Postura, in.Postura},
		{&sheet.Remada, in.Remada},
		{&sheet.Equilibrio, in.Equilibrio},
		{&sheet.Coordinacion, in.Coordinacion},
		{&sheet.Resistencia, in.Resistencia},
		{&sheet.Velocidad, in.Velocidad},
	}
	for _, sc := range scores {
		if sc.src != nil {
			*sc.dst = *sc.src
		}
	}
	if in.Observaciones != nil {
		sheet.Observaciones = strings.TrimSpace(*in.Observaciones)
	}
	return nil
}
