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

type ReportService struct {
	reportRepo  ports.ReportRepository
	boatService *BoatService
	storage     ports.ObjectStorage
	logger      ports.LoggerPort
	validate    *validator.Validate
	now         func() time.Time
}

func NewReportService(
	reportRepo ports.ReportRepository,
	boatService *BoatService,
	storage ports.ObjectStorage,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		boatService: boatService,
		storage:     storage,
		logger:      logger,
		validate:    validate,
		now:         time.Now,
	}
}

// CreateReport persists a fault report. When a photo is attached it is uploaded
// first; if the upload fails nothing is stored.
func (s *ReportService) CreateReport(ctx context.Context, req domain.ReportRequest) (*domain.BoatReport, error) {
	if strings.TrimSpace(req.BoatID) == "" {
		return nil, fmt.Errorf("%w: boatId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Descripcion) == "" {
		return nil, fmt.Errorf("%w: descripcion is required", domain.ErrValidation)
	}

	fecha, err := s.reportTime(req.Fecha, req.Hora)
	if err != nil {
		return nil, err
	}
	if req.Foto != nil && !strings.HasPrefix(strings.ToLower(req.Foto.ContentType), "image/") {
		return nil, fmt.Errorf("%w: foto must be an image", domain.ErrValidation)
	}

	boatID, err := parseRef("boat", req.BoatID)
	if err != nil {
		return nil, err
	}
	boat, err := s.boatService.getBoat(ctx, boatID)
	if err != nil {
		return nil, err
	}

	report := &domain.BoatReport{
		ID:          uuid.New(),
		BoatID:      boat.ID,
		Descripcion: strings.TrimSpace(req.Descripcion),
		Fecha:       fecha,
		Status:      domain.ReportOpen,
	}
	if err := validationError(s.validate, report); err != nil {
		return nil, err
	}

	if req.Foto != nil {
		url, err := s.storage.Upload(ctx, req.Foto.Filename, req.Foto.Content)
		if err != nil {
			s.logger.Error("Failed to upload report photo", map[string]interface{}{
				"error":    err.Error(),
				"boat_id":  boat.ID,
				"filename": req.Foto.Filename,
			})
			return nil, fmt.Errorf("%w: %s", domain.ErrUpload, err.Error())
		}
		report.FotoURL = url
	}

	createdReport, err := s.reportRepo.CreateReport(ctx, report)
	if err != nil {
		s.logger.Error("Failed to create boat report", map[string]interface{}{
			"error":   err.Error(),
			"boat_id": boat.ID,
		})
		return nil, err
	}

	s.logger.Info("Boat report created", map[string]interface{}{
		"report_id": createdReport.ID,
		"boat_id":   boat.ID,
		"has_photo": createdReport.FotoURL != "",
	})
	return createdReport, nil
}

// reportTime combines fecha (YYYY-MM-DD) and hora (HH:MM) when both are given.
func (s *ReportService) reportTime(fecha, hora string) (time.Time, error) {
	fecha, hora = strings.TrimSpace(fecha), strings.TrimSpace(hora)
	if fecha == "" || hora == "" {
		return s.now().UTC(), nil
	}

	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, fecha+" "+hora, time.Local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: fecha/hora must be YYYY-MM-DD and HH:MM", domain.ErrValidation)
}

func (s *ReportService) GetReportByID(ctx context.Context, reportID string) (*domain.BoatReport, error) {
	id, err := parseID("boat report", reportID)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.GetReportByID(ctx, id)
}

func (s *ReportService) ListReports(ctx context.Context, boatID string) ([]*domain.BoatReport, error) {
	var filter *uuid.UUID
	if strings.TrimSpace(boatID) != "" {
		id, err := parseID("boat", boatID)
		if err != nil {
			return nil, err
		}
		filter = &id
	}

	reports, err := s.reportRepo.ListReports(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list boat reports", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return reports, nil
}

// UpdateStatus moves a report to any status of the lifecycle; there is no forward-only rule.
func (s *ReportService) UpdateStatus(ctx context.Context, reportID, status string) (*domain.BoatReport, error) {
	id, err := parseID("boat report", reportID)
	if err != nil {
		return nil, err
	}
	next := domain.ReportStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, fmt.Errorf("%w: status must be one of abierto, en_reparacion, cerrado", domain.ErrValidation)
	}

	report, err := s.reportRepo.UpdateReportStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Boat report status changed", map[string]interface{}{
		"report_id": id,
		"status":    next,
	})
	return report, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, reportID string) error {
	id, err := parseID("boat report", reportID)
	if err != nil {
		return err
	}
	if err := s.reportRepo.DeleteReport(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Boat report deleted", map[string]interface{}{
		"report_id": id,
	})
	return nil
}
