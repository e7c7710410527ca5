package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NewsInput carries the fields shared by announcements and events.
type NewsInput struct {
	Titulo      *string        `json:"titulo"`
	Fecha       *string        `json:"fecha"`
	Descripcion *string        `json:"descripcion"`
	Imagen      *domain.Upload `json:"-"`
}

type AnnouncementService struct {
	announcementRepo ports.AnnouncementRepository
	logger           ports.LoggerPort
	validate         *validator.Validate
	now              func() time.Time
}

func NewAnnouncementService(announcementRepo ports.AnnouncementRepository, logger ports.LoggerPort, validate *validator.Validate) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		logger:           logger,
		validate:         validate,
		now:              time.Now,
	}
}

func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, in NewsInput) (*domain.Announcement, error) {
	a := &domain.Announcement{ID: uuid.New(), Fecha: s.now().UTC()}
	if err := applyNewsInput(&a.Titulo, &a.Fecha, &a.Descripcion, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, a); err != nil {
		return nil, err
	}

	created, err := s.announcementRepo.CreateAnnouncement(ctx, a)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Announcement created", map[string]interface{}{
		"announcement_id": created.ID,
	})
	return created, nil
}

func (s *AnnouncementService) GetAnnouncementByID(ctx context.Context, announcementID string) (*domain.Announcement, error) {
	id, err := parseID("announcement", announcementID)
	if err != nil {
		return nil, err
	}
	return s.announcementRepo.GetAnnouncementByID(ctx, id)
}

func (s *AnnouncementService) ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error) {
	return s.announcementRepo.ListAnnouncements(ctx)
}

func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, announcementID string, in NewsInput) (*domain.Announcement, error) {
	id, err := parseID("announcement", announcementID)
	if err != nil {
		return nil, err
	}
	a, err := s.announcementRepo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyNewsInput(&a.Titulo, &a.Fecha, &a.Descripcion, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, a); err != nil {
		return nil, err
	}
	return s.announcementRepo.UpdateAnnouncement(ctx, a)
}

func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	id, err := parseID("announcement", announcementID)
	if err != nil {
		return err
	}
	if err := s.announcementRepo.DeleteAnnouncement(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Announcement deleted", map[string]interface{}{
		"announcement_id": id,
	})
	return nil
}

type EventService struct {
	eventRepo ports.EventRepository
	files     ports.FileStore
	logger    ports.LoggerPort
	validate  *validator.Validate
	now       func() time.Time
}

func NewEventService(eventRepo ports.EventRepository, files ports.FileStore, logger ports.LoggerPort, validate *validator.Validate) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		files:     files,
		logger:    logger,
		validate:  validate,
		now:       time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, in NewsInput) (*domain.Event, error) {
	ev := &domain.Event{ID: uuid.New(), Fecha: s.now().UTC()}
	if err := applyNewsInput(&ev.Titulo, &ev.Fecha, &ev.Descripcion, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, ev); err != nil {
		return nil, err
	}
	if in.Imagen != nil {
		path, err := s.saveImage(ev.ID, in.Imagen)
		if err != nil {
			return nil, err
		}
		ev.Imagen = path
	}

	created, err := s.eventRepo.CreateEvent(ctx, ev)
	if err != nil {
		s.removeImage(ev.Imagen)
		return nil, err
	}

	s.logger.Info("Event created", map[string]interface{}{
		"event_id":  created.ID,
		"has_image": created.Imagen != "",
	})
	return created, nil
}

func (s *EventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	id, err := parseID("event", eventID)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.GetEventByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.eventRepo.ListEvents(ctx)
}

// UpdateEvent replaces the stored image when a new one is uploaded.
func (s *EventService) UpdateEvent(ctx context.Context, eventID string, in NewsInput) (*domain.Event, error) {
	id, err := parseID("event", eventID)
	if err != nil {
		return nil, err
	}
	ev, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyNewsInput(&ev.Titulo, &ev.Fecha, &ev.Descripcion, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, ev); err != nil {
		return nil, err
	}

	previous := ev.Imagen
	if in.Imagen != nil {
		path, err := s.saveImage(ev.ID, in.Imagen)
		if err != nil {
			return nil, err
		}
		ev.Imagen = path
	}

	updated, err := s.eventRepo.UpdateEvent(ctx, ev)
	if err != nil {
		if ev.Imagen != previous {
			s.removeImage(ev.Imagen)
		}
		return nil, err
	}
	if updated.Imagen != previous {
		s.removeImage(previous)
	}
	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := parseID("event", eventID)
	if err != nil {
		return err
	}
	ev, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.eventRepo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.removeImage(ev.Imagen)

	s.logger.Info("Event deleted", map[string]interface{}{
		"event_id": id,
	})
	return nil
}

func (s *EventService) saveImage(eventID uuid.UUID, img *domain.Upload) (string, error) {
	if !strings.HasPrefix(strings.ToLower(img.ContentType), "image/") {
		return "", fmt.Errorf("%w: imagen must be an image", domain.ErrValidation)
	}
	name := fmt.Sprintf("event-%s-%d%s", eventID, s.now().UnixMilli(), strings.ToLower(filepath.Ext(img.Filename)))
	path, err := s.files.Save(name, img.Content)
	if err != nil {
		s.logger.Error("Failed to store event image", map[string]interface{}{
			"error":    err.Error(),
			"event_id": eventID,
		})
		return "", fmt.Errorf("%w: %s", domain.ErrUpload, err.Error())
	}
	return path, nil
}

func (s *EventService) removeImage(path string) {
	if path == "" {
		return
	}
	if err := s.files.Remove(path); err != nil {
		s.logger.Warn("Failed to remove event image", map[string]interface{}{
			"error": err.Error(),
			"path":  path,
		})
	}
}

func applyNewsInput(titulo *string, fecha *time.Time, descripcion *string, in NewsInput) error {
	if in.Titulo != nil {
		*titulo = strings.TrimSpace(*in.Titulo)
	}
	if in.Descripcion != nil {
		*descripcion = strings.TrimSpace(*in.Descripcion)
	}
	if in.Fecha != nil && strings.TrimSpace(*in.Fecha) != "" {
		parsed, err := parseDate("fecha", *in.Fecha)
		if err != nil {
			return err
		}
		*fecha = parsed.UTC()
	}
	return nil
}
