package ports

import (
	"context"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/google/uuid"
)

type BoatRepository interface {
	CreateBoat(ctx context.Context, boat *domain.Boat) (*domain.Boat, error)
	GetBoatByID(ctx context.Context, boatID uuid.UUID) (*domain.Boat, error)
	ListBoats(ctx context.Context) ([]*domain.Boat, error)
	UpdateBoat(ctx context.Context, boat *domain.Boat) (*domain.Boat, error)
	DeleteBoat(ctx context.Context, boatID uuid.UUID) error
}

type UsageRepository interface {
	CreateUsage(ctx context.Context, usage *domain.BoatUsage) (*domain.BoatUsage, error)
	GetUsageByID(ctx context.Context, usageID uuid.UUID) (*domain.BoatUsage, error)
	ListUsages(ctx context.Context, filter domain.UsageFilter) ([]*domain.BoatUsage, error)
	// ListActiveUsages returns usages whose estimated return is after now, optionally for one boat.
	ListActiveUsages(ctx context.Context, boatID *uuid.UUID, now time.Time) ([]*domain.BoatUsage, error)
	DeleteUsage(ctx context.Context, usageID uuid.UUID) error
}

type ReportRepository interface {
	CreateReport(ctx context.Context, report *domain.BoatReport) (*domain.BoatReport, error)
	GetReportByID(ctx context.Context, reportID uuid.UUID) (*domain.BoatReport, error)
	ListReports(ctx context.Context, boatID *uuid.UUID) ([]*domain.BoatReport, error)
	UpdateReportStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus) (*domain.BoatReport, error)
	DeleteReport(ctx context.Context, reportID uuid.UUID) error
}

type StudentRepository interface {
	CreateStudent(ctx context.Context, student *domain.Student) (*domain.Student, error)
	GetStudentByID(ctx context.Context, studentID uuid.UUID) (*domain.Student, error)
	ListStudents(ctx context.Context) ([]*domain.Student, error)
	UpdateStudent(ctx context.Context, student *domain.Student) (*domain.Student, error)
	DeleteStudent(ctx context.Context, studentID uuid.UUID) error
}

type SheetRepository interface {
	CreateSheet(ctx context.Context, sheet *domain.TechnicalSheet) (*domain.TechnicalSheet, error)
	GetSheetByID(ctx context.Context, sheetID uuid.UUID) (*domain.TechnicalSheet, error)
	ListSheets(ctx context.Context, studentID *uuid.UUID) ([]*domain.TechnicalSheet, error)
	UpdateSheet(ctx context.Context, sheet *domain.TechnicalSheet) (*domain.TechnicalSheet, error)
	DeleteSheet(ctx context.Context, sheetID uuid.UUID) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByDNI(ctx context.Context, dni string) (*domain.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*domain.User, error)
	ListUsers(ctx context.Context, role *domain.UserRole) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	GetAnnouncementByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
}

type EventRepository interface {
	CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]*domain.Event, error)
	UpdateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}
