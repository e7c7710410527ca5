package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	Admin        UserRole = "admin"
	Trainer      UserRole = "entrenador"
	Maintenance  UserRole = "mantenimiento"
	Subcommittee UserRole = "subcomision"
)

// Roles is the authoritative role set, shared by persistence and the role gate.
var Roles = []UserRole{Admin, Trainer, Maintenance, Subcommittee}

// NormalizeRole lower-cases and trims a role claim.
func NormalizeRole(role string) UserRole {
	return UserRole(strings.ToLower(strings.TrimSpace(role)))
}

func (r UserRole) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

const (
	MinPasswordLength = 6
	ResetTokenTTL     = time.Hour
)

type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre           string     `gorm:"size:120;not null" json:"nombre" validate:"required,max=120"`
	Apellido         string     `gorm:"size:120" json:"apellido" validate:"max=120"`
	DNI              *string    `gorm:"size:20;uniqueIndex" json:"dni,omitempty" validate:"omitempty,max=20"`
	Email            string     `gorm:"size:320;uniqueIndex;not null" json:"email" validate:"required,email"`
	Role             UserRole   `gorm:"size:20;not null" json:"role" validate:"required,oneof=admin entrenador mantenimiento subcomision"`
	PasswordHash     string     `gorm:"size:255;not null" json:"-"`
	ResetToken       *string    `gorm:"size:64;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// UserSummary is the public projection used when a user is embedded in another record.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Nombre   string    `json:"nombre"`
	Apellido string    `json:"apellido"`
	Email    string    `json:"email"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Nombre: u.Nombre, Apellido: u.Apellido, Email: u.Email}
}

type UserInput struct {
	Nombre   *string `json:"nombre"`
	Apellido *string `json:"apellido"`
	DNI      *string `json:"dni"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password,omitempty"`
}

// Principal is the caller identity derived from a session token or the legacy headers.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   UserRole
}

// DisplayName falls back from name to email to "Unknown".
func (p Principal) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if email := strings.TrimSpace(p.Email); email != "" {
		return email
	}
	return UnknownRequester
}

// HasRole reports whether the principal's normalized role is one of allowed.
func (p Principal) HasRole(allowed ...UserRole) bool {
	role := NormalizeRole(string(p.Role))
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

type PasswordReset struct {
	Token     string
	ExpiresAt time.Time
	Emailed   bool
}
