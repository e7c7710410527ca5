package domain

import (
	"time"

	"github.com/google/uuid"
)

type StudentStatus string

const (
	StudentActive   StudentStatus = "activo"
	StudentInactive StudentStatus = "inactivo"
)

type Student struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre          string        `gorm:"size:120;not null" json:"nombre" validate:"required,max=120"`
	Apellido        string        `gorm:"size:120;not null" json:"apellido" validate:"required,max=120"`
	DNI             string        `gorm:"size:20;uniqueIndex;not null" json:"dni" validate:"required,max=20"`
	Categoria       string        `gorm:"size:60" json:"categoria" validate:"max=60"`
	Email           string        `gorm:"size:320" json:"email,omitempty" validate:"omitempty,email"`
	Telefono        string        `gorm:"size:40" json:"telefono,omitempty" validate:"max=40"`
	Direccion       string        `gorm:"size:200" json:"direccion,omitempty" validate:"max=200"`
	FechaNacimiento *time.Time    `json:"fechaNacimiento,omitempty"`
	Becado          bool          `gorm:"not null" json:"becado"`
	Competitivo     bool          `gorm:"not null" json:"competitivo"`
	Federado        bool          `gorm:"not null" json:"federado"`
	Estado          StudentStatus `gorm:"size:20;not null" json:"estado" validate:"required,oneof=activo inactivo"`
	FechaIngreso    time.Time     `gorm:"not null" json:"fechaIngreso"`
	Avatar          string        `gorm:"size:500" json:"avatar,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type StudentSummary struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	DNI       string    `json:"dni"`
	Categoria string    `json:"categoria"`
}

func (s *Student) Summary() *StudentSummary {
	return &StudentSummary{ID: s.ID, Nombre: s.Nombre, Apellido: s.Apellido, DNI: s.DNI, Categoria: s.Categoria}
}
