package domain

import (
	"time"

	"github.com/google/uuid"
)

// TechnicalSheet is a trainer's evaluation of a student. Scores range 1-10.
type TechnicalSheet struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID `gorm:"type:uuid;index;not null" json:"studentId" validate:"required"`
	TrainerID     uuid.UUID `gorm:"type:uuid;index;not null" json:"trainerId" validate:"required"`
	Fecha         time.Time `gorm:"not null" json:"fecha"`
	Postura       int       `gorm:"not null" json:"postura" validate:"min=1,max=10"`
	Remada        int       `gorm:"not null" json:"remada" validate:"min=1,max=10"`
	Equilibrio    int       `gorm:"not null" json:"equilibrio" validate:"min=1,max=10"`
	Coordinacion  int       `gorm:"not null" json:"coordinacion" validate:"min=1,max=10"`
	Resistencia   int       `gorm:"not null" json:"resistencia" validate:"min=1,max=10"`
	Velocidad     int       `gorm:"not null" json:"velocidad" validate:"min=1,max=10"`
	Observaciones string    `gorm:"type:text" json:"observaciones,omitempty" validate:"max=4000"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Promedio float64         `gorm:"-" json:"promedio"`
	Student  *StudentSummary `gorm:"-" json:"student,omitempty"`
	Trainer  *UserSummary    `gorm:"-" json:"trainer,omitempty"`
}

// Average is the mean of the six scores.
func (t *TechnicalSheet) Average() float64 {
	sum := t.Postura + t.Remada + t.Equilibrio + t.Coordinacion + t.Resistencia + t.Velocidad
	return float64(sum) / 6
}
