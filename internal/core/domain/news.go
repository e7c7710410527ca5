package domain

import (
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Titulo      string    `gorm:"size:200;not null" json:"titulo" validate:"required,max=200"`
	Fecha       time.Time `gorm:"not null" json:"fecha"`
	Descripcion string    `gorm:"type:text" json:"descripcion" validate:"max=10000"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Titulo      string    `gorm:"size:200;not null" json:"titulo" validate:"required,max=200"`
	Fecha       time.Time `gorm:"not null" json:"fecha"`
	Descripcion string    `gorm:"type:text" json:"descripcion" validate:"max=10000"`
	Imagen      string    `gorm:"size:500" json:"imagen,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
