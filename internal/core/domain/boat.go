package domain

import (
	"time"

	"github.com/google/uuid"
)

type BoatType string

const (
	BoatSingle    BoatType = "single"
	BoatDoble     BoatType = "doble"
	BoatCuadruple BoatType = "cuadruple"
	BoatYola      BoatType = "yola"
	BoatOtros     BoatType = "otros"
)

type BoatStatus string

const (
	BoatActive       BoatStatus = "activo"
	BoatMaintenance  BoatStatus = "mantenimiento"
	BoatOutOfService BoatStatus = "fuera_servicio"
)

// swagger:model domain.Boat
type Boat struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string     `gorm:"size:120;not null" json:"name" validate:"required,max=120"`
	Type       BoatType   `gorm:"size:20;not null" json:"type" validate:"required,oneof=single doble cuadruple yola otros"`
	Status     BoatStatus `gorm:"size:20;not null" json:"status" validate:"required,oneof=activo mantenimiento fuera_servicio"`
	IntakeDate time.Time  `gorm:"not null" json:"intakeDate"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
