package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportOpen     ReportStatus = "abierto"
	ReportInRepair ReportStatus = "en_reparacion"
	ReportClosed   ReportStatus = "cerrado"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportOpen, ReportInRepair, ReportClosed:
		return true
	}
	return false
}

type BoatReport struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	BoatID      uuid.UUID    `gorm:"type:uuid;index;not null" json:"boatId" validate:"required"`
	Descripcion string       `gorm:"type:text;not null" json:"descripcion" validate:"required,max=2000"`
	FotoURL     string       `gorm:"size:500" json:"fotoURL,omitempty"`
	Fecha       time.Time    `gorm:"not null" json:"fecha"`
	Status      ReportStatus `gorm:"size:20;not null" json:"status" validate:"required,oneof=abierto en_reparacion cerrado"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ReportRequest struct {
	BoatID      string
	Descripcion string
	Fecha       string
	Hora        string
	Foto        *Upload
}
