package models

import (
	"time"

	"gorm.io/gorm"
)

// Worker statuses are free-form labels; these are the ones the roster UI
// offers by default.
const (
	WorkerActivo   = "activo"
	WorkerRetirado = "retirado"
)

// Worker is a roster entry scoped to a company. It is not linked to
// overtime records by foreign key; association is by matching cedula or
// name text.
type Worker struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CompanyID string         `gorm:"not null;index;size:100" json:"companyId"`
	Nombre    string         `gorm:"not null;size:200" json:"nombre"`
	Cedula    string         `gorm:"not null;size:50" json:"cedula"`
	Estado    string         `gorm:"size:50" json:"estado"`
}
