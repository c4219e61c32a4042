package models

import (
	"regexp"
	"time"
)

// OvertimeRecord is one worker's clock-in/clock-out pair for one date,
// owned by exactly one project for its entire lifetime.
type OvertimeRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
	ProjectID        uint      `gorm:"not null;index" json:"projectId"`
	Fecha            time.Time `gorm:"not null;index" json:"fecha"`
	NombreTrabajador string    `gorm:"not null;size:200" json:"nombreTrabajador"`
	Cedula           string    `gorm:"not null;size:50" json:"cedula"`
	HoraIngreso      string    `gorm:"size:20" json:"horaIngreso"`
	HoraSalida       string    `gorm:"size:20" json:"horaSalida"`
}

// timeRe accepts HH:MM (24h) or HH:MM AM/PM. Only the manual-edit path
// validates time strings; bulk-imported values pass through as-is.
var timeRe = regexp.MustCompile(`^(?:[01][0-9]|2[0-3]):[0-5][0-9]$|^(?i:(?:0[1-9]|1[0-2]):[0-5][0-9] (?:AM|PM))$`)

func IsValidTime(s string) bool {
	return timeRe.MatchString(s)
}
