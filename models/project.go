package models

import (
	"fmt"
	"sort"
	"time"
)

// Defaults applied when a project is created without explicit configuration.
// Rest days are weekday indices, 0 = Sunday.
const (
	DefaultWeeklyOvertimeLimit = 8
	DefaultDailyOvertimeLimit  = 2
	DefaultHourlyRate          = 5
)

func DefaultRestDays() []int {
	return []int{0, 6}
}

type Project struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"-"`
	CompanyID           string    `gorm:"not null;size:100;uniqueIndex:idx_company_project_name" json:"companyId"`
	Name                string    `gorm:"not null;size:100;uniqueIndex:idx_company_project_name" json:"name"`
	RestDays            []int     `gorm:"serializer:json" json:"restDays"`
	WeeklyOvertimeLimit float64   `gorm:"not null" json:"weeklyOvertimeLimit"`
	DailyOvertimeLimit  float64   `gorm:"not null" json:"dailyOvertimeLimit"`
	HourlyRate          float64   `gorm:"not null" json:"hourlyRate"`

	Records []OvertimeRecord `gorm:"foreignKey:ProjectID" json:"records,omitempty"`
}

// NormalizeRestDays deduplicates and sorts a rest-day set, rejecting
// indices outside [0,6].
func NormalizeRestDays(days []int) ([]int, error) {
	seen := make(map[int]bool)
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("rest day %d out of range [0,6]", d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.WeeklyOvertimeLimit < 0 || p.DailyOvertimeLimit < 0 {
		return fmt.Errorf("overtime limits must be non-negative")
	}
	if p.HourlyRate < 0 {
		return fmt.Errorf("hourly rate must be non-negative")
	}
	days, err := NormalizeRestDays(p.RestDays)
	if err != nil {
		return err
	}
	p.RestDays = days
	return nil
}
