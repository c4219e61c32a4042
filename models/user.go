package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Email              string         `gorm:"uniqueIndex;not null;size:200" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	CompanyID          string         `gorm:"not null;index;size:100" json:"company_id"`
	MustChangePassword bool           `gorm:"default:false" json:"must_change_password"`
}
