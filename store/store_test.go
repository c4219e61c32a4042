package store

import (
	"testing"
	"time"

	"fincas/database"
	"fincas/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory database migrated with the authoritative
// schema from the database package.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A pooled second connection would see its own empty in-memory
	// database, so pin the pool to one connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedProject(t *testing.T, db *gorm.DB, companyID, name string) *models.Project {
	t.Helper()

	project := models.Project{
		CompanyID:           companyID,
		Name:                name,
		RestDays:            models.DefaultRestDays(),
		WeeklyOvertimeLimit: models.DefaultWeeklyOvertimeLimit,
		DailyOvertimeLimit:  models.DefaultDailyOvertimeLimit,
		HourlyRate:          models.DefaultHourlyRate,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return &project
}

func seedRecord(t *testing.T, db *gorm.DB, projectID uint, fecha time.Time, nombre, cedula string) {
	t.Helper()

	record := models.OvertimeRecord{
		ProjectID:        projectID,
		Fecha:            fecha,
		NombreTrabajador: nombre,
		Cedula:           cedula,
		HoraIngreso:      "07:00",
		HoraSalida:       "15:00",
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
}

func countRecords(t *testing.T, db *gorm.DB, projectID uint) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.OvertimeRecord{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count records: %v", err)
	}
	return count
}
