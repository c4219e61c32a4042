package database

import (
	"strings"

	"fincas/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the database and migrates the schema. A postgres:// DSN uses
// the postgres driver; anything else is treated as a sqlite file path.
func Init(dsn string) error {
	dialector := dialectorFor(dsn)

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.OvertimeRecord{},
		&models.Worker{},
	)
}

// SeedAdmin creates the default admin account if no user with that email
// exists yet.
func SeedAdmin(email, password, companyID string) error {
	var count int64
	DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:              email,
		PasswordHash:       string(hashedPassword),
		CompanyID:          companyID,
		MustChangePassword: true,
	}

	if result := DB.Create(&admin); result.Error != nil {
		return result.Error
	}

	logrus.WithField("email", email).Info("default admin user created")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
