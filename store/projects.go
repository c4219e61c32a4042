package store

import (
	"context"
	"errors"

	"fincas/models"

	"gorm.io/gorm"
)

var ErrDuplicateName = errors.New("a project with that name already exists")

type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) List(ctx context.Context, companyID string) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name asc").
		Find(&projects).Error
	return projects, err
}

func (s *ProjectStore) Get(ctx context.Context, companyID string, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).Where("company_id = ?", companyID).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Create inserts a new project. The pre-insert existence query gives a
// friendly error; the composite unique index on (company_id, name) is what
// actually enforces uniqueness under concurrent creates.
func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	var count int64
	s.db.WithContext(ctx).Model(&models.Project{}).
		Where("company_id = ? AND name = ?", project.CompanyID, project.Name).
		Count(&count)
	if count > 0 {
		return ErrDuplicateName
	}

	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

// Update rewrites all configurable fields except ID and CreatedAt.
func (s *ProjectStore) Update(ctx context.Context, project *models.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND company_id = ?", project.ID, project.CompanyID).
		Select("name", "rest_days", "weekly_overtime_limit", "daily_overtime_limit", "hourly_rate").
		Updates(project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the project together with all of its records in one
// transaction (cascading delete).
func (s *ProjectStore) Delete(ctx context.Context, companyID string, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("company_id = ?", companyID).First(&project, id).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.OvertimeRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}
