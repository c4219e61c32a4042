package store

import (
	"context"
	"fmt"

	"fincas/models"

	"gorm.io/gorm"
)

type WorkerStore struct {
	db *gorm.DB
}

func NewWorkerStore(db *gorm.DB) *WorkerStore {
	return &WorkerStore{db: db}
}

func (s *WorkerStore) List(ctx context.Context, companyID string) ([]models.Worker, error) {
	var workers []models.Worker
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("nombre asc").
		Find(&workers).Error
	return workers, err
}

func (s *WorkerStore) Create(ctx context.Context, worker *models.Worker) error {
	if worker.Nombre == "" || worker.Cedula == "" {
		return fmt.Errorf("worker nombre and cedula are required")
	}
	return s.db.WithContext(ctx).Create(worker).Error
}

func (s *WorkerStore) Update(ctx context.Context, worker *models.Worker) error {
	if worker.Nombre == "" || worker.Cedula == "" {
		return fmt.Errorf("worker nombre and cedula are required")
	}
	result := s.db.WithContext(ctx).Model(&models.Worker{}).
		Where("id = ? AND company_id = ?", worker.ID, worker.CompanyID).
		Select("nombre", "cedula", "estado").
		Updates(worker)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *WorkerStore) Delete(ctx context.Context, companyID string, id uint) error {
	result := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&models.Worker{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
