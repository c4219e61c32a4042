package store

import (
	"context"
	"time"

	"fincas/models"

	"gorm.io/gorm"
)

// DeleteBatchSize bounds each chunk of a range deletion. The backing store
// may cap batch mutation size; deletion loops in chunks until no matches
// remain.
const DeleteBatchSize = 450

type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// CreateBatch persists all records in one transaction, each tagged with the
// owning project. All-or-nothing: a failed write stages no records.
func (s *RecordStore) CreateBatch(ctx context.Context, projectID uint, records []models.OvertimeRecord) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		records[i].ID = 0
		records[i].ProjectID = projectID
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&records, 100).Error
	})
}

// RecordFilter narrows a listing. From/To bound fecha as [From, To);
// Cedula and Nombre are exact matches.
type RecordFilter struct {
	From   *time.Time
	To     *time.Time
	Cedula string
	Nombre string
}

func (s *RecordStore) List(ctx context.Context, projectID uint, filter RecordFilter) ([]models.OvertimeRecord, error) {
	query := s.db.WithContext(ctx).Where("project_id = ?", projectID)
	if filter.From != nil {
		query = query.Where("fecha >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("fecha < ?", *filter.To)
	}
	if filter.Cedula != "" {
		query = query.Where("cedula = ?", filter.Cedula)
	}
	if filter.Nombre != "" {
		query = query.Where("nombre_trabajador = ?", filter.Nombre)
	}

	var records []models.OvertimeRecord
	err := query.Order("fecha asc, id asc").Find(&records).Error
	return records, err
}

func (s *RecordStore) Get(ctx context.Context, projectID, id uint) (*models.OvertimeRecord, error) {
	var record models.OvertimeRecord
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update rewrites the editable fields of a record. The project
// back-reference is never independently mutable.
func (s *RecordStore) Update(ctx context.Context, record *models.OvertimeRecord) error {
	result := s.db.WithContext(ctx).Model(&models.OvertimeRecord{}).
		Where("id = ? AND project_id = ?", record.ID, record.ProjectID).
		Select("fecha", "nombre_trabajador", "cedula", "hora_ingreso", "hora_salida").
		Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, projectID, id uint) error {
	result := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.OvertimeRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRange removes every record for the project with fecha in [from, to),
// deleting in bounded batches until no matches remain. The count deleted so
// far is returned even when a chunk fails or the context is cancelled
// mid-loop; a partial deletion is surfaced, never hidden.
func (s *RecordStore) DeleteRange(ctx context.Context, projectID uint, from, to time.Time, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DeleteBatchSize
	}

	var deleted int64
	for {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}

		var ids []uint
		err := s.db.WithContext(ctx).Model(&models.OvertimeRecord{}).
			Where("project_id = ? AND fecha >= ? AND fecha < ?", projectID, from, to).
			Order("id").Limit(batchSize).Pluck("id", &ids).Error
		if err != nil {
			return deleted, err
		}
		if len(ids) == 0 {
			return deleted, nil
		}

		result := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.OvertimeRecord{})
		if result.Error != nil {
			return deleted, result.Error
		}
		deleted += result.RowsAffected

		if len(ids) < batchSize {
			return deleted, nil
		}
	}
}
