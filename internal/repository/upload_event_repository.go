package repository

import (
	"fmt"

	"gorm.io/gorm"

	"claimgate/internal/model"
)

type UploadEventRepository struct {
	db *gorm.DB
}

func NewUploadEventRepository(db *gorm.DB) *UploadEventRepository {
	return &UploadEventRepository{db: db}
}

func (r *UploadEventRepository) Create(evt *model.UploadEvent) error {
	if err := r.db.Create(evt).Error; err != nil {
		return fmt.Errorf("create upload event failed: %w", err)
	}
	return nil
}

// ListByOutcome supports the reconciliation sweep: record_failed rows point
// at blobs that were stored but never got a document record.
func (r *UploadEventRepository) ListByOutcome(outcome string) ([]model.UploadEvent, error) {
	var list []model.UploadEvent
	if err := r.db.Where("outcome = ?", outcome).Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list upload events failed: %w", err)
	}
	return list, nil
}
