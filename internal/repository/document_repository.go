package repository

import (
	"fmt"

	"gorm.io/gorm"

	"claimgate/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) ListByClaimID(claimID uint) ([]model.Document, error) {
	var list []model.Document
	if err := r.db.Where("claim_id = ?", claimID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return list, nil
}

func (r *DocumentRepository) ListByCompanyID(companyID uint) ([]model.Document, error) {
	var list []model.Document
	if err := r.db.Where("company_id = ?", companyID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list documents by company failed: %w", err)
	}
	return list, nil
}
