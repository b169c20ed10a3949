package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"claimgate/internal/model"
)

type ClaimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) Create(claim *model.Claim) error {
	if err := r.db.Create(claim).Error; err != nil {
		return fmt.Errorf("create claim failed: %w", err)
	}
	return nil
}

func (r *ClaimRepository) GetByIDAndCompanyID(id, companyID uint) (*model.Claim, error) {
	var claim model.Claim
	if err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query claim failed: %w", err)
	}
	return &claim, nil
}

func (r *ClaimRepository) ListByCompanyID(companyID uint) ([]model.Claim, error) {
	var list []model.Claim
	if err := r.db.Where("company_id = ?", companyID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list claims failed: %w", err)
	}
	return list, nil
}
