package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"claimgate/internal/model"
)

// UploadTokenRepository persists capability tokens. Tokens are insert-only:
// there is no update or delete path, and expiry is enforced at validation
// time rather than by reaping rows.
type UploadTokenRepository struct {
	db *gorm.DB
}

func NewUploadTokenRepository(db *gorm.DB) *UploadTokenRepository {
	return &UploadTokenRepository{db: db}
}

func (r *UploadTokenRepository) Create(token *model.UploadToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("create upload token failed: %w", err)
	}
	return nil
}

func (r *UploadTokenRepository) GetByToken(token string) (*model.UploadToken, error) {
	var t model.UploadToken
	if err := r.db.Where("token = ?", token).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query upload token failed: %w", err)
	}
	return &t, nil
}

func (r *UploadTokenRepository) ListByClaimID(claimID uint) ([]model.UploadToken, error) {
	var list []model.UploadToken
	if err := r.db.Where("claim_id = ?", claimID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list upload tokens failed: %w", err)
	}
	return list, nil
}
