package model

import "time"

type Claim struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"not null;index" json:"company_id"`
	ClaimNumber string    `gorm:"size:64;not null;index" json:"claim_number"`
	Claimant    string    `gorm:"size:128;not null" json:"claimant"`
	Status      string    `gorm:"size:32;not null;default:open" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
