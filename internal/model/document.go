package model

import "time"

// Document is the metadata record for one stored file. Rows are created
// exactly once per successfully stored blob and never updated.
type Document struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ClaimID          uint      `gorm:"not null;index" json:"claim_id"`
	CompanyID        uint      `gorm:"not null;index" json:"company_id"`
	FileName         string    `gorm:"size:256;not null" json:"file_name"`
	StoragePath      string    `gorm:"size:512;not null" json:"storage_path"`
	StoredURL        string    `gorm:"type:text" json:"stored_url"`
	SizeBytes        int64     `gorm:"not null" json:"size_bytes"`
	ContentType      string    `gorm:"size:128" json:"content_type"`
	UploadedByUserID *uint     `gorm:"index" json:"uploaded_by_user_id,omitempty"`
	UploaderName     string    `gorm:"size:128" json:"uploader_name"`
	ViaPublicLink    bool      `gorm:"not null;default:false" json:"via_public_link"`
	SourceToken      *string   `gorm:"size:64;index" json:"source_token,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
