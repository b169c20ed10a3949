package model

import "time"

// Upload event outcomes.
const (
	UploadOutcomeStored         = "stored"
	UploadOutcomeTransferFailed = "transfer_failed"
	UploadOutcomeRecordFailed   = "record_failed"
)

// UploadEvent is the audit trail for ingest outcomes. Blob transfer and the
// metadata insert are not transactional, so a record_failed event is the only
// durable pointer to an orphaned blob; a reconciliation sweep can work from
// this table.
type UploadEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClaimID     uint      `gorm:"not null;index" json:"claim_id"`
	CompanyID   uint      `gorm:"not null" json:"company_id"`
	DocumentID  *uint     `gorm:"index" json:"document_id,omitempty"`
	SourceToken string    `gorm:"size:64;index" json:"source_token"`
	FileName    string    `gorm:"size:256;not null" json:"file_name"`
	StoragePath string    `gorm:"size:512" json:"storage_path"`
	SizeBytes   int64     `json:"size_bytes"`
	Outcome     string    `gorm:"size:32;not null;index" json:"outcome"`
	Detail      string    `gorm:"type:text" json:"detail"`
	CreatedAt   time.Time `json:"created_at"`
}
