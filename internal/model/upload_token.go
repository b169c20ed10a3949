package model

import "time"

// Token kinds. A single-field token authorizes uploads against one named form
// field on a claim; a batch token authorizes a multi-file session.
const (
	TokenKindSingleField = "single_field"
	TokenKindBatch       = "batch"
)

// BatchFieldLabel is the field label recorded on batch tokens.
const BatchFieldLabel = "batch"

// UploadToken is a capability record: the opaque Token value grants
// time-limited upload rights against one claim. Rows are immutable after
// creation and never reaped; validation rejects on expiry.
type UploadToken struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Token          string    `gorm:"size:64;not null;uniqueIndex" json:"token"`
	ClaimID        uint      `gorm:"not null;index" json:"claim_id"`
	CompanyID      uint      `gorm:"not null;index" json:"company_id"`
	FieldLabel     string    `gorm:"size:128;not null" json:"field_label"`
	Kind           string    `gorm:"size:16;not null" json:"kind"`
	IssuedByUserID uint      `gorm:"not null" json:"issued_by_user_id"`
	ExpiresAt      time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Expired reports whether the token is no longer valid at the given time.
// A token born with zero TTL is expired from the start.
func (t *UploadToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenScope is the authorization context a validated token grants. It is
// what gets cached on the public hot path, so it carries everything the
// upload flow needs without another token lookup.
type TokenScope struct {
	TokenID        uint      `json:"token_id"`
	Token          string    `json:"token"`
	ClaimID        uint      `json:"claim_id"`
	CompanyID      uint      `json:"company_id"`
	FieldLabel     string    `json:"field_label"`
	Kind           string    `json:"kind"`
	IssuedByUserID uint      `json:"issued_by_user_id"`
	ExpiresAt      time.Time `json:"expires_at"`
}
