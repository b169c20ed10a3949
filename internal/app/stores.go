package app

import (
	"context"
	"io"

	"claimgate/internal/model"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them in production; tests swap in in-memory fakes.

type UserStore interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
}

type CompanyStore interface {
	Create(company *model.Company) error
	GetByName(name string) (*model.Company, error)
	GetByID(id uint) (*model.Company, error)
}

type ClaimStore interface {
	Create(claim *model.Claim) error
	GetByIDAndCompanyID(id, companyID uint) (*model.Claim, error)
	ListByCompanyID(companyID uint) ([]model.Claim, error)
}

type TokenStore interface {
	Create(token *model.UploadToken) error
	GetByToken(token string) (*model.UploadToken, error)
	ListByClaimID(claimID uint) ([]model.UploadToken, error)
}

type DocumentStore interface {
	Create(doc *model.Document) error
	ListByClaimID(claimID uint) ([]model.Document, error)
	ListByCompanyID(companyID uint) ([]model.Document, error)
}

// EventStore reads back the audit trail the queue worker persists.
type EventStore interface {
	ListByOutcome(outcome string) ([]model.UploadEvent, error)
}

// ObjectStore is the durable content store for document blobs.
type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}

// ScopeCache holds validated token scopes for the public hot path.
type ScopeCache interface {
	GetScope(ctx context.Context, token string) (*model.TokenScope, bool, error)
	SetScope(ctx context.Context, scope *model.TokenScope) error
}

// UploadEventPublisher carries ingest outcomes to the audit queue.
type UploadEventPublisher interface {
	Publish(ctx context.Context, evt model.UploadEvent) error
}
