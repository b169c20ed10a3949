package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"claimgate/internal/model"
)

// MaxFileSizeBytes is the hard per-file ceiling, enforced before any byte
// reaches the content store. Exactly this size is accepted; one byte more is
// rejected.
const MaxFileSizeBytes = int64(5 << 20) // 5,242,880

var (
	ErrFileTooLarge   = errors.New("file too large")
	ErrTransferFailed = errors.New("file transfer failed")
	ErrStorageFailed  = errors.New("document record failed")
)

// IngestService transfers one file to the content store and records its
// metadata. The two writes are deliberately not transactional: a metadata
// failure after a successful transfer leaves the blob in place and emits a
// record_failed upload event so a reconciliation sweep can find it.
type IngestService struct {
	documents DocumentStore
	store     ObjectStore
	events    UploadEventPublisher
}

type IngestInput struct {
	ClaimID     uint
	CompanyID   uint
	FileName    string
	ContentType string
	SizeBytes   int64
	Content     io.Reader

	UploadedByUserID *uint
	UploaderName     string
	ViaPublicLink    bool
	SourceToken      *string
}

type IngestResult struct {
	DocumentID  uint   `json:"document_id"`
	FileName    string `json:"file_name"`
	StoragePath string `json:"storage_path"`
	StoredURL   string `json:"stored_url"`
}

func NewIngestService(documents DocumentStore, store ObjectStore, events UploadEventPublisher) *IngestService {
	return &IngestService{
		documents: documents,
		store:     store,
		events:    events,
	}
}

func (s *IngestService) Ingest(ctx context.Context, in IngestInput) (*IngestResult, error) {
	if in.ClaimID == 0 || in.CompanyID == 0 || in.Content == nil || in.SizeBytes < 0 {
		return nil, ErrInvalidInput
	}
	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" {
		return nil, ErrInvalidInput
	}
	if in.SizeBytes > MaxFileSizeBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, fileName, in.SizeBytes, MaxFileSizeBytes)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	contentType := in.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("claims/%d/%d/%s%s", in.CompanyID, in.ClaimID, uuid.NewString(), ext)

	if err := s.store.Put(ctx, key, in.Content, in.SizeBytes, contentType); err != nil {
		s.publishEvent(ctx, in, nil, "", model.UploadOutcomeTransferFailed, err.Error())
		return nil, fmt.Errorf("%w: %s", ErrTransferFailed, err)
	}

	// Presigned URLs can be regenerated from the storage path at any time,
	// so a presign failure after a successful transfer is not fatal.
	storedURL, err := s.store.PresignedURL(ctx, key)
	if err != nil {
		log.Printf("presign stored object failed: %v", err)
		storedURL = ""
	}

	doc := &model.Document{
		ClaimID:          in.ClaimID,
		CompanyID:        in.CompanyID,
		FileName:         fileName,
		StoragePath:      key,
		StoredURL:        storedURL,
		SizeBytes:        in.SizeBytes,
		ContentType:      contentType,
		UploadedByUserID: in.UploadedByUserID,
		UploaderName:     in.UploaderName,
		ViaPublicLink:    in.ViaPublicLink,
		SourceToken:      in.SourceToken,
	}
	if err := s.documents.Create(doc); err != nil {
		log.Printf("document record failed after transfer, blob %s is orphaned: %v", key, err)
		s.publishEvent(ctx, in, nil, key, model.UploadOutcomeRecordFailed, err.Error())
		return nil, fmt.Errorf("%w: %s", ErrStorageFailed, err)
	}

	s.publishEvent(ctx, in, &doc.ID, key, model.UploadOutcomeStored, "")

	return &IngestResult{
		DocumentID:  doc.ID,
		FileName:    fileName,
		StoragePath: key,
		StoredURL:   storedURL,
	}, nil
}

// ListDocuments returns the metadata records for one claim, newest first.
func (s *IngestService) ListDocuments(claimID uint) ([]model.Document, error) {
	if claimID == 0 {
		return nil, ErrInvalidInput
	}
	return s.documents.ListByClaimID(claimID)
}

// publishEvent is best-effort: the audit queue must never fail an upload.
func (s *IngestService) publishEvent(ctx context.Context, in IngestInput, documentID *uint, storagePath, outcome, detail string) {
	if s.events == nil {
		return
	}

	sourceToken := ""
	if in.SourceToken != nil {
		sourceToken = *in.SourceToken
	}
	evt := model.UploadEvent{
		ClaimID:     in.ClaimID,
		CompanyID:   in.CompanyID,
		DocumentID:  documentID,
		SourceToken: sourceToken,
		FileName:    in.FileName,
		StoragePath: storagePath,
		SizeBytes:   in.SizeBytes,
		Outcome:     outcome,
		Detail:      detail,
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		log.Printf("publish upload event failed: %v", err)
	}
}
