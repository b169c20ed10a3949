package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"claimgate/internal/model"
)

// MaxBatchFiles bounds one public batch request.
const MaxBatchFiles = 10

var ErrTooManyFiles = errors.New("too many files")

// Per-file orchestration states. Every file reaches exactly one of the two
// terminal states; a failed file never aborts the rest of the batch.
const (
	FileStatusPending   = "pending"
	FileStatusUploading = "uploading"
	FileStatusSuccess   = "success"
	FileStatusError     = "error"
)

// BatchFile is one selected file. Open is deferred so a file is only read
// when the orchestrator reaches it.
type BatchFile struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Open        func() (io.ReadCloser, error)
}

type FileResult struct {
	FileName  string `json:"file_name"`
	Status    string `json:"status"`
	StoredURL string `json:"stored_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

type BatchResult struct {
	Files    []FileResult `json:"files"`
	Uploaded int          `json:"uploaded"`
	Total    int          `json:"total"`
}

// AllUploaded reports whether every file in the batch reached success.
func (r *BatchResult) AllUploaded() bool {
	return r.Uploaded == r.Total
}

// IngestBatch runs the public upload orchestration: files are processed
// strictly sequentially, file i+1 starts only after file i reaches a
// terminal state. Partial failure is reported per file, never as a batch
// error.
func (s *IngestService) IngestBatch(ctx context.Context, scope *model.TokenScope, uploaderName string, files []BatchFile) (*BatchResult, error) {
	if scope == nil || len(files) == 0 {
		return nil, ErrInvalidInput
	}
	if len(files) > MaxBatchFiles {
		return nil, fmt.Errorf("%w: %d files (limit %d)", ErrTooManyFiles, len(files), MaxBatchFiles)
	}

	result := &BatchResult{
		Files: make([]FileResult, len(files)),
		Total: len(files),
	}
	for i, f := range files {
		result.Files[i] = FileResult{FileName: f.FileName, Status: FileStatusPending}
	}

	for i, f := range files {
		result.Files[i].Status = FileStatusUploading

		ingested, err := s.ingestBatchFile(ctx, scope, uploaderName, f)
		if err != nil {
			result.Files[i].Status = FileStatusError
			result.Files[i].Error = err.Error()
			continue
		}

		result.Files[i].Status = FileStatusSuccess
		result.Files[i].StoredURL = ingested.StoredURL
		result.Uploaded++
	}

	return result, nil
}

func (s *IngestService) ingestBatchFile(ctx context.Context, scope *model.TokenScope, uploaderName string, f BatchFile) (*IngestResult, error) {
	content, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open file failed: %w", err)
	}
	defer content.Close()

	sourceToken := scope.Token
	return s.Ingest(ctx, IngestInput{
		ClaimID:       scope.ClaimID,
		CompanyID:     scope.CompanyID,
		FileName:      f.FileName,
		ContentType:   f.ContentType,
		SizeBytes:     f.SizeBytes,
		Content:       content,
		UploaderName:  uploaderName,
		ViaPublicLink: true,
		SourceToken:   &sourceToken,
	})
}
