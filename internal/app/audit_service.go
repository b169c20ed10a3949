package app

import (
	"sort"

	"claimgate/internal/model"
)

// AuditService reads the persisted upload trail. Its main consumer is the
// failed-uploads view staff use to find blobs that never got a document
// record.
type AuditService struct {
	events EventStore
}

func NewAuditService(events EventStore) *AuditService {
	return &AuditService{events: events}
}

// FailedUploads returns the company's transfer_failed and record_failed
// events, oldest first. record_failed rows carry the storage path of an
// orphaned blob.
func (s *AuditService) FailedUploads(companyID uint) ([]model.UploadEvent, error) {
	if companyID == 0 {
		return nil, ErrInvalidInput
	}

	var failed []model.UploadEvent
	for _, outcome := range []string{model.UploadOutcomeTransferFailed, model.UploadOutcomeRecordFailed} {
		events, err := s.events.ListByOutcome(outcome)
		if err != nil {
			return nil, err
		}
		for _, evt := range events {
			if evt.CompanyID == companyID {
				failed = append(failed, evt)
			}
		}
	}
	sort.Slice(failed, func(i, j int) bool {
		return failed[i].CreatedAt.Before(failed[j].CreatedAt)
	})
	return failed, nil
}
