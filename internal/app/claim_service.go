package app

import (
	"errors"
	"strings"

	"claimgate/internal/model"
)

var ErrClaimNotFound = errors.New("claim not found")

// ClaimService is the minimal claim surface the upload workflow needs:
// something for tokens and documents to hang off. Full claims management
// lives elsewhere in the platform.
type ClaimService struct {
	claims    ClaimStore
	documents DocumentStore
}

type CreateClaimInput struct {
	CompanyID   uint
	ClaimNumber string
	Claimant    string
}

func NewClaimService(claims ClaimStore, documents DocumentStore) *ClaimService {
	return &ClaimService{
		claims:    claims,
		documents: documents,
	}
}

func (s *ClaimService) Create(input CreateClaimInput) (*model.Claim, error) {
	claimNumber := strings.TrimSpace(input.ClaimNumber)
	claimant := strings.TrimSpace(input.Claimant)
	if input.CompanyID == 0 || claimNumber == "" || claimant == "" {
		return nil, ErrInvalidInput
	}

	claim := &model.Claim{
		CompanyID:   input.CompanyID,
		ClaimNumber: claimNumber,
		Claimant:    claimant,
		Status:      "open",
	}
	if err := s.claims.Create(claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *ClaimService) List(companyID uint) ([]model.Claim, error) {
	if companyID == 0 {
		return nil, ErrInvalidInput
	}
	return s.claims.ListByCompanyID(companyID)
}

// Get resolves a claim within the caller's company; claims of other
// companies are indistinguishable from missing ones.
func (s *ClaimService) Get(claimID, companyID uint) (*model.Claim, error) {
	if claimID == 0 || companyID == 0 {
		return nil, ErrInvalidInput
	}
	claim, err := s.claims.GetByIDAndCompanyID(claimID, companyID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	return claim, nil
}

// ListDocuments returns a claim's documents after confirming company
// ownership.
func (s *ClaimService) ListDocuments(claimID, companyID uint) ([]model.Document, error) {
	if _, err := s.Get(claimID, companyID); err != nil {
		return nil, err
	}
	return s.documents.ListByClaimID(claimID)
}

// ListCompanyDocuments returns every document across the company's claims,
// newest first.
func (s *ClaimService) ListCompanyDocuments(companyID uint) ([]model.Document, error) {
	if companyID == 0 {
		return nil, ErrInvalidInput
	}
	return s.documents.ListByCompanyID(companyID)
}
