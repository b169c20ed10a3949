package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"claimgate/internal/model"
)

// Token TTL bounds. Defaults match the distribution windows the product
// hands out; anything above the maximum is clamped rather than rejected,
// since link generation is a user-initiated convenience action.
const (
	DefaultSingleFieldTTL = 7 * 24 * time.Hour
	DefaultBatchTTL       = 168 * time.Hour
	MaxTokenTTL           = 30 * 24 * time.Hour
)

var ErrPreconditionFailed = errors.New("claim not associated with caller's company")

type TokenService struct {
	tokens     TokenStore
	claims     ClaimStore
	scopeCache ScopeCache

	publicBaseURL string
	now           func() time.Time
}

type IssueInput struct {
	ClaimID        uint
	CompanyID      uint
	IssuedByUserID uint
	FieldLabel     string
	Kind           string
	TTL            time.Duration
}

type IssueResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UploadURL string    `json:"upload_url"`
}

func NewTokenService(tokens TokenStore, claims ClaimStore, scopeCache ScopeCache, publicBaseURL string) *TokenService {
	return &TokenService{
		tokens:        tokens,
		claims:        claims,
		scopeCache:    scopeCache,
		publicBaseURL: publicBaseURL,
		now:           time.Now,
	}
}

// DefaultTTL returns the issue window for a token kind.
func DefaultTTL(kind string) time.Duration {
	if kind == model.TokenKindBatch {
		return DefaultBatchTTL
	}
	return DefaultSingleFieldTTL
}

// Issue creates a new capability token scoped to one claim. The caller's
// company must own the claim. Tokens are independent: issuing twice for the
// same claim yields two distinct, separately valid tokens.
func (s *TokenService) Issue(in IssueInput) (*IssueResult, error) {
	if in.ClaimID == 0 || in.CompanyID == 0 || in.IssuedByUserID == 0 {
		return nil, ErrInvalidInput
	}
	if in.TTL < 0 {
		return nil, ErrInvalidInput
	}

	fieldLabel := in.FieldLabel
	switch in.Kind {
	case model.TokenKindBatch:
		fieldLabel = model.BatchFieldLabel
	case model.TokenKindSingleField:
		if fieldLabel == "" {
			return nil, ErrInvalidInput
		}
	default:
		return nil, ErrInvalidInput
	}

	claim, err := s.claims.GetByIDAndCompanyID(in.ClaimID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, ErrPreconditionFailed
	}

	ttl := in.TTL
	if ttl > MaxTokenTTL {
		ttl = MaxTokenTTL
	}

	token := &model.UploadToken{
		Token:          uuid.NewString(),
		ClaimID:        in.ClaimID,
		CompanyID:      in.CompanyID,
		FieldLabel:     fieldLabel,
		Kind:           in.Kind,
		IssuedByUserID: in.IssuedByUserID,
		ExpiresAt:      s.now().Add(ttl),
	}
	if err := s.tokens.Create(token); err != nil {
		return nil, err
	}

	return &IssueResult{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		UploadURL: fmt.Sprintf("%s/public-upload?token=%s", s.publicBaseURL, token.Token),
	}, nil
}

// ListForClaim returns the tokens issued against a claim, newest first. The
// caller's company must own the claim.
func (s *TokenService) ListForClaim(claimID, companyID uint) ([]model.UploadToken, error) {
	if claimID == 0 || companyID == 0 {
		return nil, ErrInvalidInput
	}
	claim, err := s.claims.GetByIDAndCompanyID(claimID, companyID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, ErrPreconditionFailed
	}
	return s.tokens.ListByClaimID(claimID)
}

// Validate resolves a presented token to its scope. Absent and expired
// tokens are indistinguishable to the caller: both return (nil, nil) so the
// public surface can only ever say "invalid or expired".
func (s *TokenService) Validate(ctx context.Context, token string) (*model.TokenScope, error) {
	if token == "" {
		return nil, nil
	}

	now := s.now()

	// Cache failures fall through to the database; the cache is an
	// optimization, not a source of truth.
	if s.scopeCache != nil {
		if scope, ok, err := s.scopeCache.GetScope(ctx, token); err == nil && ok {
			if now.Before(scope.ExpiresAt) {
				return scope, nil
			}
			return nil, nil
		}
	}

	record, err := s.tokens.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if record == nil || record.Expired(now) {
		return nil, nil
	}

	scope := &model.TokenScope{
		TokenID:        record.ID,
		Token:          record.Token,
		ClaimID:        record.ClaimID,
		CompanyID:      record.CompanyID,
		FieldLabel:     record.FieldLabel,
		Kind:           record.Kind,
		IssuedByUserID: record.IssuedByUserID,
		ExpiresAt:      record.ExpiresAt,
	}
	if s.scopeCache != nil {
		_ = s.scopeCache.SetScope(ctx, scope)
	}
	return scope, nil
}
