package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"claimgate/internal/model"
)

func newTestTokenService(claims ...*model.Claim) (*TokenService, *fakeTokenStore) {
	tokens := newFakeTokenStore()
	svc := NewTokenService(tokens, newFakeClaimStore(claims...), newFakeScopeCache(), "https://claims.example")
	return svc, tokens
}

func testClaim() *model.Claim {
	return &model.Claim{ID: 7, CompanyID: 3, ClaimNumber: "CLM-1007", Claimant: "J. Doe"}
}

func TestIssueAndValidate(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	result, err := svc.Issue(IssueInput{
		ClaimID:        7,
		CompanyID:      3,
		IssuedByUserID: 11,
		FieldLabel:     "police report",
		Kind:           model.TokenKindSingleField,
		TTL:            DefaultSingleFieldTTL,
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	wantURL := "https://claims.example/public-upload?token=" + result.Token
	if result.UploadURL != wantURL {
		t.Errorf("upload url = %q, want %q", result.UploadURL, wantURL)
	}

	scope, err := svc.Validate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if scope == nil {
		t.Fatal("expected a valid scope")
	}
	if scope.ClaimID != 7 || scope.CompanyID != 3 || scope.FieldLabel != "police report" {
		t.Errorf("unexpected scope: %+v", scope)
	}
}

func TestIssueDistinctTokens(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	in := IssueInput{
		ClaimID:        7,
		CompanyID:      3,
		IssuedByUserID: 11,
		FieldLabel:     "invoice",
		Kind:           model.TokenKindSingleField,
		TTL:            time.Hour,
	}
	first, err := svc.Issue(in)
	if err != nil {
		t.Fatalf("first Issue failed: %v", err)
	}
	second, err := svc.Issue(in)
	if err != nil {
		t.Fatalf("second Issue failed: %v", err)
	}
	if first.Token == second.Token {
		t.Fatal("two issues for the same claim must produce distinct tokens")
	}

	for _, token := range []string{first.Token, second.Token} {
		scope, err := svc.Validate(context.Background(), token)
		if err != nil || scope == nil {
			t.Errorf("token %s should validate independently, got scope=%v err=%v", token, scope, err)
		}
	}
}

func TestIssueUnknownClaim(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	_, err := svc.Issue(IssueInput{
		ClaimID:        99,
		CompanyID:      3,
		IssuedByUserID: 11,
		FieldLabel:     "invoice",
		Kind:           model.TokenKindSingleField,
		TTL:            time.Hour,
	})
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestIssueOtherCompanysClaim(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	_, err := svc.Issue(IssueInput{
		ClaimID:        7,
		CompanyID:      4,
		IssuedByUserID: 11,
		FieldLabel:     "invoice",
		Kind:           model.TokenKindSingleField,
		TTL:            time.Hour,
	})
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestIssueClampsTTL(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	result, err := svc.Issue(IssueInput{
		ClaimID:        7,
		CompanyID:      3,
		IssuedByUserID: 11,
		FieldLabel:     "invoice",
		Kind:           model.TokenKindSingleField,
		TTL:            90 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if want := base.Add(MaxTokenTTL); !result.ExpiresAt.Equal(want) {
		t.Errorf("expires at %v, want clamped to %v", result.ExpiresAt, want)
	}
}

func TestIssueBatchForcesFieldLabel(t *testing.T) {
	svc, tokens := newTestTokenService(testClaim())

	result, err := svc.Issue(IssueInput{
		ClaimID:        7,
		CompanyID:      3,
		IssuedByUserID: 11,
		FieldLabel:     "ignored",
		Kind:           model.TokenKindBatch,
		TTL:            DefaultBatchTTL,
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	record, _ := tokens.GetByToken(result.Token)
	if record.FieldLabel != model.BatchFieldLabel {
		t.Errorf("batch token field label = %q, want %q", record.FieldLabel, model.BatchFieldLabel)
	}
}

func TestIssueRejectsBadInput(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	cases := []IssueInput{
		{ClaimID: 7, CompanyID: 3, IssuedByUserID: 11, Kind: model.TokenKindSingleField, TTL: time.Hour}, // no field label
		{ClaimID: 7, CompanyID: 3, IssuedByUserID: 11, FieldLabel: "x", Kind: "magic", TTL: time.Hour},
		{ClaimID: 7, CompanyID: 3, IssuedByUserID: 11, FieldLabel: "x", Kind: model.TokenKindSingleField, TTL: -time.Hour},
	}
	for i, in := range cases {
		if _, err := svc.Issue(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestListForClaim(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	in := IssueInput{
		ClaimID:        7,
		CompanyID:      3,
		IssuedByUserID: 11,
		FieldLabel:     "photos",
		Kind:           model.TokenKindSingleField,
		TTL:            time.Hour,
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Issue(in); err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
	}

	list, err := svc.ListForClaim(7, 3)
	if err != nil {
		t.Fatalf("ListForClaim failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 tokens, got %d", len(list))
	}

	if _, err := svc.ListForClaim(7, 4); !errors.Is(err, ErrPreconditionFailed) {
		t.Errorf("another company's claim must not be listable, got %v", err)
	}
}

func TestValidateZeroTTLToken(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	result, err := svc.Issue(IssueInput{
		ClaimID:        7,
		CompanyID:      3,
		IssuedByUserID: 11,
		Kind:           model.TokenKindBatch,
		TTL:            0,
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	scope, err := svc.Validate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if scope != nil {
		t.Fatal("a zero-TTL token must never validate")
	}
}

func TestValidateExpiryIsMonotonic(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	svc.now = func() time.Time { return now }

	result, err := svc.Issue(IssueInput{
		ClaimID:        7,
		CompanyID:      3,
		IssuedByUserID: 11,
		FieldLabel:     "photos",
		Kind:           model.TokenKindSingleField,
		TTL:            time.Hour,
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Valid strictly before expiry.
	now = base.Add(59 * time.Minute)
	if scope, _ := svc.Validate(context.Background(), result.Token); scope == nil {
		t.Fatal("token should be valid before expiry")
	}

	// Invalid at and after the expiry instant; validity never comes back.
	for _, offset := range []time.Duration{time.Hour, 2 * time.Hour, 24 * time.Hour} {
		now = base.Add(offset)
		if scope, _ := svc.Validate(context.Background(), result.Token); scope != nil {
			t.Fatalf("token should be rejected at expiry+%v", offset-time.Hour)
		}
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	scope, err := svc.Validate(context.Background(), "b2c3d4e5-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if scope != nil {
		t.Fatal("unknown token must not validate")
	}
}

func TestValidateEmptyToken(t *testing.T) {
	svc, _ := newTestTokenService(testClaim())

	scope, err := svc.Validate(context.Background(), "")
	if err != nil || scope != nil {
		t.Fatalf("empty token: scope=%v err=%v, want nil/nil", scope, err)
	}
}

func TestValidatePopulatesScopeCache(t *testing.T) {
	tokens := newFakeTokenStore()
	scopeCache := newFakeScopeCache()
	svc := NewTokenService(tokens, newFakeClaimStore(testClaim()), scopeCache, "https://claims.example")

	result, err := svc.Issue(IssueInput{
		ClaimID:        7,
		CompanyID:      3,
		IssuedByUserID: 11,
		FieldLabel:     "photos",
		Kind:           model.TokenKindSingleField,
		TTL:            time.Hour,
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Validate(context.Background(), result.Token); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if scopeCache.sets != 1 {
		t.Errorf("expected one cache fill, got %d", scopeCache.sets)
	}

	// Second validation is served from the cache.
	if scope, _ := svc.Validate(context.Background(), result.Token); scope == nil {
		t.Fatal("cached token should validate")
	}
	if scopeCache.sets != 1 {
		t.Errorf("cache hit should not refill, sets = %d", scopeCache.sets)
	}
}

func TestValidateExpiredCacheEntry(t *testing.T) {
	tokens := newFakeTokenStore()
	scopeCache := newFakeScopeCache()
	svc := NewTokenService(tokens, newFakeClaimStore(testClaim()), scopeCache, "https://claims.example")

	scopeCache.scopes["stale"] = &model.TokenScope{
		Token:     "stale",
		ClaimID:   7,
		CompanyID: 3,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	scope, err := svc.Validate(context.Background(), "stale")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if scope != nil {
		t.Fatal("an expired cached scope must not validate")
	}
}
