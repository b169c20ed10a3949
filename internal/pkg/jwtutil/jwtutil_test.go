package jwtutil

import (
	"testing"
	"time"
)

func TestGenerateAndParse(t *testing.T) {
	signed, err := GenerateToken("secret", time.Hour, 42, "adjuster")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken("secret", signed)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "adjuster" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestParseWrongSecret(t *testing.T) {
	signed, err := GenerateToken("secret", time.Hour, 42, "adjuster")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken("other", signed); err == nil {
		t.Fatal("a token signed with another secret must not parse")
	}
}

func TestParseExpiredToken(t *testing.T) {
	signed, err := GenerateToken("secret", -time.Minute, 42, "adjuster")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken("secret", signed); err == nil {
		t.Fatal("an expired token must not parse")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-jwt"); err == nil {
		t.Fatal("garbage input must not parse")
	}
}
