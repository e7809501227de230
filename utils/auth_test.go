package utils

import (
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret-for-unit-tests")

	token, err := GenerateJWTToken("uid-123", "drinker@example.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateJWTToken() returned empty token")
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("ParseJWTToken() error = %v", err)
	}
	if claims.UID != "uid-123" {
		t.Errorf("ParseJWTToken() uid = %q, want %q", claims.UID, "uid-123")
	}
	if claims.Email != "drinker@example.com" {
		t.Errorf("ParseJWTToken() email = %q, want %q", claims.Email, "drinker@example.com")
	}
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret-for-unit-tests")

	if _, err := ParseJWTToken("not.a.token"); err == nil {
		t.Error("ParseJWTToken() should reject a malformed token")
	}
}

func TestGenerateSecretHashDeterministic(t *testing.T) {
	a := GenerateSecretHash("drinker@example.com", "client-id", "client-secret")
	b := GenerateSecretHash("drinker@example.com", "client-id", "client-secret")
	if a != b {
		t.Error("GenerateSecretHash() should be deterministic")
	}
	if a == GenerateSecretHash("other@example.com", "client-id", "client-secret") {
		t.Error("GenerateSecretHash() should differ per username")
	}
}

func TestExtractNameFromEmail(t *testing.T) {
	if got := ExtractNameFromEmail("seamus@example.com"); got != "seamus" {
		t.Errorf("ExtractNameFromEmail() = %q, want %q", got, "seamus")
	}
	if got := ExtractNameFromEmail("no-at-sign"); got != "no-at-sign" {
		t.Errorf("ExtractNameFromEmail() = %q, want %q", got, "no-at-sign")
	}
}
