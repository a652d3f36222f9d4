package common

import (
	"testing"
	"time"
)

func TestLinkSigner_RoundTrip(t *testing.T) {
	signer := &LinkSignerService{secretKey: []byte("test-secret")}

	token, err := signer.GenerateLinkToken("session-abc", 5*time.Minute)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	parsed, err := signer.ValidateToken(token)
	if err != nil {
		t.Fatalf("Expected token to validate, got %v", err)
	}

	if parsed.SessionID != "session-abc" {
		t.Errorf("Expected session-abc, got %s", parsed.SessionID)
	}
	if parsed.TokenID == "" {
		t.Error("Expected a token id")
	}
}

func TestLinkSigner_WrongSecret(t *testing.T) {
	signer := &LinkSignerService{secretKey: []byte("test-secret")}
	other := &LinkSignerService{secretKey: []byte("different-secret")}

	token, err := signer.GenerateLinkToken("session-abc", 5*time.Minute)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail with a different secret")
	}
}

func TestLinkSigner_Expired(t *testing.T) {
	signer := &LinkSignerService{secretKey: []byte("test-secret")}

	token, err := signer.GenerateLinkToken("session-abc", -1*time.Minute)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := signer.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail for an expired token")
	}
}
