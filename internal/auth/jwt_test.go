package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-that-is-32-chars-long!!"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// =========================================================================
// NewTokenService TESTS
// =========================================================================

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	// 32 characters is the floor; 31 must fail.
	_, err := NewTokenService(strings.Repeat("x", 31))
	if err == nil {
		t.Fatal("NewTokenService() should reject a secret shorter than 32 characters")
	}
}

func TestNewTokenService_AcceptsMinimumSecret(t *testing.T) {
	_, err := NewTokenService(strings.Repeat("x", 32))
	if err != nil {
		t.Fatalf("NewTokenService() error = %v for a 32-character secret", err)
	}
}

// =========================================================================
// Generate / Validate TESTS
// =========================================================================

func TestGenerateValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-123", "a@x.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	userID, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if userID != "user-123" {
		t.Errorf("Validate() userID = %q, want %q", userID, "user-123")
	}
}

func TestGenerate_CarriesIDAndEmailClaims(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-456", "b@x.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Decode with the library directly to inspect the payload.
	var c Claims
	_, err = jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("parsing token: %v", err)
	}

	if c.Subject != "user-456" {
		t.Errorf("sub = %q, want %q", c.Subject, "user-456")
	}
	if c.Email != "b@x.com" {
		t.Errorf("email = %q, want %q", c.Email, "b@x.com")
	}
}

func TestValidate_RejectsTamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, _ := ts.Generate("user-123", "a@x.com")

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload := []byte(parts[1])
	payload[0] ^= 1
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := ts.Validate(tampered); err == nil {
		t.Fatal("Validate() accepted a tampered token")
	}
}

func TestValidate_RejectsWrongSecret(t *testing.T) {
	ts := newTestTokenService(t)
	other, err := NewTokenService("another-secret-also-32-chars-long!!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _ := ts.Generate("user-123", "a@x.com")

	if _, err := other.Validate(token); err == nil {
		t.Fatal("Validate() accepted a token signed with a different secret")
	}
}

func TestValidate_RejectsExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.generateWithDuration("user-123", "a@x.com", -time.Minute)
	if err != nil {
		t.Fatalf("generateWithDuration() error = %v", err)
	}

	_, err = ts.Validate(token)
	if err == nil {
		t.Fatal("Validate() accepted an expired token")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("Validate() error = %q, want mention of expiry", err)
	}
}

func TestValidate_RejectsGarbage(t *testing.T) {
	ts := newTestTokenService(t)

	for _, tokenStr := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := ts.Validate(tokenStr); err == nil {
			t.Errorf("Validate(%q) accepted a non-token", tokenStr)
		}
	}
}
