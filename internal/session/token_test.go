package session

import (
	"strings"
	"testing"
	"time"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	t.Parallel()

	signer := NewTokenSigner("0123456789abcdef0123456789abcdef", time.Hour)
	id := NewID()

	token, err := signer.Sign(id)
	if err != nil {
		t.Fatalf("sign session id: %v", err)
	}
	if strings.Contains(token, id) {
		t.Fatal("expected session id to be encoded, not embedded verbatim")
	}

	parsed, err := signer.Parse(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed != id {
		t.Fatalf("expected %q, got %q", id, parsed)
	}
}

func TestTokenSignerRejectsTamperingAndForeignKeys(t *testing.T) {
	t.Parallel()

	signer := NewTokenSigner("0123456789abcdef0123456789abcdef", time.Hour)
	other := NewTokenSigner("fedcba9876543210fedcba9876543210", time.Hour)

	token, err := other.Sign(NewID())
	if err != nil {
		t.Fatalf("sign with other key: %v", err)
	}
	if _, err := signer.Parse(token); err != ErrInvalidToken {
		t.Fatalf("expected foreign signature to fail, got %v", err)
	}

	for _, value := range []string{"", "garbage", token + "x"} {
		if _, err := signer.Parse(value); err != ErrInvalidToken {
			t.Fatalf("expected %q to be rejected, got %v", value, err)
		}
	}
}

func TestTokenSignerRejectsExpiredTokens(t *testing.T) {
	t.Parallel()

	signer := NewTokenSigner("0123456789abcdef0123456789abcdef", time.Minute)
	issued := time.Now()
	signer.now = func() time.Time { return issued }

	token, err := signer.Sign(NewID())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	signer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := signer.Parse(token); err != ErrInvalidToken {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestTokenSignerRequiresSessionID(t *testing.T) {
	t.Parallel()

	signer := NewTokenSigner("0123456789abcdef0123456789abcdef", time.Hour)
	if _, err := signer.Sign("not-a-uuid"); err != ErrInvalidSessionID {
		t.Fatalf("expected ErrInvalidSessionID, got %v", err)
	}
}
