package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("unit-test-secret"), time.Hour)
	now := time.Now()

	token, err := codec.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := codec.Verify(token, now)
	if err != nil {
		t.Fatalf("verify at issue time: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("unexpected subject: %q", subject)
	}

	subject, err = codec.Verify(token, now.Add(time.Hour-time.Second))
	if err != nil {
		t.Fatalf("verify just before expiry: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("unexpected subject: %q", subject)
	}
}

func TestTokenExpiredAtAndAfterTTL(t *testing.T) {
	codec := NewTokenCodec([]byte("unit-test-secret"), time.Minute)
	now := time.Now()

	token, err := codec.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, at := range []time.Time{now.Add(time.Minute), now.Add(2 * time.Hour)} {
		if _, err := codec.Verify(token, at); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired at %v, got %v", at, err)
		}
	}
}

func TestTokenSignatureMismatch(t *testing.T) {
	issuer := NewTokenCodec([]byte("secret-a"), time.Hour)
	verifier := NewTokenCodec([]byte("secret-b"), time.Hour)
	now := time.Now()

	token, err := issuer.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token, now); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestTamperedTokenRejectedBeforeExpiryCheck(t *testing.T) {
	// A token that is both expired and signed with the wrong secret must be
	// reported as a signature mismatch: the claimed expiry is untrusted
	// until the signature holds.
	issuer := NewTokenCodec([]byte("secret-a"), time.Minute)
	verifier := NewTokenCodec([]byte("secret-b"), time.Minute)
	now := time.Now()

	token, err := issuer.Issue("alice@example.com", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token, now); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestMalformedTokens(t *testing.T) {
	codec := NewTokenCodec([]byte("unit-test-secret"), time.Hour)
	now := time.Now()

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d", "%%%.%%%.%%%"} {
		if _, err := codec.Verify(raw, now); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed for %q, got %v", raw, err)
		}
	}
}

func TestTokenMissingSubjectRejected(t *testing.T) {
	secret := []byte("unit-test-secret")
	codec := NewTokenCodec(secret, time.Hour)
	now := time.Now()

	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Verify(token, now); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for missing sub, got %v", err)
	}
}

func TestWrongSigningMethodRejected(t *testing.T) {
	codec := NewTokenCodec([]byte("unit-test-secret"), time.Hour)
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice@example.com",
		"exp": now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Verify(signed, now); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}
