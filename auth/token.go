package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Token verification failure modes. All of them collapse to an
// unauthenticated outcome at the HTTP boundary but stay distinguishable here.
var (
	ErrTokenMalformed    = errors.New("malformed token")
	ErrSignatureMismatch = errors.New("token signature mismatch")
	ErrTokenExpired      = errors.New("token expired")
)

// TokenCodec issues and verifies HS256-signed bearer tokens carrying a
// subject and an expiry. Tokens are self-contained; the process holds only
// the signing secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewTokenCodec creates a codec for the given signing secret and token lifetime.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	if len(secret) == 0 {
		panic("auth.NewTokenCodec: empty signing secret")
	}
	if ttl <= 0 {
		panic("auth.NewTokenCodec: non-positive token TTL")
	}
	return &TokenCodec{
		secret: secret,
		ttl:    ttl,
		// Claims validation is disabled so expiry is checked explicitly,
		// after the signature has been verified.
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation()),
	}
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a fresh token for subject, expiring TTL after now.
func (c *TokenCodec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the token signature and structure before trusting any claim,
// then checks expiry against now. A token whose exp is at or before now is
// rejected as expired.
func (c *TokenCodec) Verify(token string, now time.Time) (string, error) {
	parsed, err := c.parser.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return "", ErrSignatureMismatch
		}
		return "", ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenMalformed
	}
	if !claims.VerifyExpiresAt(now.Unix(), true) {
		return "", ErrTokenExpired
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrTokenMalformed
	}
	return sub, nil
}
