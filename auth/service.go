package auth

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"taskboard-api/domain"
)

// UserStore is the credential storage consumed by the Service. Records are
// keyed by normalized (trimmed) email.
type UserStore interface {
	Get(ctx context.Context, email string) (domain.User, bool, error)
	Put(ctx context.Context, user domain.User) error
}

// Service orchestrates sign-up and login: credential validation, one-way
// password hashing and token issuance.
type Service struct {
	users UserStore
	codec *TokenCodec
	cost  int
	clock func() time.Time
}

// NewService creates an authenticator backed by the given store and codec.
func NewService(users UserStore, codec *TokenCodec) *Service {
	return &Service{users: users, codec: codec, cost: bcrypt.DefaultCost, clock: time.Now}
}

// SignUp registers a new account and returns a fresh bearer token.
func (s *Service) SignUp(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	if _, exists, err := s.users.Get(ctx, email); err != nil {
		return "", err
	} else if exists {
		return "", domain.Conflictf("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	if err := s.users.Put(ctx, domain.User{Email: email, PasswordHash: string(hash)}); err != nil {
		return "", err
	}
	log.WithField("email", email).Debug("user registered")
	return s.codec.Issue(email, s.clock())
}

// Login verifies credentials against the stored hash and returns a fresh
// bearer token. The strength policy is re-applied on login, matching the
// behavior the service has always had.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	user, exists, err := s.users.Get(ctx, email)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.NotFoundf("User does not exist")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.Unauthorizedf("Invalid password")
	}
	return s.codec.Issue(email, s.clock())
}

// ResolvePrincipal materializes the authenticated identity for a verified
// token subject.
func (s *Service) ResolvePrincipal(ctx context.Context, email string) (domain.User, error) {
	user, exists, err := s.users.Get(ctx, strings.TrimSpace(email))
	if err != nil {
		return domain.User{}, err
	}
	if !exists {
		return domain.User{}, domain.NotFoundf("User does not exist")
	}
	return user, nil
}
