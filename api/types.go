package api

import (
	"context"
	"time"

	"taskboard-api/domain"
)

// TaskService is the task engine surface consumed by handlers.
type TaskService interface {
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	Create(ctx context.Context, in domain.TaskInput) (domain.Task, error)
	Update(ctx context.Context, id string, in domain.TaskInput) (domain.Task, error)
	Delete(ctx context.Context, id string) (domain.Task, error)
	Complete(ctx context.Context, id string) (domain.Task, error)
}

// Authenticator issues bearer tokens for valid credentials.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string, now time.Time) (string, error)
}

// PrincipalResolver materializes the authenticated user for a verified
// token subject.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, email string) (domain.User, error)
}
