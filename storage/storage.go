package storage

import (
	"context"
	"sync"

	"taskboard-api/domain"
)

// TaskStore is an in-memory keyed store for task records. All operations are
// safe for concurrent use; per-key reads and writes serialize under a single
// store-wide lock. Records are copied in and out, so callers never alias
// internal state.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]domain.Task)}
}

// Get returns the task stored under id. The second result reports whether a
// record exists.
func (s *TaskStore) Get(_ context.Context, id string) (domain.Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	return t, ok, nil
}

// Put stores the task under its id, overwriting any existing record.
func (s *TaskStore) Put(_ context.Context, task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return nil
}

// Delete removes and returns the task stored under id.
func (s *TaskStore) Delete(_ context.Context, id string) (domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
	}
	return t, ok, nil
}

// List returns all stored tasks in store-defined order.
func (s *TaskStore) List(_ context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	return out, nil
}

// UserStore is an in-memory credential store keyed by normalized email.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

// Get returns the user stored under email.
func (s *UserStore) Get(_ context.Context, email string) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	return u, ok, nil
}

// Put stores the user under their email.
func (s *UserStore) Put(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = user
	return nil
}
