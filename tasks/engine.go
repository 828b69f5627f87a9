package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskboard-api/domain"
)

// Store is the persistence consumed by the Engine.
type Store interface {
	Get(ctx context.Context, id string) (domain.Task, bool, error)
	Put(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) (domain.Task, bool, error)
	List(ctx context.Context) ([]domain.Task, error)
}

// Engine applies the validation and mutation rules for task records.
type Engine struct {
	store Store
	clock func() time.Time
}

// NewEngine creates a task engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, clock: time.Now}
}

// List returns all tasks in store order. An empty store yields an empty
// slice, never nil.
func (e *Engine) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	log.WithField("count", len(tasks)).Debug("fetched tasks")
	return tasks, nil
}

// Get returns the task stored under id.
func (e *Engine) Get(ctx context.Context, id string) (domain.Task, error) {
	task, found, err := e.store.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if !found {
		return domain.Task{}, domain.NotFoundf("Task with id %s not found", id)
	}
	return task, nil
}

// Create validates the input, assigns a fresh id and persists a new PENDING
// task with createdAt == updatedAt.
func (e *Engine) Create(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, domain.Validationf("Task title cannot be empty")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return domain.Task{}, domain.Validationf("Task description cannot be empty")
	}
	if strings.TrimSpace(in.DueDate) == "" {
		return domain.Task{}, domain.Validationf("Task due date cannot be empty")
	}

	now := e.clock()
	due, err := validateDueDate(in.DueDate, now)
	if err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:          newTaskID(),
		Title:       title,
		Description: description,
		Status:      domain.StatusPending,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.store.Put(ctx, task); err != nil {
		return domain.Task{}, err
	}
	log.WithField("task", task.ID).Debug("created task")
	return task, nil
}

// Update applies the supplied non-blank fields that actually differ from the
// current record. An update that changes nothing is rejected.
func (e *Engine) Update(ctx context.Context, id string, in domain.TaskInput) (domain.Task, error) {
	task, err := e.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	changed := false
	if title := strings.TrimSpace(in.Title); title != "" && title != task.Title {
		task.Title = title
		changed = true
	}
	if description := strings.TrimSpace(in.Description); description != "" && description != task.Description {
		task.Description = description
		changed = true
	}

	now := e.clock()
	if strings.TrimSpace(in.DueDate) != "" {
		due, err := validateDueDate(in.DueDate, now)
		if err != nil {
			return domain.Task{}, err
		}
		if due.Equal(task.DueDate) {
			return domain.Task{}, domain.Conflictf("Date cannot be same")
		}
		task.DueDate = due
		changed = true
	}
	if strings.TrimSpace(in.Status) != "" {
		status, err := domain.ParseStatus(in.Status)
		if err != nil {
			return domain.Task{}, err
		}
		if status != task.Status {
			task.Status = status
			changed = true
		}
	}

	if !changed {
		return domain.Task{}, domain.Conflictf("No fields to update")
	}

	task.UpdatedAt = now
	if err := e.store.Put(ctx, task); err != nil {
		return domain.Task{}, err
	}
	log.WithField("task", task.ID).Debug("updated task")
	return task, nil
}

// Delete removes the task and returns the removed record.
func (e *Engine) Delete(ctx context.Context, id string) (domain.Task, error) {
	task, found, err := e.store.Delete(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if !found {
		return domain.Task{}, domain.NotFoundf("Task with id %s not found", id)
	}
	log.WithField("task", id).Debug("deleted task")
	return task, nil
}

// Complete sets the task status to COMPLETED regardless of its current
// state. Completing an already-completed task is allowed and still advances
// updatedAt.
func (e *Engine) Complete(ctx context.Context, id string) (domain.Task, error) {
	task, err := e.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	task.Status = domain.StatusCompleted
	task.UpdatedAt = e.clock()
	if err := e.store.Put(ctx, task); err != nil {
		return domain.Task{}, err
	}
	log.WithField("task", id).Debug("completed task")
	return task, nil
}

// newTaskID generates an opaque unique identifier — a UUID with the dashes
// stripped.
func newTaskID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// validateDueDate parses the wire-format date and rejects dates before the
// current calendar day. Both sides of the comparison are truncated to
// date-only granularity, so a due date of today is accepted.
func validateDueDate(raw string, now time.Time) (domain.Date, error) {
	due, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, domain.Validationf("Invalid date format")
	}
	if due.Before(domain.DateOf(now).Time) {
		return domain.Date{}, domain.Validationf("Date cannot be in the past")
	}
	return due, nil
}
