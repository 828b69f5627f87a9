package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/labstack/echo/v4"

	"taskboard-api/domain"
)

// benchTasks is a TaskService stub without call recording, safe for
// RunParallel.
type benchTasks struct {
	tasks []domain.Task
	task  domain.Task
}

func (s *benchTasks) List(ctx context.Context) ([]domain.Task, error) { return s.tasks, nil }
func (s *benchTasks) Get(ctx context.Context, id string) (domain.Task, error) {
	return s.task, nil
}
func (s *benchTasks) Create(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	return s.task, nil
}
func (s *benchTasks) Update(ctx context.Context, id string, in domain.TaskInput) (domain.Task, error) {
	return s.task, nil
}
func (s *benchTasks) Delete(ctx context.Context, id string) (domain.Task, error) {
	return s.task, nil
}
func (s *benchTasks) Complete(ctx context.Context, id string) (domain.Task, error) {
	return s.task, nil
}

func BenchmarkListTasks(b *testing.B) {
	sizes := []struct {
		name  string
		tasks int
	}{
		{name: "Few", tasks: 4},
		{name: "Many", tasks: 128},
	}

	for _, size := range sizes {
		size := size

		b.Run(size.name, func(b *testing.B) {
			list := make([]domain.Task, size.tasks)
			for i := range list {
				list[i] = domain.Task{ID: "t", Title: "Ship release", Status: domain.StatusPending}
			}
			logger := log.New()
			logger.SetLevel(log.PanicLevel)
			handler := listTasks(&benchTasks{tasks: list}, logger)

			b.ReportAllocs()
			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				e := echo.New()
				for pb.Next() {
					req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
					rec := httptest.NewRecorder()
					c := e.NewContext(req, rec)

					if err := handler(c); err != nil {
						b.Fatalf("handler returned error: %v", err)
					}
					if rec.Code != http.StatusOK {
						b.Fatalf("unexpected status code: %d", rec.Code)
					}
				}
			})
		})
	}
}

func BenchmarkCreateTask(b *testing.B) {
	payload := []byte(`{"title":"Ship release","description":"cut v2","dueDate":"31-12-2099"}`)
	handler := createTask(&benchTasks{task: domain.Task{ID: "t1", Status: domain.StatusPending}})

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		e := echo.New()
		for pb.Next() {
			req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(payload))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler(c); err != nil {
				b.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusCreated {
				b.Fatalf("unexpected status code: %d", rec.Code)
			}
		}
	})
}
