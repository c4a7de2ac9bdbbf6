package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, userID string, input ports.TaskInput) (*domain.Task, error)
	listFn   func(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, domain.Pagination, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (s *stubTaskService) Create(ctx context.Context, userID string, input ports.TaskInput) (*domain.Task, error) {
	return s.createFn(ctx, userID, input)
}

func (s *stubTaskService) Get(_ context.Context, _, _ string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (s *stubTaskService) Update(_ context.Context, _, _ string, _ ports.TaskInput) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (s *stubTaskService) Delete(ctx context.Context, userID, id string) error {
	return s.deleteFn(ctx, userID, id)
}

func (s *stubTaskService) List(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, domain.Pagination, error) {
	return s.listFn(ctx, filter, page)
}

func (s *stubTaskService) Overview(_ context.Context, _ string) (*ports.TaskOverview, error) {
	return &ports.TaskOverview{}, nil
}

func taskCtx(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("identity", domain.Identity{ID: "user_1", Username: "alice_1", Role: domain.RoleUser})
	return c
}

func TestTaskHandler_Create_ScopesToCaller(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID string, input ports.TaskInput) (*domain.Task, error) {
			if userID != "user_1" {
				t.Fatalf("task not scoped to caller: %s", userID)
			}
			return &domain.Task{ID: "task_1", Title: *input.Title, Status: domain.StatusPending}, nil
		},
	}
	h := NewTaskHandler(stub)

	body := strings.NewReader(`{"title":"write report"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Create(taskCtx(e, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTaskHandler_List_RejectsUnknownLimit(t *testing.T) {
	e := echo.New()
	h := NewTaskHandler(&stubTaskService{
		listFn: func(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, domain.Pagination, error) {
			t.Fatalf("service must not be called for an invalid limit")
			return nil, domain.Pagination{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?limit=15", nil)
	rec := httptest.NewRecorder()

	if err := h.List(taskCtx(e, req, rec)); err == nil {
		t.Fatalf("expected error for limit 15")
	}
}

func TestTaskHandler_List_PassesFilter(t *testing.T) {
	e := echo.New()
	h := NewTaskHandler(&stubTaskService{
		listFn: func(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, domain.Pagination, error) {
			if filter.UserID != "user_1" || filter.Search != "report" || filter.Status != domain.StatusPending {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			if page.Number != 2 || page.Limit != 20 {
				t.Fatalf("unexpected page: %+v", page)
			}
			return nil, domain.NewPagination(2, 20, 0), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?page=2&limit=20&search=report&status=pending", nil)
	rec := httptest.NewRecorder()

	if err := h.List(taskCtx(e, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// A page with no tasks renders an empty array, not null.
	var resp struct {
		Tasks []domain.Task `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Tasks == nil {
		t.Fatalf("expected empty array for tasks")
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	e := echo.New()
	h := NewTaskHandler(&stubTaskService{
		deleteFn: func(ctx context.Context, userID, id string) error {
			if userID != "user_1" || id != "task_9" {
				t.Fatalf("unexpected delete args: %s %s", userID, id)
			}
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/task_9", nil)
	rec := httptest.NewRecorder()
	c := taskCtx(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task_9")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
