package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// TaskInput carries the mutable fields of a task. Pointer fields distinguish
// "not supplied" from "set to empty" on partial updates.
type TaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskOverview is the dashboard payload: aggregate counts plus the most
// recently created tasks.
type TaskOverview struct {
	Statistics  domain.TaskStats `json:"statistics"`
	RecentTasks []domain.Task    `json:"recentTasks"`
	AllTasks    []domain.Task    `json:"allTasks"`
}

type TaskService interface {
	Create(ctx context.Context, userID string, input TaskInput) (*domain.Task, error)
	Get(ctx context.Context, userID, id string) (*domain.Task, error)
	Update(ctx context.Context, userID, id string, input TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, domain.Pagination, error)
	Overview(ctx context.Context, userID string) (*TaskOverview, error)
}
