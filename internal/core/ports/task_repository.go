package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// TaskRepository defines the interface for task persistence. Every method is
// scoped by owner: a task id belonging to another user behaves as absent.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, userID, id string) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, int64, error)
	ListAll(ctx context.Context, userID string) ([]domain.Task, error)
}
