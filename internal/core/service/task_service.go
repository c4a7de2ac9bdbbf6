package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const recentTaskCount = 5

// TaskService implements ownership-scoped task CRUD and listing.
type TaskService struct {
	repo ports.TaskRepository
}

func NewTaskService(repo ports.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID string, input ports.TaskInput) (*domain.Task, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return nil, &ValidationError{Errors: []string{"Title is required"}}
	}
	title := strings.TrimSpace(*input.Title)
	if len(title) > domain.TaskTitleMaxLen {
		return nil, &ValidationError{Errors: []string{"Title must be at most 100 characters"}}
	}

	task := &domain.Task{
		Title:  title,
		Status: domain.StatusPending,
		UserID: userID,
	}

	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if len(desc) > domain.TaskDescriptionMaxLen {
			return nil, &ValidationError{Errors: []string{"Description must be at most 500 characters"}}
		}
		task.Description = desc
	}
	if input.Status != nil {
		if !domain.ValidTaskStatus(*input.Status) {
			return nil, &ValidationError{Errors: []string{"Invalid status"}}
		}
		task.Status = *input.Status
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	return s.repo.Create(ctx, task)
}

func (s *TaskService) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, userID, id)
}

// Update applies the supplied fields to an existing task. A task owned by a
// different user is reported as not found, never as forbidden.
func (s *TaskService) Update(ctx context.Context, userID, id string, input ports.TaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, &ValidationError{Errors: []string{"Title is required"}}
		}
		if len(title) > domain.TaskTitleMaxLen {
			return nil, &ValidationError{Errors: []string{"Title must be at most 100 characters"}}
		}
		task.Title = title
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if len(desc) > domain.TaskDescriptionMaxLen {
			return nil, &ValidationError{Errors: []string{"Description must be at most 500 characters"}}
		}
		task.Description = desc
	}
	if input.Status != nil {
		if !domain.ValidTaskStatus(*input.Status) {
			return nil, &ValidationError{Errors: []string{"Invalid status"}}
		}
		task.Status = *input.Status
	}

	task.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// List returns one page of the user's tasks, newest first, optionally
// narrowed by title search and status.
func (s *TaskService) List(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, domain.Pagination, error) {
	if !domain.ValidPageLimit(page.Limit) {
		return nil, domain.Pagination{}, &ValidationError{Errors: []string{"Invalid limit. Available options: 10, 20, 30, 40, 50"}}
	}
	if page.Number < 1 {
		page.Number = 1
	}
	if filter.Status != "" && !domain.ValidTaskStatus(filter.Status) {
		// Unknown status filters match nothing in the original system;
		// treat them as "no filter" rather than erroring.
		filter.Status = ""
	}

	tasks, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	return tasks, domain.NewPagination(page.Number, page.Limit, total), nil
}

// Overview aggregates the user's tasks by status and picks the most recently
// created ones for the dashboard.
func (s *TaskService) Overview(ctx context.Context, userID string) (*ports.TaskOverview, error) {
	tasks, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := domain.TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCompleted:
			stats.Completed++
		}
	}

	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	recent := sorted
	if len(recent) > recentTaskCount {
		recent = recent[:recentTaskCount]
	}

	return &ports.TaskOverview{
		Statistics:  stats,
		RecentTasks: recent,
		AllTasks:    tasks,
	}, nil
}
