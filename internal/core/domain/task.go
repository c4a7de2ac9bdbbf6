package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

var ErrTaskNotFound = errors.New("task not found")
var ErrValidation = errors.New("validation failed")

const (
	TaskTitleMaxLen       = 100
	TaskDescriptionMaxLen = 500
)

// Task is a per-user work item. UserID scopes every query; a task is only
// ever visible to its owner.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	UserID      string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskFilter narrows a task listing. Search matches title case-insensitively;
// Status limits to one lifecycle state; zero values mean "no restriction".
type TaskFilter struct {
	UserID string
	Search string
	Status TaskStatus
}

// Page describes the slice of a listing to return. Limit must be one of the
// values in AllowedPageLimits.
type Page struct {
	Number int
	Limit  int
}

// AllowedPageLimits is the whitelist of page sizes a client may request.
var AllowedPageLimits = []int{10, 20, 30, 40, 50}

// ValidPageLimit reports whether limit is an allowed page size.
func ValidPageLimit(limit int) bool {
	for _, l := range AllowedPageLimits {
		if l == limit {
			return true
		}
	}
	return false
}

// Pagination is the envelope describing a returned page.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalTasks  int64 `json:"totalTasks"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
	Limit       int   `json:"limit"`
}

// NewPagination derives the envelope for page over total items of size limit.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalTasks:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
		Limit:       limit,
	}
}

// TaskStats aggregates a user's tasks by status for the overview screen.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}
