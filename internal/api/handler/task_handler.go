package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/service"
)

// TaskHandler serves the ownership-scoped task endpoints. Every route using
// it is mounted behind the Auth middleware.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type taskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

func (r taskRequest) toInput() ports.TaskInput {
	input := ports.TaskInput{Title: r.Title, Description: r.Description}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		input.Status = &status
	}
	return input
}

type taskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

type taskListResponse struct {
	Tasks      []domain.Task     `json:"tasks"`
	Pagination domain.Pagination `json:"pagination"`
}

// Create adds a task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      taskRequest  true  "Task fields"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), identity.ID, req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, taskResponse{Message: "Task created successfully", Task: task})
}

// List returns one page of the caller's tasks, filtered and searched.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (10,20,30,40,50)"
// @Param        search  query     string  false  "Title search"
// @Param        status  query     string  false  "Status filter"
// @Success      200     {object}  taskListResponse
// @Failure      400     {object}  map[string]any
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || !domain.ValidPageLimit(parsed) {
			return &service.ValidationError{Errors: []string{"Invalid limit. Available options: 10, 20, 30, 40, 50"}}
		}
		limit = parsed
	}

	filter := domain.TaskFilter{
		UserID: identity.ID,
		Search: c.QueryParam("search"),
		Status: domain.TaskStatus(c.QueryParam("status")),
	}

	tasks, pagination, err := h.taskService.List(c.Request().Context(), filter, domain.Page{Number: page, Limit: limit})
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	return c.JSON(http.StatusOK, taskListResponse{Tasks: tasks, Pagination: pagination})
}

// Overview returns the caller's dashboard aggregates.
//
// @Summary      Task overview
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  ports.TaskOverview
// @Router       /api/tasks/overview [get]
func (h *TaskHandler) Overview(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	overview, err := h.taskService.Overview(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, overview)
}

// Get returns one of the caller's tasks.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskResponse{Message: "Task fetched successfully", Task: task})
}

// Update applies a partial update to one of the caller's tasks.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Task id"
// @Param        body  body      taskRequest  true  "Fields to update"
// @Success      200   {object}  taskResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Update(c.Request().Context(), identity.ID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskResponse{Message: "Task updated successfully", Task: task})
}

// Delete removes one of the caller's tasks.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), identity.ID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
