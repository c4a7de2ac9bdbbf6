package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// UserHandler serves the admin account-management endpoints. Routes using it
// are mounted behind Auth plus RBAC(admin).
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type userListResponse struct {
	Users      []domain.PublicUser `json:"users"`
	TotalUsers int64               `json:"totalUsers"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

// List returns one page of accounts with public fields only.
//
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  userListResponse
// @Failure      403    {object}  map[string]string
// @Router       /api/users/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if !domain.ValidPageLimit(limit) {
		limit = 10
	}

	users, total, err := h.authService.ListUsers(c.Request().Context(), domain.Page{Number: page, Limit: limit})
	if err != nil {
		return err
	}

	public := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].PublicView())
	}

	return c.JSON(http.StatusOK, userListResponse{
		Users:      public,
		TotalUsers: total,
		Page:       page,
		Limit:      limit,
	})
}

// UpdateRole changes the target account's role. Self-targeting is refused
// with 400 before any store access.
//
// @Summary      Update a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Target user id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateRole(c.Request().Context(), identity, c.Param("id"), req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Message: "User role updated successfully",
		User:    user.PublicView(),
	})
}
