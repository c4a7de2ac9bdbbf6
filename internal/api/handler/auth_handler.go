package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/auth"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/service"
	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
)

type AuthHandler struct {
	authService ports.AuthService
	verifier    ports.CredentialVerifier
	cookie      config.CookieConfig
}

func NewAuthHandler(authService ports.AuthService, verifier ports.CredentialVerifier, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, verifier: verifier, cookie: cookie}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type userResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// Register creates a new user account. The role is always "user"; anything
// the client sends for it is discarded before the service sees the payload.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]string
// @Router       /api/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		case errors.Is(err, domain.ErrEmailTaken):
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User created successfully"})
}

// Login authenticates a user and sets the credential cookie. Failure always
// renders the same generic 401 regardless of whether the email exists.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	credential, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(authCookie(h.cookie, credential, auth.DefaultTokenTTL))

	redirect := "/user/dashboard"
	if user.Role == domain.RoleAdmin {
		redirect = "/admin/dashboard"
	}
	return c.JSON(http.StatusOK, loginResponse{Message: "Login successful", Redirect: redirect})
}

// Logout revokes the credential where the strategy supports it and clears
// the cookie. Always returns 200; logging out twice is harmless.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		// Best effort: a failed revocation still clears the client cookie.
		_ = h.verifier.Revoke(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(authCookie(h.cookie, "", 0))
	return c.JSON(http.StatusOK, messageResponse{Message: "User logged out successfully"})
}

// Me returns the authenticated user's public profile.
//
// @Summary      Get current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Message: "User profile fetched successfully",
		User:    user.PublicView(),
	})
}
