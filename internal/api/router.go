package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/taskboard/taskboard-api/internal/api/handler"
	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/service"
	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
	mongodb "github.com/taskboard/taskboard-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when the deployment runs the stateless-token strategy.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, verifier ports.CredentialVerifier, recorder ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskboard"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(middleware.Audit(recorder))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	authService := service.NewAuthService(userRepo, verifier)
	taskService := service.NewTaskService(taskRepo)

	authHandler := handler.NewAuthHandler(authService, verifier, cfg.Cookie)
	userHandler := handler.NewUserHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	authn := middleware.Auth(verifier, cfg.Cookie.Name, log)
	limiter := echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS)),
	)

	// --- Auth routes ---
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register, limiter)
	users.POST("/login", authHandler.Login, limiter)
	users.POST("/logout", authHandler.Logout, authn)
	users.GET("/me", authHandler.Me, authn)

	// --- Admin routes ---
	admin := users.Group("/admin", authn, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/role", userHandler.UpdateRole)

	// --- Task routes ---
	tasks := e.Group("/api/tasks", authn)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/overview", taskHandler.Overview)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
