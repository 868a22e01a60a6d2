package router

import (
	"context"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tasktrack/tasktrack-api/internal/constants"
	"github.com/tasktrack/tasktrack-api/internal/handlers"
	"github.com/tasktrack/tasktrack-api/internal/metrics"
	"github.com/tasktrack/tasktrack-api/internal/middleware"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

// Options holds everything the HTTP layer depends on. Metrics and Ping may be nil.
type Options struct {
	Log            *zap.Logger
	SessionStore   sessions.Store
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
	Ping           func(ctx context.Context) error

	Tokens   *services.TokenService
	Auth     *services.AuthService
	Users    *services.UserService
	Projects *services.ProjectService
	Tasks    *services.TaskService
}

// New builds the gin engine with all routes registered.
func New(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(opts.Log), middleware.RequestLogger(opts.Log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", opts.Metrics.Handler())
	}
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(sessions.Sessions(constants.SessionCookieName, opts.SessionStore))

	healthHandler := handlers.NewHealthHandler(opts.Ping)
	authHandler := handlers.NewAuthHandler(opts.Auth)
	userHandler := handlers.NewUserHandler(opts.Users)
	projectHandler := handlers.NewProjectHandler(opts.Projects, opts.Tasks, opts.Log)
	taskHandler := handlers.NewTaskHandler(opts.Tasks)

	requireAuth := middleware.RequireAuth(opts.Tokens)
	requireAdmin := middleware.RequireStoredRole(opts.Users, models.RoleAdmin)

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		api.GET("/ping", healthHandler.Ping)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/check-admin-exists", authHandler.CheckAdminExists)
		}

		users := api.Group("/users", requireAuth)
		{
			users.GET("/verify-token", userHandler.VerifyToken)
			users.GET("", requireAdmin, userHandler.ListAll)
			users.GET("/paged", requireAdmin, userHandler.ListPaged)
			users.GET("/non-admin", requireAdmin, userHandler.ListNonAdmin)
			users.GET("/search", requireAdmin, userHandler.Search)
			users.GET("/stats", requireAdmin, userHandler.Stats)
			users.GET("/:id", userHandler.Get)
			users.POST("", requireAdmin, userHandler.Create)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", requireAdmin, userHandler.Delete)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.GET("/:id/tasks", projectHandler.Tasks)
			projects.POST("", requireAdmin, projectHandler.Create)
			projects.PUT("/:id", requireAdmin, projectHandler.Update)
			projects.DELETE("/:id", requireAdmin, projectHandler.Delete)
		}

		for _, prefix := range []string{"/tasks", "/task"} {
			tasks := api.Group(prefix, requireAuth)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/paged", taskHandler.ListPaged)
			tasks.GET("/project/:projectId", taskHandler.ByProject)
			tasks.GET("/user/:userId", taskHandler.ByUser)
			tasks.GET("/status/:status", taskHandler.ByStatus)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireAdmin, taskHandler.DeleteTask)
		}
	}

	return r
}
