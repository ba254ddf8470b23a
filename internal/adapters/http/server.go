// Package http exposes the task, note and auth services over a fiber REST API.
package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/example/worklog/internal/ports/primary"
)

// Config holds server settings taken from the process configuration.
type Config struct {
	ProjectName string
	Version     string
	CORSOrigins []string
}

// Deps are the services the API is served from.
type Deps struct {
	Tasks    primary.TaskService
	Notes    primary.NoteService
	Projects primary.ProjectService
	Auth     primary.AuthService
	Logger   *slog.Logger
	// Ping reports store health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// Server wraps the fiber application.
type Server struct {
	app    *fiber.App
	deps   Deps
	config Config
}

// NewServer builds the fiber app with middleware and routes registered.
func NewServer(config Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &Server{deps: deps, config: config}
	s.app = fiber.New(fiber.Config{
		AppName:               config.ProjectName,
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(requestLogger(deps.Logger))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(config.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	s.setupRoutes()
	return s
}

func corsOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) setupRoutes() {
	h := &handlers{tasks: s.deps.Tasks, notes: s.deps.Notes, projects: s.deps.Projects, auth: s.deps.Auth}

	s.app.Get("/", s.root)
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")
	requireAuth := authMiddleware(s.deps.Auth)

	auth := api.Group("/auth")
	auth.Post("/signup", h.signup)
	auth.Post("/login", h.login)
	auth.Get("/me", requireAuth, h.me)

	tasks := api.Group("/tasks", requireAuth)
	tasks.Post("/", h.createTask)
	tasks.Get("/", h.listTasks)
	tasks.Get("/today", h.todayTasks)
	tasks.Get("/stats", h.taskStats)
	tasks.Get("/:id", h.getTask)
	tasks.Put("/:id", h.updateTask)
	tasks.Patch("/:id/status", h.setTaskStatus)
	tasks.Post("/:id/complete", h.completeTask)
	tasks.Delete("/:id", h.deleteTask)

	notes := api.Group("/notes", requireAuth)
	notes.Post("/", h.createNote)
	notes.Get("/", h.listNotes)
	notes.Get("/:date", h.getNote)
	notes.Put("/:date", h.updateNote)
	notes.Delete("/:date", h.deleteNote)

	projects := api.Group("/projects", requireAuth)
	projects.Post("/", h.createProject)
	projects.Get("/", h.listProjects)
	projects.Get("/:id", h.getProject)
	projects.Put("/:id", h.updateProject)
	projects.Delete("/:id", h.deleteProject)
}

func (s *Server) root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"project": s.config.ProjectName,
		"version": s.config.Version,
		"status":  "running",
	})
}

func (s *Server) health(c *fiber.Ctx) error {
	if s.deps.Ping != nil {
		if err := s.deps.Ping(c.UserContext()); err != nil {
			s.deps.Logger.ErrorContext(c.UserContext(), "health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "unreachable",
			})
		}
	}
	return c.JSON(fiber.Map{"status": "healthy", "database": "ok"})
}
