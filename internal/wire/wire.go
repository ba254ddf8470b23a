// Package wire builds the application object graph from an immutable config.
package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	authadapter "github.com/example/worklog/internal/adapters/auth"
	cliadapter "github.com/example/worklog/internal/adapters/cli"
	httpadapter "github.com/example/worklog/internal/adapters/http"
	"github.com/example/worklog/internal/adapters/postgres"
	redisadapter "github.com/example/worklog/internal/adapters/redis"
	"github.com/example/worklog/internal/adapters/sqlite"
	"github.com/example/worklog/internal/app"
	"github.com/example/worklog/internal/config"
	"github.com/example/worklog/internal/db"
	"github.com/example/worklog/internal/ports/primary"
	"github.com/example/worklog/internal/ports/secondary"
)

// Container holds the wired services and the resources they own.
type Container struct {
	Tasks    primary.TaskService
	Notes    primary.NoteService
	Projects primary.ProjectService
	Auth     primary.AuthService

	config  config.Config
	logger  *slog.Logger
	ping    func(ctx context.Context) error
	cache   *redisadapter.StatsCache
	closers []func() error
}

type repositories struct {
	tasks    secondary.TaskRepository
	users    secondary.UserRepository
	notes    secondary.NoteRepository
	projects secondary.ProjectRepository
}

// Build opens the configured store (and the Redis cache when configured),
// brings the schema up to date and constructs the services.
// The caller must Close the container.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Container, error) {
	if cfg.Auth.SecretKey == "" {
		return nil, errors.New("auth.secret_key is required (set WORKLOG_SECRET_KEY)")
	}

	c := &Container{config: cfg, logger: logger}

	repos, err := c.openStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	// The cache interface must stay nil, not a typed nil, when Redis is off.
	var cache secondary.StatsCache
	if cfg.Redis.URL != "" {
		client, err := redisadapter.Open(ctx, cfg.Redis.URL)
		if err != nil {
			logger.WarnContext(ctx, "stats cache disabled", "error", err)
		} else {
			c.cache = redisadapter.NewStatsCache(client, redisadapter.DefaultPrefix, cfg.CacheTTL())
			c.closers = append(c.closers, c.cache.Close)
			cache = c.cache
		}
	}

	tokens := authadapter.NewJWTIssuer(authadapter.JWTConfig{
		SecretKey:           cfg.Auth.SecretKey,
		Issuer:              cfg.Auth.Issuer,
		AccessTokenDuration: cfg.AccessTokenTTL(),
	})
	hasher := authadapter.NewBcryptHasher(cfg.Auth.BcryptCost)

	c.Tasks = app.NewTaskService(repos.tasks, cache, cfg.Location(), logger.With("service", "tasks"))
	c.Notes = app.NewNoteService(repos.notes, logger.With("service", "notes"))
	c.Projects = app.NewProjectService(repos.projects, logger.With("service", "projects"))
	c.Auth = app.NewAuthService(repos.users, hasher, tokens, logger.With("service", "auth"))
	return c, nil
}

func (c *Container) openStore(ctx context.Context) (repositories, error) {
	switch c.config.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, c.config.Database.URL)
		if err != nil {
			return repositories{}, err
		}
		c.closers = append(c.closers, func() error { pool.Close(); return nil })
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return repositories{}, err
		}
		c.ping = pool.Ping
		return repositories{
			tasks:    postgres.NewTaskRepository(pool),
			users:    postgres.NewUserRepository(pool),
			notes:    postgres.NewNoteRepository(pool),
			projects: postgres.NewProjectRepository(pool),
		}, nil

	default:
		database, err := db.Open(ctx, c.config.Database.Path)
		if err != nil {
			return repositories{}, err
		}
		c.closers = append(c.closers, database.Close)
		if err := db.InitSchema(database, c.logger); err != nil {
			return repositories{}, err
		}
		c.ping = database.PingContext
		return repositories{
			tasks:    sqlite.NewTaskRepository(database),
			users:    sqlite.NewUserRepository(database),
			notes:    sqlite.NewNoteRepository(database),
			projects: sqlite.NewProjectRepository(database),
		}, nil
	}
}

// Ping checks the store connection.
func (c *Container) Ping(ctx context.Context) error {
	if c.ping == nil {
		return errors.New("store not open")
	}
	return c.ping(ctx)
}

// Close releases the store and cache connections in reverse order of opening.
func (c *Container) Close() error {
	if c.cache != nil {
		c.logger.Info("stats cache closing", "hit_rate", c.cache.HitRate())
	}

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// HTTPServer returns the fiber server bound to the container's services.
func (c *Container) HTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Config{
		ProjectName: c.config.Project.Name,
		Version:     c.config.Project.Version,
		CORSOrigins: c.config.HTTP.CORSOrigins,
	}, httpadapter.Deps{
		Tasks:    c.Tasks,
		Notes:    c.Notes,
		Projects: c.Projects,
		Auth:     c.Auth,
		Logger:   c.logger.With("component", "http"),
		Ping:     c.Ping,
	})
}

// TaskAdapter returns a CLI adapter for tasks writing to out.
func (c *Container) TaskAdapter(out io.Writer) *cliadapter.TaskAdapter {
	return cliadapter.NewTaskAdapter(c.Tasks, out)
}

// NoteAdapter returns a CLI adapter for notes writing to out.
func (c *Container) NoteAdapter(out io.Writer) *cliadapter.NoteAdapter {
	return cliadapter.NewNoteAdapter(c.Notes, out)
}

// ProjectAdapter returns a CLI adapter for projects writing to out.
func (c *Container) ProjectAdapter(out io.Writer) *cliadapter.ProjectAdapter {
	return cliadapter.NewProjectAdapter(c.Projects, out)
}

// AuthAdapter returns a CLI adapter for accounts writing to out.
func (c *Container) AuthAdapter(out io.Writer) *cliadapter.AuthAdapter {
	return cliadapter.NewAuthAdapter(c.Auth, out)
}

// Migrate brings the configured store's schema up to date without building
// services. It returns the resulting schema description.
func Migrate(ctx context.Context, cfg config.Config, logger *slog.Logger) (string, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return "", err
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return "", err
		}
		return "postgres schema ensured", nil

	default:
		database, err := db.Open(ctx, cfg.Database.Path)
		if err != nil {
			return "", err
		}
		defer database.Close()
		if err := db.InitSchema(database, logger); err != nil {
			return "", err
		}
		version, err := db.CurrentVersion(database)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("sqlite schema at version %d (%s)", version, cfg.Database.Path), nil
	}
}
