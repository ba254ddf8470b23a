// Package cli implements the worklog command tree.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/worklog/internal/config"
	"github.com/example/worklog/internal/ctxutil"
	"github.com/example/worklog/internal/logging"
	"github.com/example/worklog/internal/version"
	"github.com/example/worklog/internal/wire"
)

// TokenEnv holds the access token used by task, note and auth me commands.
const TokenEnv = "WORKLOG_TOKEN"

// NewRootCmd returns the worklog command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "worklog",
		Short:   "worklog - personal task tracker",
		Version: version.String(),
		Long: `worklog tracks personal tasks and daily notes.
Run "worklog serve" for the REST API, or use the task and note commands directly.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to worklog.toml (default: $WORKLOG_CONFIG or ./worklog.toml)")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(MigrateCmd())
	rootCmd.AddCommand(VersionCmd())
	rootCmd.AddCommand(AuthCmd())
	rootCmd.AddCommand(TaskCmd())
	rootCmd.AddCommand(NoteCmd())
	rootCmd.AddCommand(ProjectCmd())
	return rootCmd
}

func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(cfg.Log, cmd.ErrOrStderr()), nil
}

// session is the per-invocation state shared by service-backed commands.
type session struct {
	ctx       context.Context
	cfg       config.Config
	logger    *slog.Logger
	container *wire.Container
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	container, err := wire.Build(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{ctx: cmd.Context(), cfg: cfg, logger: logger, container: container}, nil
}

func (s *session) Close() {
	if err := s.container.Close(); err != nil {
		s.logger.Warn("failed to close resources", "error", err)
	}
}

// authenticate resolves the owner from --token or WORKLOG_TOKEN and returns
// a context carrying it.
func (s *session) authenticate(cmd *cobra.Command) (context.Context, string, error) {
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = os.Getenv(TokenEnv)
	}
	if token == "" {
		return nil, "", errors.New("not logged in\nHint: run `worklog auth login <user>` and export " + TokenEnv)
	}

	ownerID, err := s.container.Auth.Authenticate(s.ctx, token)
	if err != nil {
		return nil, "", err
	}
	return ctxutil.WithOwnerID(s.ctx, ownerID), ownerID, nil
}

func addTokenFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String("token", "", "Access token (default: $"+TokenEnv+")")
}
