package cli

import (
	"context"
	"fmt"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"
)

// ServeCmd runs the REST API until SIGINT or SIGTERM.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			addr := s.cfg.HTTP.Addr
			if override, _ := cmd.Flags().GetString("addr"); override != "" {
				addr = override
			}

			server := s.container.HTTPServer()
			listenErr := make(chan error, 1)
			go func() {
				if err := server.Listen(addr); err != nil {
					listenErr <- err
				}
			}()
			s.logger.Info("http server started",
				"addr", addr,
				"driver", s.cfg.Database.Driver,
				"cache", s.cfg.Redis.URL != "",
				"timezone", s.cfg.Tasks.Timezone,
			)

			wait := gfshutdown.GracefulShutdown(
				context.Background(),
				s.cfg.ShutdownTimeout(),
				map[string]gfshutdown.Operation{
					"http-server": func(ctx context.Context) error {
						s.logger.Info("graceful shutdown initiated")
						return server.Shutdown(ctx)
					},
				},
			)

			select {
			case err := <-listenErr:
				return fmt.Errorf("http server failed: %w", err)
			case code := <-wait:
				s.logger.Info("server exited", "code", code)
				if code != 0 {
					return fmt.Errorf("shutdown finished with exit code %d", code)
				}
				return nil
			}
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides http.addr)")
	return cmd
}
