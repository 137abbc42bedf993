package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/abclisten/internal/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the library over HTTP",
		Long: `Serve the library over HTTP.

The API exposes lists, KaWas, mind maps, exports, settings and backups under
/api. Press Ctrl+C to shut down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			runner := c.newRunner(s.lib, noCache)
			defer runner.Close()

			cfg := c.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}
			srv := server.New(server.Config{
				Addr:            cfg.Addr,
				ReadTimeout:     cfg.ReadTimeout.Duration,
				WriteTimeout:    cfg.WriteTimeout.Duration,
				ShutdownTimeout: cfg.ShutdownTimeout.Duration,
			}, runner, s.settings, logger)

			p := newPrinter(cmd.OutOrStdout())
			p.info("Serving on %s", StyleHighlight.Render(cfg.Addr))
			p.detail("backend %s, profile %q", c.cfg.Storage.Backend, c.cfg.Storage.Profile)

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
