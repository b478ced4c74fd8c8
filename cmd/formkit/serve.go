package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/internal/playground"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		addr     string
		envFiles []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live playground",
		Long: `Serve starts the playground HTTP server. Configuration comes from the
environment (APP_*, FORMKIT_*, HTTP_*); flags override it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) > 0 {
				if err := config.LoadEnv(envFiles...); err != nil {
					return err
				}
			}
			var cfg playground.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			if g.catalog != "" {
				cfg.CatalogPath = g.catalog
			}
			if g.verbose {
				cfg.LogLevel = "debug"
			}

			log := cfg.NewLogger(cmd.ErrOrStderr())
			logger.SetAsDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := playground.New(cfg, log)
			if err != nil {
				return err
			}
			log.Info("starting playground", logger.Component("cli"))
			return app.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().StringArrayVar(&envFiles, "env-file", nil, "load variables from a .env file (repeatable)")
	return cmd
}
