package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/income-eligibility/internal/config"
	"github.com/iwvelando/income-eligibility/internal/server"
	"github.com/iwvelando/income-eligibility/pkg/constants"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	serverConfigPath string
	address          string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the screening API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConf, err := server.LoadConfig(opts.serverConfigPath)
			if err != nil {
				return err
			}
			if opts.address != "" {
				serverConf.Address = opts.address
			}

			conf, err := loadConfiguration(root.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", root.configPath, err)
			}

			logger, err := initializeLogger(mergeLogging(conf.Logging, serverConf.Logging), root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.serve"),
				)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, logger, conf, serverConf)
		},
	}

	cmd.Flags().StringVar(&opts.serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&opts.address, "address", "", "listen address override")
	return cmd
}

// mergeLogging lets the server configuration override the shared logging settings.
func mergeLogging(base, override config.LoggingConfig) config.LoggingConfig {
	if override.Level != "" {
		base.Level = override.Level
	}
	if override.Format != "" {
		base.Format = override.Format
	}
	if override.OutputFile != "" {
		base.OutputFile = override.OutputFile
	}
	return base
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, logger *zap.Logger, conf *config.Configuration, serverConf *server.Config) error {
	handler, err := server.NewHandler(logger, conf, serverConf, version)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              serverConf.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main.serve"),
			zap.String("address", serverConf.Address),
			zap.Int("defaultYear", conf.Year),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down",
		zap.String("op", "main.serve"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}
