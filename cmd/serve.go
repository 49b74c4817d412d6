package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/teemow/daybrief/internal/instrumentation"
	"github.com/teemow/daybrief/internal/logging"
	"github.com/teemow/daybrief/internal/pipeline"
	"github.com/teemow/daybrief/internal/server"
)

// shutdownTimeout bounds the graceful stop of the metrics server and
// any in-flight run.
const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as a daemon with an internal daily schedule",
		Long: `Run daybrief as a long-lived process. The agenda run is triggered by
the cron expression in DAYBRIEF_SCHEDULE (default: 07:00 every day),
evaluated in the configured fixed UTC offset.

A Prometheus metrics endpoint is served on DAYBRIEF_METRICS_ADDR
(default :9090) unless disabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := logging.Setup(cfg.Debug)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig(version))
			if err != nil {
				return fmt.Errorf("failed to initialize instrumentation: %w", err)
			}

			var metricsSrv *server.MetricsServer
			if cfg.MetricsEnabled && provider.Enabled() {
				metricsSrv, err = server.NewMetricsServer(server.MetricsServerConfig{
					Addr:                    cfg.MetricsAddr,
					InstrumentationProvider: provider,
				})
				if err != nil {
					return err
				}
				go func() {
					if err := metricsSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server failed", logging.Err(err))
					}
				}()
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			// Each scheduled run gets a fresh runner and a fresh day
			// window; nothing is shared between runs.
			c := cron.New(cron.WithLocation(loc))
			_, err = c.AddFunc(cfg.Schedule, func() {
				runner, err := buildRunner(ctx, cfg, logger, provider, false)
				if err != nil {
					logger.Error("failed to build pipeline", logging.Err(err))
					return
				}
				result := runner.Run(ctx)
				if result.State != pipeline.StateSucceeded {
					// The daemon stays up; the next scheduled run is a
					// fresh invocation.
					logger.Error("scheduled run failed",
						logging.Kind(string(result.Kind)),
						logging.Err(result.Err),
					)
				}
			})
			if err != nil {
				return fmt.Errorf("invalid cron schedule %q: %w", cfg.Schedule, err)
			}

			c.Start()
			logger.Info("scheduler started",
				logging.Operation("serve"),
				logging.Status(logging.StatusSuccess),
			)

			<-ctx.Done()
			logger.Info("shutting down")

			// Let an in-flight run finish before exiting.
			cronCtx := c.Stop()
			select {
			case <-cronCtx.Done():
			case <-time.After(shutdownTimeout):
				logger.Warn("timed out waiting for in-flight run")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if metricsSrv != nil {
				if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
					logger.Warn("metrics server shutdown failed", logging.Err(err))
				}
			}
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Warn("instrumentation shutdown failed", logging.Err(err))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: ./.env if present)")
	return cmd
}
