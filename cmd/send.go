package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/daybrief/internal/agenda"
	"github.com/teemow/daybrief/internal/calendar"
	"github.com/teemow/daybrief/internal/config"
	"github.com/teemow/daybrief/internal/ics"
	"github.com/teemow/daybrief/internal/instrumentation"
	"github.com/teemow/daybrief/internal/logging"
	"github.com/teemow/daybrief/internal/pipeline"
	"github.com/teemow/daybrief/internal/telegram"
)

func newSendCmd() *cobra.Command {
	var (
		envFile string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Fetch today's events and send the agenda to Telegram",
		Long: `Fetch today's events from every configured calendar source, format
them into a single agenda and deliver it to the configured Telegram chat.

The process exit code reports the run outcome to the external scheduler:
0 for a delivered agenda, non-zero for a failed run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if !dryRun {
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
			}

			logger := logging.Setup(cfg.Debug)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig(version))
			if err != nil {
				return fmt.Errorf("failed to initialize instrumentation: %w", err)
			}
			defer func() {
				if err := provider.Shutdown(context.Background()); err != nil {
					logger.Warn("instrumentation shutdown failed", logging.Err(err))
				}
			}()

			runner, err := buildRunner(ctx, cfg, logger, provider, dryRun)
			if err != nil {
				return err
			}

			result := runner.Run(ctx)
			if result.State != pipeline.StateSucceeded {
				return fmt.Errorf("run failed (%s): %w", result.Kind, result.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: ./.env if present)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the agenda to stdout instead of sending it")
	return cmd
}

func loadConfig(envFile string) (config.Config, error) {
	if envFile != "" {
		return config.LoadFrom(envFile)
	}
	return config.Load()
}

// buildRunner wires the configured sources and the dispatcher into a
// pipeline runner. Source order in the agenda follows the configured
// order exactly.
func buildRunner(ctx context.Context, cfg config.Config, logger *slog.Logger, provider *instrumentation.Provider, dryRun bool) (*pipeline.Runner, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var calClient *calendar.Client
	var icsClient *ics.Client

	sources := make([]pipeline.Source, 0, len(cfg.Calendars))
	for _, id := range cfg.Calendars {
		if isFeedURL(id) {
			if icsClient == nil {
				icsClient = ics.NewClient()
			}
			sources = append(sources, icsClient.Source(id))
			continue
		}
		if calClient == nil {
			calClient, err = calendar.NewClientForAccount(ctx, cfg.Account)
			if err != nil {
				return nil, fmt.Errorf("failed to create Google Calendar client (run `daybrief auth` first): %w", err)
			}
		}
		sources = append(sources, calClient.Source(id))
	}

	var dispatcher pipeline.Dispatcher
	if dryRun {
		dispatcher = stdoutDispatcher{}
	} else {
		dispatcher, err = telegram.NewClient(cfg.TelegramToken)
		if err != nil {
			return nil, err
		}
		logger.Debug("telegram client ready",
			slog.String("token", logging.SanitizeToken(cfg.TelegramToken)),
		)
	}

	return &pipeline.Runner{
		Sources:    sources,
		Dispatcher: dispatcher,
		ChatID:     cfg.TelegramChatID,
		Window:     agenda.Today(loc),
		Logger:     logger,
		Metrics:    provider.Metrics(),
		Tracer:     provider.Tracer("daybrief"),
	}, nil
}

func isFeedURL(id string) bool {
	return strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://")
}

// stdoutDispatcher prints the agenda instead of delivering it.
type stdoutDispatcher struct{}

func (stdoutDispatcher) Send(ctx context.Context, chatID, text string) error {
	fmt.Println(text)
	return nil
}
