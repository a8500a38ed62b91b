package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"signaldesk/internal/models"
	"signaldesk/internal/refresh"
	"signaldesk/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var catalystsPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the desk API",
		Long:  "Start the HTTP API, refreshing the idea snapshot from the store on the configured schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			var catalysts []models.Catalyst
			if catalystsPath != "" {
				data, err := os.ReadFile(catalystsPath)
				if err != nil {
					return fmt.Errorf("reading catalysts file: %w", err)
				}
				if err := json.Unmarshal(data, &catalysts); err != nil {
					return fmt.Errorf("parsing catalysts file: %w", err)
				}
				app.Logger.Info().Int("catalysts", len(catalysts)).Msg("catalysts loaded")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			refresher := refresh.New(
				refresh.StoreSource{Lister: app.Store},
				app.Config.Refresh.FetchTimeout,
				app.Logger,
			)
			if err := refresher.Start(ctx, app.Config.Refresh.CronSpec); err != nil {
				return fmt.Errorf("starting refresher: %w", err)
			}
			defer refresher.Stop()

			server := web.NewServer(refresher, app.Config, catalysts, app.Logger)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				app.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&catalystsPath, "catalysts", "", "JSON file with upcoming catalysts for the earnings badge")
	return cmd
}
