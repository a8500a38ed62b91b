// Package cli provides the command-line interface for the desk application.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"signaldesk/internal/config"
	"signaldesk/internal/logging"
	"signaldesk/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.IdeaStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	ideaStore, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize store, commands needing it will fail")
	} else {
		app.Store = ideaStore
	}

	rootCmd := &cobra.Command{
		Use:   "signaldesk",
		Short: "Trade-idea desk: filter, rank and bucket AI/quant trade ideas",
		Long: `signaldesk serves and inspects a continuously refreshed collection of
trade ideas. Ideas come from upstream generation engines; the desk
normalizes, filters, ranks and buckets them for display.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newIdeasCmd(app))
	rootCmd.AddCommand(newIngestCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("signaldesk %s\n", Version)
		},
	}
}
