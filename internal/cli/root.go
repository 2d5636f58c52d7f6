// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mt5-backoffice/internal/api"
	"mt5-backoffice/internal/backoffice"
	"mt5-backoffice/internal/config"
	"mt5-backoffice/internal/logging"
	"mt5-backoffice/internal/session"
	"mt5-backoffice/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-30"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Client     *api.Client
	Session    *session.Manager
	Backoffice *backoffice.Service
	Store      store.SnapshotStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, configDir string, logger zerolog.Logger) *cobra.Command {
	client := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Client:     client,
		Session:    session.NewManager(client, cfg.Credentials.MT5, cfg.SessionPath(configDir), logger),
		Backoffice: backoffice.NewService(client, logger),
	}

	if cfg.Cache.Enabled {
		snapshots, err := store.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to open snapshot cache, offline mode unavailable")
		} else {
			app.Store = snapshots
			logger.Debug().Str("path", cfg.Cache.Path).Msg("Snapshot cache opened")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "backoffice",
		Short: "MT5 Backoffice - brokerage account CLI",
		Long: `MT5 Backoffice is a command-line client for the brokerage back-office.

It manages your account session, MT5 terminal data, deposits and
withdrawals, KYC documents, and support tickets against the back-office
REST backend.

Use 'backoffice help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}

			// Resolve a persisted token before any command runs. A stale
			// token degrades to the logged-out state without failing the
			// command itself.
			if app.Session.IsLoading() {
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()
				if err := app.Session.Hydrate(ctx); err != nil {
					app.Logger.Debug().Err(err).Msg("Stored session no longer valid")
				}
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/mt5-backoffice)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addAuthCommands(rootCmd, app)
	addAccountCommands(rootCmd, app)
	addPaymentCommands(rootCmd, app)
	addKYCCommands(rootCmd, app)
	addTicketCommands(rootCmd, app)
	addChartCommands(rootCmd, app)
	addAdminCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("MT5 Backoffice v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Backend")
	output.Printf("  Base URL:   %s\n", cfg.API.BaseURL)
	output.Printf("  Timeout:    %s\n", cfg.API.Timeout)
	output.Println()

	output.Bold("MT5 Bridge")
	output.Printf("  Host:       %s\n", cfg.Credentials.MT5.Host)
	output.Printf("  Port:       %d\n", cfg.Credentials.MT5.Port)
	output.Printf("  User:       %s\n", cfg.Credentials.MT5.User)
	output.Println()

	output.Bold("Snapshot Cache")
	output.Printf("  Enabled:    %v\n", cfg.Cache.Enabled)
	output.Printf("  Path:       %s\n", cfg.Cache.Path)
}
