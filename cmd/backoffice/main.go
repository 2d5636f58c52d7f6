// Command backoffice is the CLI client for the MT5 brokerage back-office.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"mt5-backoffice/internal/cli"
	"mt5-backoffice/internal/config"
	"mt5-backoffice/internal/logging"
)

func main() {
	// A local .env can supply BACKOFFICE_* overrides during development.
	_ = godotenv.Load()

	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()

	rootCmd := cli.NewRootCmd(cfg, configDir, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Debug().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs pre-parses --config so the directory is known before
// cobra runs; config loading has to happen ahead of command wiring.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	return ""
}
