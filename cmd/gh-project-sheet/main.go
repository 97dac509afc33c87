package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/naag/gh-project-sheet/internal/config"
	"github.com/naag/gh-project-sheet/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "gh-project-sheet",
	Short:        "Import GitHub project issues into a sheet",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetupLogger(os.Stderr, logging.LevelFromVerbosity(verboseLevel, ""))
	},
}

var (
	verboseLevel int
	configFile   string
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verboseLevel, "verbose", "v", "Verbosity level (-v for debug logs, -vv for debug logs and HTTP traffic)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML, TOML or JSON)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(authCheckCmd)
}

// loadConfig loads the configuration and reconfigures logging with the
// configured level. Configuration errors are reported on out.
func loadConfig(cmd *cobra.Command, tokenOnly bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(config.Options{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
		TokenOnly:  tokenOnly,
	})
	if err != nil {
		var configErr *config.ConfigurationError
		if errors.As(err, &configErr) {
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration error: %s\n", configErr.Error())
		}
		return nil, err
	}

	logging.SetupLogger(os.Stderr, logging.LevelFromVerbosity(verboseLevel, logging.LogLevel(cfg.LogLevel)))
	return cfg, nil
}

// debugOutput returns where HTTP traffic is dumped, or nil below -vv
func debugOutput() io.Writer {
	if verboseLevel >= 2 {
		return os.Stderr
	}
	return nil
}
