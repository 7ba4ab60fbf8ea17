// Package main provides the entry point for the tension CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	derrors "github.com/ersonp/tension-core/internal/domain/errors"
	"github.com/ersonp/tension-core/internal/server"
)

var (
	version = "0.1.0-dev"

	globalMemoryPath   string
	globalCurrentChart string
	globalJSON         bool
	globalEnvFile      string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", derrors.Message(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	server.Version = version

	rootCmd := &cobra.Command{
		Use:           "tension",
		Short:         "Structural tension charts over a JSONL knowledge graph",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalMemoryPath, "memory-path", "M", "", "Path to the JSONL memory file (overrides COAIAN_MF)")
	rootCmd.PersistentFlags().StringVarP(&globalCurrentChart, "current-chart", "C", "", "Chart used when a command's chart id is omitted (overrides COAIAN_CURRENT_CHART)")
	rootCmd.PersistentFlags().BoolVar(&globalJSON, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().StringVar(&globalEnvFile, "env", "", "Env file loaded over the process environment")

	rootCmd.AddCommand(
		newServeCmd(),
		newInitCmd(),
		newListCmd(),
		newViewCmd(),
		newProgressCmd(),
		newStatsCmd(),
		newCreateCmd(),
		newAddActionCmd(),
		newTelescopeCmd(),
		newRemoveActionCmd(),
		newCompleteCmd(),
		newUpdateProgressCmd(),
		newUpdateRealityCmd(),
		newUpdateOutcomeCmd(),
		newSetDateCmd(),
		newSearchCmd(),
		newBeatsCmd(),
	)

	return rootCmd
}
