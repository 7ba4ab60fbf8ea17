package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ersonp/tension-core/internal/domain/ports"
	"github.com/ersonp/tension-core/internal/infrastructure/config"
	"github.com/ersonp/tension-core/internal/infrastructure/logger"
	"github.com/ersonp/tension-core/internal/server"
)

func newServeCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Serves the chart engine as MCP tools over stdin/stdout.

Tools are selected by COAIA_TOOLS (groups STC_TOOLS, NARRATIVE_TOOLS, KG_TOOLS,
CORE_TOOLS and/or tool names) minus COAIA_DISABLED_TOOLS. Logs go to stderr.

Examples:
  tension serve --memory-path ./memory.jsonl
  COAIA_TOOLS="STC_TOOLS KG_TOOLS" tension serve
  COAIA_DISABLED_TOOLS="delete_entities,delete_relations" tension serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level")

	return cmd
}

func runServe(cmd *cobra.Command, debug bool) error {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	return withStore(cmd.Context(), level, func(cfg *config.Config, store ports.GraphStore) error {
		log := logger.Get()
		s, registered := server.New(store, server.Options{
			Tools:         cfg.MCP.Tools,
			DisabledTools: cfg.MCP.DisabledTools,
		}, log)

		log.Info("serving mcp over stdio",
			zap.String("backend", cfg.Store.Backend),
			zap.String("memory_path", cfg.Store.MemoryPath),
			zap.Int("tools", len(registered)),
		)

		if err := server.ServeStdio(s); err != nil {
			return fmt.Errorf("serving stdio: %w", err)
		}
		return nil
	})
}
