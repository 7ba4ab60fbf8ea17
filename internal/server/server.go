// Package server wires the chart engine into an MCP server instance.
//
// This is the composition root for the tool transport: it builds the
// services and handlers over a GraphStore and registers the enabled tools.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ersonp/tension-core/internal/application/handlers"
	"github.com/ersonp/tension-core/internal/domain/ports"
	"github.com/ersonp/tension-core/internal/domain/services"
	"github.com/ersonp/tension-core/internal/tools"
)

// Name is the server name reported to MCP clients.
const Name = "tension-core"

// Version is set at build time via ldflags.
var Version = "dev"

// Options selects the tools to register. Both fields are comma or space
// separated lists of group and tool names.
type Options struct {
	Tools         string
	DisabledTools string
}

// New creates the MCP server over store with the enabled tools registered
// and returns the registered tool names in registration order.
func New(store ports.GraphStore, opts Options, log *zap.Logger) (*server.MCPServer, []string) {
	if log == nil {
		log = zap.NewNop()
	}

	graph := services.NewGraphService(store, log)
	charts := services.NewChartService(graph, services.NewValidationService(), log)
	query := services.NewQueryService(graph)
	narrative := services.NewNarrativeService(graph, log)

	h := tools.Handlers{
		Chart:     handlers.NewChartHandler(charts),
		Query:     handlers.NewQueryHandler(query),
		Graph:     handlers.NewGraphHandler(graph),
		Narrative: handlers.NewNarrativeHandler(narrative),
		Guidance:  handlers.NewGuidanceHandler(charts, query),
	}

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	enabled := tools.EnabledTools(opts.Tools, opts.DisabledTools)
	var registered []string
	for _, t := range tools.All(h) {
		def := t.Definition()
		if !enabled[def.Name] {
			continue
		}
		s.AddTool(def, t.Handle)
		registered = append(registered, def.Name)
	}

	log.Info("mcp tools registered", zap.Int("count", len(registered)), zap.Strings("tools", registered))
	return s, registered
}

// ServeStdio serves s over stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func serverInstructions() string {
	return "Structural tension charts: a desired outcome held against an honest current reality, " +
		"with action steps that telescope into their own charts. Call init_llm_guidance first, " +
		"then list_active_charts before creating anything. Desired outcomes name what will be created; " +
		"current reality states facts, never readiness."
}
