package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ersonp/tension-core/internal/application/handlers"
	"github.com/ersonp/tension-core/internal/domain/services"
)

var (
	entitySchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":         map[string]any{"type": "string", "description": "The name of the entity"},
			"entityType":   map[string]any{"type": "string", "description": "The type of the entity"},
			"observations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Observation contents associated with the entity"},
		},
		"required": []string{"name", "entityType", "observations"},
	}
	relationSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"from":         map[string]any{"type": "string", "description": "The name of the entity where the relation starts"},
			"to":           map[string]any{"type": "string", "description": "The name of the entity where the relation ends"},
			"relationType": map[string]any{"type": "string", "description": "The type of the relation"},
		},
		"required": []string{"from", "to", "relationType"},
	}
)

// GraphTool serves one knowledge-graph tool, selected by name.
type GraphTool struct {
	graph *handlers.GraphHandler
	name  string
}

// NewGraphTools creates every knowledge-graph tool.
func NewGraphTools(graph *handlers.GraphHandler) []*GraphTool {
	names := []string{CreateEntities, CreateRelations, AddObservations, DeleteEntities,
		DeleteObservations, DeleteRelations, ReadGraph, SearchNodes, OpenNodes}
	out := make([]*GraphTool, 0, len(names))
	for _, n := range names {
		out = append(out, &GraphTool{graph: graph, name: n})
	}
	return out
}

// Definition returns the MCP tool definition.
func (t *GraphTool) Definition() mcp.Tool {
	switch t.name {
	case CreateEntities:
		return mcp.NewTool(t.name,
			mcp.WithDescription("Create multiple new entities in the knowledge graph. Names already taken are skipped."),
			mcp.WithArray("entities", mcp.Required(), mcp.Items(entitySchema)),
		)
	case CreateRelations:
		return mcp.NewTool(t.name,
			mcp.WithDescription("Create multiple new relations between entities. Relations should be in active voice."),
			mcp.WithArray("relations", mcp.Required(), mcp.Items(relationSchema)),
		)
	case AddObservations:
		return mcp.NewTool(t.name,
			mcp.WithDescription("Add new observations to existing entities. Observations already present are skipped."),
			mcp.WithArray("observations", mcp.Required(), mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"entityName": map[string]any{"type": "string", "description": "The name of the entity to add the observations to"},
					"contents":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "The observation contents to add"},
				},
				"required": []string{"entityName", "contents"},
			})),
		)
	case DeleteEntities:
		return mcp.NewTool(t.name,
			mcp.WithDescription("Delete multiple entities and the relations touching them."),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithArray("entityNames", mcp.Required(), stringItems(), mcp.Description("Names of the entities to delete")),
		)
	case DeleteObservations:
		return mcp.NewTool(t.name,
			mcp.WithDescription("Delete specific observations from entities."),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithArray("deletions", mcp.Required(), mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"entityName":   map[string]any{"type": "string", "description": "The name of the entity containing the observations"},
					"observations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "The observations to delete"},
				},
				"required": []string{"entityName", "observations"},
			})),
		)
	case DeleteRelations:
		return mcp.NewTool(t.name,
			mcp.WithDescription("Delete multiple relations from the knowledge graph."),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithArray("relations", mcp.Required(), mcp.Items(relationSchema)),
		)
	case ReadGraph:
		return mcp.NewTool(t.name,
			mcp.WithDescription("Read the entire knowledge graph."),
			mcp.WithReadOnlyHintAnnotation(true),
		)
	case SearchNodes:
		return mcp.NewTool(t.name,
			mcp.WithDescription("Search for nodes whose name, type or observations contain the query (case-insensitive)."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("query", mcp.Required(), mcp.Description("The search query")),
		)
	default:
		return mcp.NewTool(OpenNodes,
			mcp.WithDescription("Open specific nodes by name, with the relations among them."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithArray("names", mcp.Required(), stringItems(), mcp.Description("Entity names to retrieve")),
		)
	}
}

// Handle processes the tool call.
func (t *GraphTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Entities     []handlers.EntityInput         `json:"entities"`
		Relations    []handlers.RelationInput       `json:"relations"`
		Observations []services.ObservationInput    `json:"observations"`
		EntityNames  []string                       `json:"entityNames"`
		Deletions    []services.ObservationDeletion `json:"deletions"`
		Query        string                         `json:"query"`
		Names        []string                       `json:"names"`
	}
	if err := bindArgs(req, &args); err != nil {
		return errorResult(err)
	}

	var (
		res any
		err error
	)
	switch t.name {
	case CreateEntities:
		res, err = t.graph.HandleCreateEntities(ctx, args.Entities)
	case CreateRelations:
		res, err = t.graph.HandleCreateRelations(ctx, args.Relations)
	case AddObservations:
		res, err = t.graph.HandleAddObservations(ctx, args.Observations)
	case DeleteEntities:
		if err = t.graph.HandleDeleteEntities(ctx, args.EntityNames); err == nil {
			return messageResult("Entities deleted successfully")
		}
	case DeleteObservations:
		if err = t.graph.HandleDeleteObservations(ctx, args.Deletions); err == nil {
			return messageResult("Observations deleted successfully")
		}
	case DeleteRelations:
		if err = t.graph.HandleDeleteRelations(ctx, args.Relations); err == nil {
			return messageResult("Relations deleted successfully")
		}
	case ReadGraph:
		res, err = t.graph.HandleReadGraph(ctx)
	case SearchNodes:
		res, err = t.graph.HandleSearch(ctx, args.Query)
	default:
		res, err = t.graph.HandleOpen(ctx, args.Names)
	}
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}
