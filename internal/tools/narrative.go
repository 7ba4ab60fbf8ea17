package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ersonp/tension-core/internal/application/handlers"
	"github.com/ersonp/tension-core/internal/domain/services"
)

// CreateBeatTool handles create_narrative_beat.
type CreateBeatTool struct {
	narrative *handlers.NarrativeHandler
}

// NewCreateBeatTool creates a CreateBeatTool.
func NewCreateBeatTool(narrative *handlers.NarrativeHandler) *CreateBeatTool {
	return &CreateBeatTool{narrative: narrative}
}

// Definition returns the MCP tool definition.
func (t *CreateBeatTool) Definition() mcp.Tool {
	return mcp.NewTool(CreateNarrativeBeat,
		mcp.WithDescription("Create a narrative beat that documents a chart as a step in its story."),
		mcp.WithString("parentChartId",
			mcp.Required(),
			mcp.Description("ID of the parent structural tension chart"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the narrative beat"),
		),
		mcp.WithNumber("act",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Act number in the narrative sequence"),
		),
		mcp.WithString("type_dramatic",
			mcp.Required(),
			mcp.Description("Dramatic type (e.g. 'Setup', 'Turning Point', 'Crisis/Antagonist Force')"),
		),
		mcp.WithArray("universes",
			stringItems(),
			mcp.Description("Universe perspectives (engineer-world, ceremony-world, story-engine-world)"),
		),
		mcp.WithString("description", mcp.Description("Detailed description of the beat")),
		mcp.WithString("prose", mcp.Description("Prose narrative of the beat")),
		mcp.WithArray("lessons",
			stringItems(),
			mcp.Description("Key lessons or insights from this beat"),
		),
	)
}

// Handle processes the tool call.
func (t *CreateBeatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in services.BeatInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	res, err := t.narrative.HandleCreate(ctx, in)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// TelescopeBeatTool handles telescope_narrative_beat.
type TelescopeBeatTool struct {
	narrative *handlers.NarrativeHandler
}

// NewTelescopeBeatTool creates a TelescopeBeatTool.
func NewTelescopeBeatTool(narrative *handlers.NarrativeHandler) *TelescopeBeatTool {
	return &TelescopeBeatTool{narrative: narrative}
}

// Definition returns the MCP tool definition.
func (t *TelescopeBeatTool) Definition() mcp.Tool {
	return mcp.NewTool(TelescopeNarrativeBeat,
		mcp.WithDescription("Telescope a narrative beat into numbered sub-beats for detailed exploration."),
		mcp.WithString("parentBeatName",
			mcp.Required(),
			mcp.Description("Name of the parent narrative beat to telescope"),
		),
		mcp.WithString("newCurrentReality",
			mcp.Required(),
			mcp.Description("Updated current reality for the telescoped beat"),
		),
		mcp.WithArray("initialSubBeats",
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":         map[string]any{"type": "string"},
					"type_dramatic": map[string]any{"type": "string"},
					"description":   map[string]any{"type": "string"},
					"prose":         map[string]any{"type": "string"},
					"lessons":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []string{"title", "type_dramatic"},
			}),
			mcp.Description("Optional initial sub-beats to create"),
		),
	)
}

// Handle processes the tool call.
func (t *TelescopeBeatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.TelescopeBeatInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	res, err := t.narrative.HandleTelescope(ctx, in)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// ListBeatsTool handles list_narrative_beats.
type ListBeatsTool struct {
	narrative *handlers.NarrativeHandler
}

// NewListBeatsTool creates a ListBeatsTool.
func NewListBeatsTool(narrative *handlers.NarrativeHandler) *ListBeatsTool {
	return &ListBeatsTool{narrative: narrative}
}

// Definition returns the MCP tool definition.
func (t *ListBeatsTool) Definition() mcp.Tool {
	return mcp.NewTool(ListNarrativeBeats,
		mcp.WithDescription("List narrative beats ordered by act, optionally filtered by parent chart ID."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("parentChartId",
			mcp.Description("Optional: filter by parent chart ID"),
		),
	)
}

// Handle processes the tool call.
func (t *ListBeatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.narrative.HandleList(ctx, req.GetString("parentChartId", ""))
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}
