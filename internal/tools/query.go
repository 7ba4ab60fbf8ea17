package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ersonp/tension-core/internal/application/handlers"
)

// ListChartsTool handles list_active_charts.
type ListChartsTool struct {
	query *handlers.QueryHandler
}

// NewListChartsTool creates a ListChartsTool.
func NewListChartsTool(query *handlers.QueryHandler) *ListChartsTool {
	return &ListChartsTool{query: query}
}

// Definition returns the MCP tool definition.
func (t *ListChartsTool) Definition() mcp.Tool {
	return mcp.NewTool(ListActiveCharts,
		mcp.WithDescription("List all structural tension charts with their outcomes and progress. Start here."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool call.
func (t *ListChartsTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.query.HandleList(ctx)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// GetChartTool handles get_chart.
type GetChartTool struct {
	query *handlers.QueryHandler
}

// NewGetChartTool creates a GetChartTool.
func NewGetChartTool(query *handlers.QueryHandler) *GetChartTool {
	return &GetChartTool{query: query}
}

// Definition returns the MCP tool definition.
func (t *GetChartTool) Definition() mcp.Tool {
	return mcp.NewTool(GetChart,
		mcp.WithDescription("Get every entity of one chart and the relations among them."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("chartId",
			mcp.Required(),
			mcp.Description("ID of the chart to retrieve"),
		),
	)
}

// Handle processes the tool call.
func (t *GetChartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.query.HandleChart(ctx, req.GetString("chartId", ""))
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// GetActionStepTool handles get_action_step.
type GetActionStepTool struct {
	query *handlers.QueryHandler
}

// NewGetActionStepTool creates a GetActionStepTool.
func NewGetActionStepTool(query *handlers.QueryHandler) *GetActionStepTool {
	return &GetActionStepTool{query: query}
}

// Definition returns the MCP tool definition.
func (t *GetActionStepTool) Definition() mcp.Tool {
	return mcp.NewTool(GetActionStep,
		mcp.WithDescription("Get the chart an action step belongs to, with its entities and relations."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("actionStepName",
			mcp.Required(),
			mcp.Description("Name of the action step (e.g. 'chart_123_desired_outcome') to retrieve"),
		),
	)
}

// Handle processes the tool call.
func (t *GetActionStepTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.query.HandleActionStep(ctx, req.GetString("actionStepName", ""))
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}
