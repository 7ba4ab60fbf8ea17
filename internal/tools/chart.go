package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ersonp/tension-core/internal/application/handlers"
)

const realityGuidance = "Honest assessment of the actual current state relative to this step. " +
	"Examples: 'Never used Django before', 'Completed models section, struggling with views'. " +
	"AVOID: 'Ready to begin', 'Prepared to start'."

// CreateChartTool handles create_structural_tension_chart.
type CreateChartTool struct {
	charts *handlers.ChartHandler
}

// NewCreateChartTool creates a CreateChartTool.
func NewCreateChartTool(charts *handlers.ChartHandler) *CreateChartTool {
	return &CreateChartTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *CreateChartTool) Definition() mcp.Tool {
	return mcp.NewTool(CreateChart,
		mcp.WithDescription(
			"Create a new structural tension chart with desired outcome, current reality, and optional action steps. "+
				"The outcome names what you want to CREATE; the reality is a factual assessment.",
		),
		mcp.WithString("desiredOutcome",
			mcp.Required(),
			mcp.Description("What you want to CREATE (not solve/fix). Focus on positive outcomes, not problems to eliminate."),
		),
		mcp.WithString("currentReality",
			mcp.Required(),
			mcp.Description("Your current situation, factual assessment only. NEVER use 'ready to begin' or similar readiness statements."),
		),
		mcp.WithString("dueDate",
			mcp.Required(),
			mcp.Description("When you want to achieve this outcome (ISO date string)"),
		),
		mcp.WithArray("actionSteps",
			stringItems(),
			mcp.Description("Optional list of action steps; due dates are spread evenly up to the chart due date"),
		),
	)
}

// Handle processes the tool call.
func (t *CreateChartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.CreateChartInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	res, err := t.charts.HandleCreate(ctx, in)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// AddActionStepTool handles add_action_step.
type AddActionStepTool struct {
	charts *handlers.ChartHandler
}

// NewAddActionStepTool creates an AddActionStepTool.
func NewAddActionStepTool(charts *handlers.ChartHandler) *AddActionStepTool {
	return &AddActionStepTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *AddActionStepTool) Definition() mcp.Tool {
	return mcp.NewTool(AddActionStep,
		mcp.WithDescription(
			"DEPRECATED: prefer 'manage_action_step'. Add a strategic action step to an existing chart. "+
				"The step becomes a full structural tension chart with its own current reality.",
		),
		mcp.WithString("parentChartId",
			mcp.Required(),
			mcp.Description("ID of the parent chart to add the action step to"),
		),
		mcp.WithString("actionStepTitle",
			mcp.Required(),
			mcp.Description("Title of the action step (becomes desired outcome of telescoped chart)"),
		),
		mcp.WithString("dueDate",
			mcp.Description("Optional due date (ISO string). Defaults to halfway between now and the parent due date"),
		),
		mcp.WithString("currentReality",
			mcp.Required(),
			mcp.Description(realityGuidance),
		),
	)
}

// Handle processes the tool call.
func (t *AddActionStepTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.AddActionStepInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	res, err := t.charts.HandleAddActionStep(ctx, in)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// TelescopeActionStepTool handles telescope_action_step.
type TelescopeActionStepTool struct {
	charts *handlers.ChartHandler
}

// NewTelescopeActionStepTool creates a TelescopeActionStepTool.
func NewTelescopeActionStepTool(charts *handlers.ChartHandler) *TelescopeActionStepTool {
	return &TelescopeActionStepTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *TelescopeActionStepTool) Definition() mcp.Tool {
	return mcp.NewTool(TelescopeActionStep,
		mcp.WithDescription("Break down an action step into a detailed structural tension chart with its own current reality."),
		mcp.WithString("actionStepName",
			mcp.Required(),
			mcp.Description("Name of the action step to telescope"),
		),
		mcp.WithString("newCurrentReality",
			mcp.Required(),
			mcp.Description("REQUIRED: "+realityGuidance),
		),
		mcp.WithArray("initialActionSteps",
			stringItems(),
			mcp.Description("Optional list of initial action steps for the telescoped chart"),
		),
	)
}

// Handle processes the tool call.
func (t *TelescopeActionStepTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.TelescopeInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	res, err := t.charts.HandleTelescope(ctx, in)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// ManageActionStepTool handles manage_action_step.
type ManageActionStepTool struct {
	charts *handlers.ChartHandler
}

// NewManageActionStepTool creates a ManageActionStepTool.
func NewManageActionStepTool(charts *handlers.ChartHandler) *ManageActionStepTool {
	return &ManageActionStepTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *ManageActionStepTool) Definition() mcp.Tool {
	return mcp.NewTool(ManageActionStep,
		mcp.WithDescription(
			"RECOMMENDED: unified interface for action steps. A chart ID creates a new action step; "+
				"an action step or desired outcome name expands that step into its own chart.",
		),
		mcp.WithString("parentReference",
			mcp.Required(),
			mcp.Description("Chart ID (e.g. 'chart_123') to create a new action step, OR entity name (e.g. 'chart_123_action_1' or 'chart_123_desired_outcome') to expand an existing one"),
		),
		mcp.WithString("actionDescription",
			mcp.Required(),
			mcp.Description("Title/description of the action step"),
		),
		mcp.WithString("currentReality",
			mcp.Description("REQUIRED when creating a new action step, optional when expanding. "+realityGuidance),
		),
		mcp.WithArray("initialActionSteps",
			stringItems(),
			mcp.Description("Optional list of sub-actions for the action step"),
		),
		mcp.WithString("dueDate",
			mcp.Description("Optional due date (ISO string). Auto-distributed if not provided."),
		),
	)
}

// Handle processes the tool call.
func (t *ManageActionStepTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.ManageActionStepInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	res, err := t.charts.HandleManage(ctx, in)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// RemoveActionStepTool handles remove_action_step.
type RemoveActionStepTool struct {
	charts *handlers.ChartHandler
}

// NewRemoveActionStepTool creates a RemoveActionStepTool.
func NewRemoveActionStepTool(charts *handlers.ChartHandler) *RemoveActionStepTool {
	return &RemoveActionStepTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *RemoveActionStepTool) Definition() mcp.Tool {
	return mcp.NewTool(RemoveActionStep,
		mcp.WithDescription("Remove an action step from a chart, deleting its telescoped chart and every chart below it."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("parentChartId",
			mcp.Required(),
			mcp.Description("ID of the parent chart containing the action step"),
		),
		mcp.WithString("actionStepName",
			mcp.Required(),
			mcp.Description("Name of the action step to remove (telescoped chart's desired outcome name)"),
		),
	)
}

// Handle processes the tool call.
func (t *RemoveActionStepTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.RemoveActionStepInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	if err := t.charts.HandleRemove(ctx, in); err != nil {
		return errorResult(err)
	}
	return messageResult("Action step '%s' removed from chart '%s'", in.ActionStepName, in.ParentChartID)
}

// MarkCompleteTool handles mark_action_complete.
type MarkCompleteTool struct {
	charts *handlers.ChartHandler
}

// NewMarkCompleteTool creates a MarkCompleteTool.
func NewMarkCompleteTool(charts *handlers.ChartHandler) *MarkCompleteTool {
	return &MarkCompleteTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *MarkCompleteTool) Definition() mcp.Tool {
	return mcp.NewTool(MarkActionComplete,
		mcp.WithDescription("Mark an action step as completed and record the completion in the parent chart's current reality."),
		mcp.WithString("actionStepName",
			mcp.Required(),
			mcp.Description("Name of the completed action step"),
		),
	)
}

// Handle processes the tool call.
func (t *MarkCompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.charts.HandleComplete(ctx, req.GetString("actionStepName", ""))
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// UpdateProgressTool handles update_action_progress.
type UpdateProgressTool struct {
	charts *handlers.ChartHandler
}

// NewUpdateProgressTool creates an UpdateProgressTool.
func NewUpdateProgressTool(charts *handlers.ChartHandler) *UpdateProgressTool {
	return &UpdateProgressTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *UpdateProgressTool) Definition() mcp.Tool {
	return mcp.NewTool(UpdateActionProgress,
		mcp.WithDescription("Update progress on an action step without marking it complete, optionally updating current reality."),
		mcp.WithString("actionStepName",
			mcp.Required(),
			mcp.Description("Name of the action step to update progress for"),
		),
		mcp.WithString("progressObservation",
			mcp.Required(),
			mcp.Description("Description of progress made on this action step"),
		),
		mcp.WithBoolean("updateCurrentReality",
			mcp.Description("Whether to also add this progress to current reality (default false)"),
		),
	)
}

// Handle processes the tool call.
func (t *UpdateProgressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.UpdateProgressInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	if err := t.charts.HandleUpdateProgress(ctx, in); err != nil {
		return errorResult(err)
	}
	return messageResult("Progress recorded on '%s'", in.ActionStepName)
}

// UpdateRealityTool handles update_current_reality.
type UpdateRealityTool struct {
	charts *handlers.ChartHandler
}

// NewUpdateRealityTool creates an UpdateRealityTool.
func NewUpdateRealityTool(charts *handlers.ChartHandler) *UpdateRealityTool {
	return &UpdateRealityTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *UpdateRealityTool) Definition() mcp.Tool {
	return mcp.NewTool(UpdateCurrentReality,
		mcp.WithDescription(
			"FOR STRUCTURAL TENSION CHARTS: add observations to current reality. "+
				"Use this instead of add_observations or create_entities for chart work.",
		),
		mcp.WithString("chartId",
			mcp.Required(),
			mcp.Description("ID of the chart to update current reality for"),
		),
		mcp.WithArray("newObservations",
			mcp.Required(),
			stringItems(),
			mcp.Description("New observations to add to current reality"),
		),
	)
}

// Handle processes the tool call.
func (t *UpdateRealityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.UpdateRealityInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	res, err := t.charts.HandleUpdateReality(ctx, in)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

// UpdateOutcomeTool handles update_desired_outcome.
type UpdateOutcomeTool struct {
	charts *handlers.ChartHandler
}

// NewUpdateOutcomeTool creates an UpdateOutcomeTool.
func NewUpdateOutcomeTool(charts *handlers.ChartHandler) *UpdateOutcomeTool {
	return &UpdateOutcomeTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *UpdateOutcomeTool) Definition() mcp.Tool {
	return mcp.NewTool(UpdateDesiredOutcome,
		mcp.WithDescription("Update a chart's desired outcome. Works for master charts and for action step charts."),
		mcp.WithString("chartId",
			mcp.Required(),
			mcp.Description("ID of the chart to update"),
		),
		mcp.WithString("newDesiredOutcome",
			mcp.Required(),
			mcp.Description("New desired outcome text"),
		),
	)
}

// Handle processes the tool call.
func (t *UpdateOutcomeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in handlers.UpdateOutcomeInput
	if err := bindArgs(req, &in); err != nil {
		return errorResult(err)
	}
	if err := t.charts.HandleUpdateOutcome(ctx, in); err != nil {
		return errorResult(err)
	}
	return messageResult("Desired outcome updated for chart '%s'", in.ChartID)
}

// ProgressTool handles get_chart_progress.
type ProgressTool struct {
	charts *handlers.ChartHandler
}

// NewProgressTool creates a ProgressTool.
func NewProgressTool(charts *handlers.ChartHandler) *ProgressTool {
	return &ProgressTool{charts: charts}
}

// Definition returns the MCP tool definition.
func (t *ProgressTool) Definition() mcp.Tool {
	return mcp.NewTool(GetChartProgress,
		mcp.WithDescription("Get progress of a structural tension chart and its next incomplete action step."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("chartId",
			mcp.Required(),
			mcp.Description("ID of the chart to check progress for"),
		),
	)
}

// Handle processes the tool call.
func (t *ProgressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.charts.HandleProgress(ctx, req.GetString("chartId", ""))
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}
