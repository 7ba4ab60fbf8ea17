package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ersonp/tension-core/internal/application/handlers"
)

// MomentOfTruthTool handles creator_moment_of_truth.
type MomentOfTruthTool struct {
	guidance *handlers.GuidanceHandler
}

// NewMomentOfTruthTool creates a MomentOfTruthTool.
func NewMomentOfTruthTool(guidance *handlers.GuidanceHandler) *MomentOfTruthTool {
	return &MomentOfTruthTool{guidance: guidance}
}

// Definition returns the MCP tool definition.
func (t *MomentOfTruthTool) Definition() mcp.Tool {
	return mcp.NewTool(CreatorMomentOfTruth,
		mcp.WithDescription(
			"Guide through the Creator Moment of Truth, a four-step review of chart progress that turns "+
				"discrepancies between expected and delivered into learning.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("chartId",
			mcp.Required(),
			mcp.Description("ID of the chart to review"),
		),
		mcp.WithString("step",
			mcp.Enum(handlers.MomentOfTruthSteps...),
			mcp.DefaultString(handlers.StepFullReview),
			mcp.Description("Which step to guide through: 'full_review' for the complete process, or one step"),
		),
		mcp.WithString("userInput",
			mcp.Description("Optional: the user's answer for the current step"),
		),
	)
}

// Handle processes the tool call.
func (t *MomentOfTruthTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := t.guidance.HandleMomentOfTruth(ctx,
		req.GetString("chartId", ""),
		req.GetString("step", handlers.StepFullReview),
		req.GetString("userInput", ""),
	)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(text), nil
}

// InitGuidanceTool handles init_llm_guidance.
type InitGuidanceTool struct {
	guidance *handlers.GuidanceHandler
}

// NewInitGuidanceTool creates an InitGuidanceTool.
func NewInitGuidanceTool(guidance *handlers.GuidanceHandler) *InitGuidanceTool {
	return &InitGuidanceTool{guidance: guidance}
}

// Definition returns the MCP tool definition.
func (t *InitGuidanceTool) Definition() mcp.Tool {
	return mcp.NewTool(InitLLMGuidance,
		mcp.WithDescription("Get the working guide for structural tension charts. Call this first in a new session."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("format",
			mcp.Enum(handlers.GuidanceFormats...),
			mcp.DefaultString(handlers.FormatFull),
			mcp.Description("full, quick, or save_directive"),
		),
	)
}

// Handle processes the tool call.
func (t *InitGuidanceTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := t.guidance.HandleInitGuidance(req.GetString("format", handlers.FormatFull))
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(text), nil
}
