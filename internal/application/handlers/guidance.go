package handlers

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	derrors "github.com/ersonp/tension-core/internal/domain/errors"
	"github.com/ersonp/tension-core/internal/domain/services"
)

// Review steps of the creator moment of truth.
const (
	StepFullReview  = "full_review"
	StepAcknowledge = "acknowledge"
	StepAnalyze     = "analyze"
	StepPlan        = "plan"
	StepFeedback    = "feedback"
)

// MomentOfTruthSteps lists the accepted review steps.
var MomentOfTruthSteps = []string{StepFullReview, StepAcknowledge, StepAnalyze, StepPlan, StepFeedback}

// Guidance formats.
const (
	FormatFull          = "full"
	FormatQuick         = "quick"
	FormatSaveDirective = "save_directive"
)

// GuidanceFormats lists the accepted guidance formats.
var GuidanceFormats = []string{FormatFull, FormatQuick, FormatSaveDirective}

const fullGuidance = `# Structural Tension Charts: Working Guide

## Core idea
A chart holds two things apart on purpose: the DESIRED OUTCOME (what you want to create)
and the CURRENT REALITY (where things actually stand). The gap between them is the
structural tension that drives action. Action steps are strategic moves that resolve it.

## Rules the tools enforce
1. Desired outcomes describe what will be CREATED, not problems to remove.
   Rejected: "Fix the login bug", "Stop missing deadlines"
   Accepted: "A login flow that users complete in under a minute"
2. Current reality is a factual assessment, never readiness.
   Rejected: "Ready to begin the Django tutorial"
   Accepted: "Never used Django; comfortable with Python basics"
3. Every action step is itself a chart with its own current reality. There is no default.

## Workflow
1. list_active_charts: see what already exists before creating anything.
2. create_structural_tension_chart: outcome, reality, due date and optional steps.
3. manage_action_step: add a step to a chart (chart id) or expand an existing step
   (step or desired-outcome name) into its own sub-chart.
4. update_action_progress / update_current_reality: record what happened.
5. mark_action_complete: completion is recorded in the parent chart's current reality.
6. get_chart_progress and creator_moment_of_truth: review and adjust.

## Reminders
- Use update_current_reality for chart work instead of add_observations.
- Due dates are ISO 8601 timestamps or YYYY-MM-DD dates.
- Narrative beats (create_narrative_beat) document the story of a chart; they never change it.`

const quickGuidance = `## Structural Tension Quick Reference

CRITICAL: "Ready to begin" is not a current reality. State the facts.

Core tools:
1. list_active_charts: start here
2. create_structural_tension_chart: new chart (outcome + reality + steps)
3. manage_action_step: add or expand an action step
4. telescope_action_step: break a step down into its own chart

Wrong: "Ready to begin Django tutorial"
Right: "Never used Django, completed Python basics"

Use format="full" for the complete guide.`

const saveDirective = `## Save This Guidance

Store the full guide in the session memory file your assistant reads at startup
(for example CLAUDE.md, GEMINI.md or AGENTS.md in the project directory) so the
structural tension rules apply for the whole conversation.

Use format="full" to get the content to save.`

// GuidanceHandler produces review and onboarding text.
type GuidanceHandler struct {
	charts *services.ChartService
	query  *services.QueryService
}

// NewGuidanceHandler creates a new GuidanceHandler.
func NewGuidanceHandler(charts *services.ChartService, query *services.QueryService) *GuidanceHandler {
	return &GuidanceHandler{charts: charts, query: query}
}

// HandleInitGuidance returns onboarding text in the requested format.
// An empty format means full.
func (h *GuidanceHandler) HandleInitGuidance(format string) (string, error) {
	switch format {
	case "", FormatFull:
		return fullGuidance, nil
	case FormatQuick:
		return quickGuidance, nil
	case FormatSaveDirective:
		return saveDirective, nil
	}
	return "", derrors.NewValidation("format", fmt.Sprintf("must be one of: %s", strings.Join(GuidanceFormats, ", ")))
}

// HandleMomentOfTruth returns the review prompt for one step of the creator
// moment of truth, filled in with the chart's outcome, reality and progress.
// userInput, when given, is echoed back with a pointer to the next step.
func (h *GuidanceHandler) HandleMomentOfTruth(ctx context.Context, chartID, step, userInput string) (string, error) {
	if err := requireString("chartId", chartID); err != nil {
		return "", err
	}
	if step == "" {
		step = StepFullReview
	}
	if !slices.Contains(MomentOfTruthSteps, step) {
		return "", derrors.NewValidation("step", fmt.Sprintf("must be one of: %s", strings.Join(MomentOfTruthSteps, ", ")))
	}

	progress, err := h.charts.Progress(ctx, chartID)
	if err != nil {
		return "", err
	}
	details, err := h.query.ChartDetails(ctx, chartID)
	if err != nil {
		return "", err
	}

	outcome := "Unknown"
	if o := details.Outcome(chartID); o != nil && o.FirstObservation() != "" {
		outcome = o.FirstObservation()
	}
	reality := "Unknown"
	if r := details.Reality(chartID); r != nil && len(r.Observations) > 0 {
		reality = strings.Join(r.Observations, "; ")
	}
	percent := int(math.Round(progress.Progress * 100))

	var b strings.Builder
	switch step {
	case StepFullReview:
		b.WriteString("## Creator Moment of Truth: Chart Review\n\n")
		fmt.Fprintf(&b, "**Chart**: %s\n**Desired Outcome**: %s\n**Current Reality**: %s\n", chartID, outcome, reality)
		fmt.Fprintf(&b, "**Progress**: %d%% (%d/%d action steps)\n\n---\n\n", percent, progress.CompletedActions, progress.TotalActions)
		b.WriteString(fullReviewBody)
		return b.String(), nil
	case StepAcknowledge:
		fmt.Fprintf(&b, "## Step 1: ACKNOWLEDGE THE TRUTH\n\n**Chart Progress**: %d%%\n**Desired Outcome**: %s\n\n", percent, outcome)
		b.WriteString(acknowledgeBody)
		b.WriteString(followUp(userInput, "User's Observation",
			"Next: continue with step 2 (analyze) to explore how this came to pass.",
			"Please share what you expected and what actually happened."))
	case StepAnalyze:
		b.WriteString("## Step 2: ANALYZE HOW IT HAPPENED\n\n")
		b.WriteString(analyzeBody)
		b.WriteString(followUp(userInput, "User's Analysis",
			"Next: continue with step 3 (plan) to turn these insights into adjustments.",
			"Walk through the sequence of events. Which assumptions turned out not to be true?"))
	case StepPlan:
		b.WriteString("## Step 3: CREATE A PLAN FOR NEXT TIME\n\n")
		b.WriteString(planBody)
		b.WriteString(followUp(userInput, "User's Plan",
			"Next: record the changes with manage_action_step or update_current_reality, then continue with step 4 (feedback).",
			"What concrete adjustments will you make? Should new action steps be added?"))
	case StepFeedback:
		b.WriteString("## Step 4: SET UP A FEEDBACK SYSTEM\n\n")
		b.WriteString(feedbackBody)
		b.WriteString(followUp(userInput, "User's Feedback System",
			"Review complete. Use update_current_reality to record the key learnings.",
			"What simple tracking will help you stay on the new course?"))
	}
	return b.String(), nil
}

const fullReviewBody = `### The Four-Step Review

**Step 1: ACKNOWLEDGE THE TRUTH**
What difference exists between what was expected and what was delivered?
Ask: "Looking at this chart, what expected progress didn't happen? What happened instead?"

**Step 2: ANALYZE HOW IT HAPPENED**
Track the sequence step by step, without blame. Which assumptions were made?
Ask: "Walk me through what happened. Which assumptions turned out to be wrong?"

**Step 3: CREATE A PLAN FOR NEXT TIME**
Given what was discovered, what will change in the approach?
Ask: "What will you do differently? Which new action steps should we add?"

**Step 4: SET UP A FEEDBACK SYSTEM**
How will you notice whether the changes are actually happening?
Ask: "How will you know if old patterns return?"

---

After the review, update the current reality with new observations and adjust action steps.
Discrepancies are learning material, not failures.`

const acknowledgeBody = `**Question**: What difference exists between what was expected and what was delivered?

Guidelines:
- Report the facts
- No excuses and no blame
- "We expected X, we delivered Y"
`

const analyzeBody = `**Question**: How did this come to pass?

Guidelines:
- Step-by-step tracking, explored together
- Which assumptions were made?
- What did you tell yourself along the way?
`

const planBody = `**Question**: Given what you discovered, how will you change your approach?

Guidelines:
- Which assumptions turned out not to be true?
- Which patterns need to change?
- Which specific actions will be different?
`

const feedbackBody = `**Question**: How will you track whether you're actually making the changes?

Guidelines:
- A simple system for self-management
- A way to notice old patterns returning
- A reminder of the new approach
`

func followUp(userInput, label, next, prompt string) string {
	if strings.TrimSpace(userInput) == "" {
		return "\n" + prompt
	}
	return fmt.Sprintf("\n**%s**: %s\n\n%s", label, userInput, next)
}
