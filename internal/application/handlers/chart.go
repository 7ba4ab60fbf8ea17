package handlers

import (
	"context"

	"github.com/ersonp/tension-core/internal/domain/services"
)

// ChartHandler handles chart lifecycle operations.
type ChartHandler struct {
	charts *services.ChartService
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(charts *services.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts}
}

// CreateChartInput is the argument set of HandleCreate.
type CreateChartInput struct {
	DesiredOutcome string   `json:"desiredOutcome"`
	CurrentReality string   `json:"currentReality"`
	DueDate        string   `json:"dueDate"`
	ActionSteps    []string `json:"actionSteps,omitempty"`
}

// AddActionStepInput is the argument set of HandleAddActionStep.
type AddActionStepInput struct {
	ParentChartID   string `json:"parentChartId"`
	ActionStepTitle string `json:"actionStepTitle"`
	DueDate         string `json:"dueDate,omitempty"`
	CurrentReality  string `json:"currentReality"`
}

// TelescopeInput is the argument set of HandleTelescope.
type TelescopeInput struct {
	ActionStepName     string   `json:"actionStepName"`
	NewCurrentReality  string   `json:"newCurrentReality"`
	InitialActionSteps []string `json:"initialActionSteps,omitempty"`
}

// ManageActionStepInput is the argument set of HandleManage.
type ManageActionStepInput struct {
	ParentReference    string   `json:"parentReference"`
	ActionDescription  string   `json:"actionDescription"`
	CurrentReality     string   `json:"currentReality,omitempty"`
	InitialActionSteps []string `json:"initialActionSteps,omitempty"`
	DueDate            string   `json:"dueDate,omitempty"`
}

// RemoveActionStepInput is the argument set of HandleRemove.
type RemoveActionStepInput struct {
	ParentChartID  string `json:"parentChartId"`
	ActionStepName string `json:"actionStepName"`
}

// UpdateProgressInput is the argument set of HandleUpdateProgress.
type UpdateProgressInput struct {
	ActionStepName       string `json:"actionStepName"`
	ProgressObservation  string `json:"progressObservation"`
	UpdateCurrentReality bool   `json:"updateCurrentReality,omitempty"`
}

// UpdateRealityInput is the argument set of HandleUpdateReality.
type UpdateRealityInput struct {
	ChartID         string   `json:"chartId"`
	NewObservations []string `json:"newObservations"`
}

// UpdateOutcomeInput is the argument set of HandleUpdateOutcome.
type UpdateOutcomeInput struct {
	ChartID           string `json:"chartId"`
	NewDesiredOutcome string `json:"newDesiredOutcome"`
}

// SetDueDateInput is the argument set of HandleSetDueDate.
type SetDueDateInput struct {
	ChartID string `json:"chartId"`
	DueDate string `json:"dueDate"`
}

// UpdateRealityResult reports the observations that were new.
type UpdateRealityResult struct {
	ChartID string   `json:"chartId"`
	Added   []string `json:"added"`
}

// HandleCreate creates a master chart.
func (h *ChartHandler) HandleCreate(ctx context.Context, in CreateChartInput) (*services.ChartResult, error) {
	if err := requireString("desiredOutcome", in.DesiredOutcome); err != nil {
		return nil, err
	}
	if err := requireString("currentReality", in.CurrentReality); err != nil {
		return nil, err
	}
	if err := requireDate("dueDate", in.DueDate); err != nil {
		return nil, err
	}
	if err := stringItems("actionSteps", in.ActionSteps); err != nil {
		return nil, err
	}

	return h.charts.CreateChart(ctx, in.DesiredOutcome, in.CurrentReality, in.DueDate, in.ActionSteps)
}

// HandleAddActionStep adds a sub-chart to a chart. An empty current reality
// reaches the service, which answers with the delayed-resolution guidance.
func (h *ChartHandler) HandleAddActionStep(ctx context.Context, in AddActionStepInput) (*services.ActionStepResult, error) {
	if err := requireString("parentChartId", in.ParentChartID); err != nil {
		return nil, err
	}
	if err := requireString("actionStepTitle", in.ActionStepTitle); err != nil {
		return nil, err
	}
	if err := optionalDate("dueDate", in.DueDate); err != nil {
		return nil, err
	}

	return h.charts.AddActionStep(ctx, in.ParentChartID, in.ActionStepTitle, in.DueDate, in.CurrentReality)
}

// HandleTelescope expands an existing action step into its own chart.
func (h *ChartHandler) HandleTelescope(ctx context.Context, in TelescopeInput) (*services.TelescopeResult, error) {
	if err := requireString("actionStepName", in.ActionStepName); err != nil {
		return nil, err
	}
	if err := stringItems("initialActionSteps", in.InitialActionSteps); err != nil {
		return nil, err
	}

	return h.charts.TelescopeActionStep(ctx, in.ActionStepName, in.NewCurrentReality, in.InitialActionSteps)
}

// HandleManage creates or expands an action step depending on the shape of
// the parent reference.
func (h *ChartHandler) HandleManage(ctx context.Context, in ManageActionStepInput) (*services.ActionStepResult, error) {
	if err := requireString("parentReference", in.ParentReference); err != nil {
		return nil, err
	}
	if err := requireString("actionDescription", in.ActionDescription); err != nil {
		return nil, err
	}
	if err := optionalDate("dueDate", in.DueDate); err != nil {
		return nil, err
	}
	if err := stringItems("initialActionSteps", in.InitialActionSteps); err != nil {
		return nil, err
	}

	return h.charts.ManageActionStep(ctx, services.ManageInput{
		ParentReference: in.ParentReference,
		Description:     in.ActionDescription,
		CurrentReality:  in.CurrentReality,
		InitialSubSteps: in.InitialActionSteps,
		DueDate:         in.DueDate,
	})
}

// HandleRemove deletes an action step and its telescoped charts.
func (h *ChartHandler) HandleRemove(ctx context.Context, in RemoveActionStepInput) error {
	if err := requireString("parentChartId", in.ParentChartID); err != nil {
		return err
	}
	if err := requireString("actionStepName", in.ActionStepName); err != nil {
		return err
	}

	return h.charts.RemoveActionStep(ctx, in.ParentChartID, in.ActionStepName)
}

// HandleComplete marks an action step or desired outcome complete.
func (h *ChartHandler) HandleComplete(ctx context.Context, actionStepName string) (*services.CompletionResult, error) {
	if err := requireString("actionStepName", actionStepName); err != nil {
		return nil, err
	}

	return h.charts.MarkComplete(ctx, actionStepName)
}

// HandleUpdateProgress records progress on an action step.
func (h *ChartHandler) HandleUpdateProgress(ctx context.Context, in UpdateProgressInput) error {
	if err := requireString("actionStepName", in.ActionStepName); err != nil {
		return err
	}
	if err := requireString("progressObservation", in.ProgressObservation); err != nil {
		return err
	}

	return h.charts.UpdateProgress(ctx, in.ActionStepName, in.ProgressObservation, in.UpdateCurrentReality)
}

// HandleUpdateReality appends observations to a chart's current reality.
func (h *ChartHandler) HandleUpdateReality(ctx context.Context, in UpdateRealityInput) (*UpdateRealityResult, error) {
	if err := requireString("chartId", in.ChartID); err != nil {
		return nil, err
	}
	if err := requireList("newObservations", in.NewObservations); err != nil {
		return nil, err
	}

	added, err := h.charts.UpdateCurrentReality(ctx, in.ChartID, in.NewObservations)
	if err != nil {
		return nil, err
	}
	return &UpdateRealityResult{ChartID: in.ChartID, Added: added}, nil
}

// HandleUpdateOutcome replaces a chart's desired outcome text.
func (h *ChartHandler) HandleUpdateOutcome(ctx context.Context, in UpdateOutcomeInput) error {
	if err := requireString("chartId", in.ChartID); err != nil {
		return err
	}
	if err := requireString("newDesiredOutcome", in.NewDesiredOutcome); err != nil {
		return err
	}

	return h.charts.UpdateDesiredOutcome(ctx, in.ChartID, in.NewDesiredOutcome)
}

// HandleSetDueDate changes a chart's due date.
func (h *ChartHandler) HandleSetDueDate(ctx context.Context, in SetDueDateInput) error {
	if err := requireString("chartId", in.ChartID); err != nil {
		return err
	}
	if err := requireDate("dueDate", in.DueDate); err != nil {
		return err
	}

	return h.charts.SetDueDate(ctx, in.ChartID, in.DueDate)
}

// HandleProgress reports progress of one chart.
func (h *ChartHandler) HandleProgress(ctx context.Context, chartID string) (*services.Progress, error) {
	if err := requireString("chartId", chartID); err != nil {
		return nil, err
	}

	return h.charts.Progress(ctx, chartID)
}
