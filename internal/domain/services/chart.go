package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

// Default realities used when an existing step is expanded without one.
const (
	ExpandActionStepReality = "Expanding action step into detailed sub-chart"
	ExpandOutcomeReality    = "Expanding desired outcome into detailed sub-chart"
)

const invalidReferenceMessage = `🚨 INVALID PARENT REFERENCE FORMAT

Received: "%s"

Valid formats:
1. Chart ID: "chart_123" → Creates new action step
2. Action entity: "chart_123_action_1" → Expands existing legacy action step
3. Desired outcome: "chart_123_desired_outcome" → Expands existing modern action step

Examples:
- Create new action: manageActionStep("chart_123", "Complete tutorial", "Never used Django")
- Expand existing: manageActionStep("chart_123_action_1", "Complete tutorial", undefined, ["Step 1", "Step 2"])

💡 **Tip**: Use 'list_active_charts' to see available charts and their IDs.`

// ChartResult is returned by CreateChart.
type ChartResult struct {
	ChartID   string              `json:"chartId"`
	Entities  []*entities.Entity  `json:"entities"`
	Relations []entities.Relation `json:"relations"`
}

// ActionStepResult identifies a chart created as an action step. ActionStepName
// is the new chart's outcome entity, the handle used to complete or expand it.
type ActionStepResult struct {
	ChartID        string `json:"chartId"`
	ActionStepName string `json:"actionStepName"`
}

// TelescopeResult is returned by TelescopeActionStep.
type TelescopeResult struct {
	ChartID     string `json:"chartId"`
	ParentChart string `json:"parentChart"`
}

// CompletionResult describes what MarkComplete changed.
type CompletionResult struct {
	Name           string `json:"name"`
	ChartID        string `json:"chartId"`
	ChartCompleted bool   `json:"chartCompleted"`
	PropagatedTo   string `json:"propagatedTo,omitempty"`
}

// Progress summarizes a chart's direct action steps.
type Progress struct {
	ChartID          string  `json:"chartId"`
	Progress         float64 `json:"progress"`
	CompletedActions int     `json:"completedActions"`
	TotalActions     int     `json:"totalActions"`
	NextAction       string  `json:"nextAction,omitempty"`
	DueDate          string  `json:"dueDate,omitempty"`
}

// ManageInput is the argument set of ManageActionStep.
type ManageInput struct {
	ParentReference string
	Description     string
	CurrentReality  string
	InitialSubSteps []string
	DueDate         string
}

// ChartService owns the chart lifecycle: creation, action steps,
// telescoping, completion and progress.
type ChartService struct {
	graph     *GraphService
	validator *ValidationService
	log       *zap.Logger
}

// NewChartService creates a new ChartService.
func NewChartService(graph *GraphService, validator *ValidationService, log *zap.Logger) *ChartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChartService{
		graph:     graph,
		validator: validator,
		log:       log,
	}
}

// CreateChart validates outcome and reality, then creates a master chart
// with optional action steps whose due dates are spread evenly up to dueDate.
func (s *ChartService) CreateChart(ctx context.Context, outcome, reality, dueDate string, actionSteps []string) (*ChartResult, error) {
	if err := s.validator.CheckChart(outcome, reality); err != nil {
		return nil, err
	}
	due, err := parseDue(dueDate)
	if err != nil {
		return nil, err
	}

	var result *ChartResult
	err = s.graph.update(ctx, func(g *entities.Graph) error {
		now := timeNow()
		if len(actionSteps) > 0 && !due.After(now) {
			return derrors.NewValidation("dueDate", "must be in the future to distribute action steps")
		}
		if err := checkStepSpacing(now, due, len(actionSteps)); err != nil {
			return err
		}
		result = buildChart(g, now, outcome, reality, dueDate, due, actionSteps)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating chart: %w", err)
	}

	s.log.Info("chart created", zap.String("chart_id", result.ChartID), zap.Int("action_steps", len(actionSteps)))
	return result, nil
}

// AddActionStep creates a sub-chart with title as its outcome under
// parentChartID. The reality must be stated; it is never defaulted. An
// empty dueDate falls halfway between now and the parent's due date.
func (s *ChartService) AddActionStep(ctx context.Context, parentChartID, title, dueDate, reality string) (*ActionStepResult, error) {
	return s.addActionStep(ctx, parentChartID, title, dueDate, reality, nil)
}

func (s *ChartService) addActionStep(ctx context.Context, parentChartID, title, dueDate, reality string, subSteps []string) (*ActionStepResult, error) {
	if err := s.validator.RequireCurrentReality(title, "", reality); err != nil {
		return nil, err
	}
	if err := s.validator.CheckChart(title, reality); err != nil {
		return nil, err
	}

	var result *ActionStepResult
	err := s.graph.update(ctx, func(g *entities.Graph) error {
		parent := g.ChartEntity(parentChartID)
		if parent == nil {
			return chartNotFound(g, parentChartID)
		}
		if parent.DueDate() == "" {
			return derrors.NewValidation("", fmt.Sprintf("Parent chart %s has no due date", parentChartID))
		}
		parentDue, err := entities.ParseDate(parent.DueDate())
		if err != nil {
			return derrors.NewValidation("dueDate", fmt.Sprintf("parent chart %s: %v", parentChartID, err))
		}

		now := timeNow()
		stepDueDate := dueDate
		if stepDueDate == "" {
			stepDueDate = entities.FormatTimestamp(midpoint(now, parentDue))
		}
		due, err := parseDue(stepDueDate)
		if err != nil {
			return err
		}
		if len(subSteps) > 0 && !due.After(now) {
			return derrors.NewValidation("dueDate", "must be in the future to distribute action steps")
		}
		if err := checkStepSpacing(now, due, len(subSteps)); err != nil {
			return err
		}

		child := buildChart(g, now, title, reality, stepDueDate, due, subSteps)
		attachToParent(g, now, child.ChartID, parent, "")
		result = &ActionStepResult{
			ChartID:        child.ChartID,
			ActionStepName: entities.OutcomeName(child.ChartID),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding action step: %w", err)
	}

	s.log.Info("action step added", zap.String("parent_chart", parentChartID), zap.String("chart_id", result.ChartID))
	return result, nil
}

// TelescopeActionStep expands an existing action step (or desired outcome)
// into its own chart under the chart that owns it. The step's text becomes
// the new outcome and its due date is inherited, defaulting to a week out.
func (s *ChartService) TelescopeActionStep(ctx context.Context, actionStepName, reality string, subSteps []string) (*TelescopeResult, error) {
	if err := s.validator.RequireCurrentReality(actionStepName, "", reality); err != nil {
		return nil, err
	}
	if err := s.validator.CheckDelayedResolution(reality); err != nil {
		return nil, err
	}

	var result *TelescopeResult
	err := s.graph.update(ctx, func(g *entities.Graph) error {
		step := g.FindEntityOfType(actionStepName, entities.EntityTypeActionStep, entities.EntityTypeDesiredOutcome)
		if step == nil || step.ChartID() == "" {
			return actionStepNotFound(g, actionStepName)
		}
		owner := g.ChartEntity(step.ChartID())
		if owner == nil {
			return chartNotFound(g, step.ChartID())
		}

		outcome := step.FirstObservation()
		if err := s.validator.CheckCreativeOrientation(outcome); err != nil {
			return err
		}

		now := timeNow()
		dueDate := step.DueDate()
		if dueDate == "" {
			dueDate = owner.DueDate()
		}
		if dueDate == "" {
			dueDate = entities.FormatTimestamp(now.Add(telescopeDefaultHorizon))
		}
		due, err := parseDue(dueDate)
		if err != nil {
			return err
		}
		if len(subSteps) > 0 && !due.After(now) {
			return derrors.NewValidation("dueDate", "inherited due date has passed; cannot distribute sub-steps")
		}
		if err := checkStepSpacing(now, due, len(subSteps)); err != nil {
			return err
		}

		child := buildChart(g, now, outcome, reality, dueDate, due, subSteps)
		attachToParent(g, now, child.ChartID, owner, actionStepName)
		g.AddRelations([]entities.Relation{{
			From:         actionStepName,
			To:           entities.ChartEntityName(child.ChartID),
			RelationType: entities.RelationTelescopesInto,
			Metadata:     &entities.RelationMetadata{CreatedAt: entities.FormatTimestamp(now)},
		}})
		result = &TelescopeResult{ChartID: child.ChartID, ParentChart: owner.ChartID()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("telescoping action step: %w", err)
	}

	s.log.Info("action step telescoped", zap.String("action_step", actionStepName), zap.String("chart_id", result.ChartID))
	return result, nil
}

// ManageActionStep is the unified entry point: a chart id creates a new
// action step under that chart, while an action-step or desired-outcome
// name expands that existing step into a sub-chart.
func (s *ChartService) ManageActionStep(ctx context.Context, in ManageInput) (*ActionStepResult, error) {
	ref := entities.ParseReference(in.ParentReference)

	g, err := s.graph.read(ctx)
	if err != nil {
		return nil, err
	}

	switch ref.Kind {
	case entities.ChartRef:
		if g.ChartEntity(ref.ChartID) == nil {
			return nil, chartNotFound(g, ref.Raw)
		}
		if err := s.validator.RequireCurrentReality(in.Description, ref.Raw, in.CurrentReality); err != nil {
			return nil, err
		}
		return s.addActionStep(ctx, ref.ChartID, in.Description, in.DueDate, in.CurrentReality, in.InitialSubSteps)

	case entities.ActionStepRef:
		if g.FindEntityOfType(ref.Raw, entities.EntityTypeActionStep) == nil {
			return nil, derrors.NewNotFoundWithAvailable(
				"🔍 ACTION STEP ENTITY NOT FOUND",
				ref.Raw,
				`Valid action_step entity name (e.g., "chart_123_action_1")`,
				"Available action steps in memory:",
				availableActionSteps(g),
				"If creating a new action step, use the parent chart ID instead.",
			)
		}
		return s.expand(ctx, ref.Raw, orDefault(in.CurrentReality, ExpandActionStepReality), in.InitialSubSteps)

	case entities.OutcomeRef:
		outcome := g.FindEntityOfType(ref.Raw, entities.EntityTypeDesiredOutcome)
		if outcome == nil || outcome.ChartID() == "" {
			return nil, derrors.NewNotFoundWithAvailable(
				"🔍 DESIRED OUTCOME ENTITY NOT FOUND",
				ref.Raw,
				`Valid desired_outcome entity name (e.g., "chart_123_desired_outcome")`,
				"Available charts in memory:",
				availableCharts(g),
				"If creating a new action step, use the parent chart ID instead.",
			)
		}
		return s.expand(ctx, ref.Raw, orDefault(in.CurrentReality, ExpandOutcomeReality), in.InitialSubSteps)

	case entities.InvalidRef:
		return nil, &derrors.NotFoundError{
			BaseError: derrors.NewBaseError(derrors.ErrorTypeNotFound, fmt.Sprintf(invalidReferenceMessage, ref.Raw), nil),
			Reference: ref.Raw,
			Available: availableCharts(g),
		}
	}
	return nil, fmt.Errorf("unhandled reference kind %s", ref.Kind)
}

func (s *ChartService) expand(ctx context.Context, name, reality string, subSteps []string) (*ActionStepResult, error) {
	res, err := s.TelescopeActionStep(ctx, name, reality, subSteps)
	if err != nil {
		return nil, err
	}
	return &ActionStepResult{
		ChartID:        res.ChartID,
		ActionStepName: entities.OutcomeName(res.ChartID),
	}, nil
}

// MarkComplete completes an action step or desired outcome together with the
// chart that owns it. A completed sub-chart's outcome is recorded once in its
// parent's current reality.
func (s *ChartService) MarkComplete(ctx context.Context, name string) (*CompletionResult, error) {
	var result *CompletionResult
	err := s.graph.update(ctx, func(g *entities.Graph) error {
		step := g.FindEntityOfType(name, entities.EntityTypeActionStep, entities.EntityTypeDesiredOutcome)
		if step == nil {
			return actionStepNotFound(g, name)
		}
		chartID := step.ChartID()
		if chartID == "" {
			return derrors.NewNotFound("Chart ID for action step", name)
		}

		ts := entities.FormatTimestamp(timeNow())
		step.SetComplete(true)
		step.Touch(ts)
		result = &CompletionResult{Name: name, ChartID: chartID}

		chart := g.ChartEntity(chartID)
		if chart == nil {
			return nil
		}
		chart.SetComplete(true)
		chart.Touch(ts)
		result.ChartCompleted = true

		parentID := chart.ParentChart()
		if parentID == "" {
			return nil
		}
		if reality := g.Reality(parentID); reality != nil {
			if reality.AppendUnique("Completed: " + step.FirstObservation()) {
				reality.Touch(ts)
			}
			result.PropagatedTo = reality.Name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("marking %s complete: %w", name, err)
	}

	s.log.Info("action step completed", zap.String("name", name), zap.Bool("chart_completed", result.ChartCompleted))
	return result, nil
}

// UpdateProgress appends note to the named step. With updateReality it also
// records the note in the current reality of the chart containing the step.
func (s *ChartService) UpdateProgress(ctx context.Context, name, note string, updateReality bool) error {
	err := s.graph.update(ctx, func(g *entities.Graph) error {
		step := g.FindEntityOfType(name, entities.EntityTypeActionStep, entities.EntityTypeDesiredOutcome)
		if step == nil {
			return actionStepNotFound(g, name)
		}

		ts := entities.FormatTimestamp(timeNow())
		step.Observations = append(step.Observations, note)
		step.Touch(ts)

		if !updateReality || step.ChartID() == "" {
			return nil
		}
		target := step.ChartID()
		if chart := g.ChartEntity(target); chart != nil && chart.ParentChart() != "" {
			target = chart.ParentChart()
		}
		if reality := g.Reality(target); reality != nil {
			if reality.AppendUnique(fmt.Sprintf("Progress on %s: %s", step.FirstObservation(), note)) {
				reality.Touch(ts)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating progress on %s: %w", name, err)
	}
	return nil
}

// Progress reports completed over total direct action steps of chartID and
// the earliest-due incomplete step.
func (s *ChartService) Progress(ctx context.Context, chartID string) (*Progress, error) {
	g, err := s.graph.read(ctx)
	if err != nil {
		return nil, err
	}
	if g.ChartEntity(chartID) == nil {
		return nil, chartNotFound(g, chartID)
	}
	return chartProgress(g, chartID), nil
}

// RemoveActionStep deletes the sub-chart behind actionStepName, and every
// chart telescoped from it, after checking it belongs to parentChartID. A
// legacy action_step owned directly by the parent is removed on its own.
func (s *ChartService) RemoveActionStep(ctx context.Context, parentChartID, actionStepName string) error {
	var removed int
	err := s.graph.update(ctx, func(g *entities.Graph) error {
		step := g.FindEntityOfType(actionStepName, entities.EntityTypeActionStep, entities.EntityTypeDesiredOutcome)
		if step == nil || step.ChartID() == "" {
			return actionStepNotFound(g, actionStepName)
		}
		ownID := step.ChartID()

		if step.EntityType == entities.EntityTypeActionStep && ownID == parentChartID {
			removed = g.RemoveEntities(map[string]struct{}{step.Name: {}})
			return nil
		}

		chart := g.ChartEntity(ownID)
		if chart == nil || chart.ParentChart() != parentChartID {
			return derrors.NewValidation("", fmt.Sprintf("Action step %s does not belong to chart %s", actionStepName, parentChartID))
		}

		names := make(map[string]struct{})
		for _, id := range descendantCharts(g, ownID) {
			for _, e := range g.EntitiesInChart(id) {
				names[e.Name] = struct{}{}
			}
		}
		removed = g.RemoveEntities(names)
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing action step %s: %w", actionStepName, err)
	}

	s.log.Info("action step removed", zap.String("action_step", actionStepName), zap.Int("entities_removed", removed))
	return nil
}

// UpdateCurrentReality appends unseen observations to the chart's current
// reality and returns those added. Each must pass the delayed-resolution check.
func (s *ChartService) UpdateCurrentReality(ctx context.Context, chartID string, observations []string) ([]string, error) {
	for _, o := range observations {
		if err := s.validator.CheckDelayedResolution(o); err != nil {
			return nil, err
		}
	}

	added := []string{}
	err := s.graph.update(ctx, func(g *entities.Graph) error {
		reality := g.Reality(chartID)
		if reality == nil {
			return derrors.NewNotFound("Chart", chartID+" (or its current reality)")
		}
		for _, o := range observations {
			if reality.AppendUnique(o) {
				added = append(added, o)
			}
		}
		reality.Touch(entities.FormatTimestamp(timeNow()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating current reality of %s: %w", chartID, err)
	}
	return added, nil
}

// UpdateDesiredOutcome replaces the outcome text of chartID.
func (s *ChartService) UpdateDesiredOutcome(ctx context.Context, chartID, outcome string) error {
	if strings.TrimSpace(outcome) == "" {
		return derrors.NewValidation("newDesiredOutcome", "must not be empty")
	}
	if err := s.validator.CheckCreativeOrientation(outcome); err != nil {
		return err
	}

	err := s.graph.update(ctx, func(g *entities.Graph) error {
		e := g.Outcome(chartID)
		if e == nil {
			return derrors.NewNotFound("Chart", chartID+" desired outcome")
		}
		if len(e.Observations) == 0 {
			e.Observations = []string{outcome}
		} else {
			e.Observations[0] = outcome
		}
		e.Touch(entities.FormatTimestamp(timeNow()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating desired outcome of %s: %w", chartID, err)
	}
	return nil
}

// SetDueDate changes the due date of chartID.
func (s *ChartService) SetDueDate(ctx context.Context, chartID, dueDate string) error {
	if _, err := parseDue(dueDate); err != nil {
		return err
	}

	err := s.graph.update(ctx, func(g *entities.Graph) error {
		chart := g.ChartEntity(chartID)
		if chart == nil {
			return chartNotFound(g, chartID)
		}
		chart.Metadata.DueDate = dueDate
		chart.Touch(entities.FormatTimestamp(timeNow()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("setting due date of %s: %w", chartID, err)
	}
	return nil
}

// buildChart adds a level-0 chart with its outcome, reality, action steps
// and relations to g.
func buildChart(g *entities.Graph, now time.Time, outcome, reality, dueDate string, due time.Time, actionSteps []string) *ChartResult {
	chartID := entities.NewChartID(now, func(id string) bool {
		return g.ChartEntity(id) != nil || g.FindEntity(entities.ChartEntityName(id)) != nil
	})
	ts := entities.FormatTimestamp(now)
	chartName := entities.ChartEntityName(chartID)
	outcomeName := entities.OutcomeName(chartID)
	realityName := entities.RealityName(chartID)

	list := []*entities.Entity{
		{
			Name:         chartName,
			EntityType:   entities.EntityTypeChart,
			Observations: []string{"Chart created on " + ts},
			Metadata: &entities.Metadata{
				ChartID:   chartID,
				DueDate:   dueDate,
				Level:     entities.IntPtr(0),
				CreatedAt: ts,
				UpdatedAt: ts,
			},
		},
		{
			Name:         outcomeName,
			EntityType:   entities.EntityTypeDesiredOutcome,
			Observations: []string{outcome},
			Metadata: &entities.Metadata{
				ChartID:   chartID,
				DueDate:   dueDate,
				CreatedAt: ts,
				UpdatedAt: ts,
			},
		},
		{
			Name:         realityName,
			EntityType:   entities.EntityTypeCurrentReality,
			Observations: []string{reality},
			Metadata: &entities.Metadata{
				ChartID:   chartID,
				CreatedAt: ts,
				UpdatedAt: ts,
			},
		},
	}

	rel := func(from, to string, t entities.RelationType) entities.Relation {
		return entities.Relation{From: from, To: to, RelationType: t, Metadata: &entities.RelationMetadata{CreatedAt: ts}}
	}
	relations := []entities.Relation{
		rel(chartName, outcomeName, entities.RelationContains),
		rel(chartName, realityName, entities.RelationContains),
		rel(realityName, outcomeName, entities.RelationCreatesTensionWith),
	}

	dates := DistributeActionStepDates(now, due, len(actionSteps))
	for i, title := range actionSteps {
		name := entities.ActionStepName(chartID, i+1)
		list = append(list, &entities.Entity{
			Name:         name,
			EntityType:   entities.EntityTypeActionStep,
			Observations: []string{title},
			Metadata: &entities.Metadata{
				ChartID:          chartID,
				DueDate:          entities.FormatTimestamp(dates[i]),
				CompletionStatus: entities.BoolPtr(false),
				CreatedAt:        ts,
				UpdatedAt:        ts,
			},
		})
		relations = append(relations,
			rel(chartName, name, entities.RelationContains),
			rel(name, outcomeName, entities.RelationAdvancesToward),
		)
	}

	return &ChartResult{
		ChartID:   chartID,
		Entities:  g.AddEntities(list),
		Relations: g.AddRelations(relations),
	}
}

// attachToParent reparents chartID under parent one level deeper and links
// its outcome to the parent's outcome.
func attachToParent(g *entities.Graph, now time.Time, chartID string, parent *entities.Entity, parentActionStep string) {
	ts := entities.FormatTimestamp(now)
	chart := g.ChartEntity(chartID)
	chart.Metadata.ParentChart = parent.ChartID()
	chart.Metadata.ParentActionStep = parentActionStep
	chart.SetLevel(parent.Level() + 1)
	chart.Touch(ts)

	g.AddRelations([]entities.Relation{{
		From:         entities.OutcomeName(chartID),
		To:           entities.OutcomeName(parent.ChartID()),
		RelationType: entities.RelationAdvancesToward,
		Metadata:     &entities.RelationMetadata{CreatedAt: ts},
	}})
}

// chartProgress computes Progress from an already loaded graph.
func chartProgress(g *entities.Graph, chartID string) *Progress {
	steps := g.ActionSteps(chartID)
	p := &Progress{ChartID: chartID, TotalActions: len(steps)}
	if chart := g.ChartEntity(chartID); chart != nil {
		p.DueDate = chart.DueDate()
	}

	var next *entities.Entity
	for _, st := range steps {
		if st.IsComplete() {
			p.CompletedActions++
			continue
		}
		if next == nil || entities.DueBefore(st, next) {
			next = st
		}
	}
	if p.TotalActions > 0 {
		p.Progress = float64(p.CompletedActions) / float64(p.TotalActions)
	}
	if next != nil {
		p.NextAction = next.Name
	}
	return p
}

// descendantCharts returns rootID and every chart telescoped below it.
func descendantCharts(g *entities.Graph, rootID string) []string {
	ids := []string{rootID}
	seen := map[string]struct{}{rootID: {}}
	for i := 0; i < len(ids); i++ {
		for _, c := range g.EntitiesOfType(entities.EntityTypeChart) {
			if c.ParentChart() != ids[i] {
				continue
			}
			if _, ok := seen[c.ChartID()]; ok {
				continue
			}
			seen[c.ChartID()] = struct{}{}
			ids = append(ids, c.ChartID())
		}
	}
	return ids
}

func chartNotFound(g *entities.Graph, chartID string) error {
	return missingChart(g, "🔍 PARENT CHART NOT FOUND", chartID)
}

func missingChart(g *entities.Graph, title, chartID string) error {
	return derrors.NewNotFoundWithAvailable(
		title,
		chartID,
		`Valid chart ID (e.g., "chart_123")`,
		"Available charts in memory:",
		availableCharts(g),
		"Use 'list_active_charts' to see all available charts.",
	)
}

// actionStepNotFound lists every completable step: legacy action_step
// entities and the outcomes of sub-charts.
func actionStepNotFound(g *entities.Graph, name string) error {
	steps := availableActionSteps(g)
	for _, c := range g.EntitiesOfType(entities.EntityTypeChart) {
		if c.ParentChart() == "" {
			continue
		}
		if o := g.Outcome(c.ChartID()); o != nil {
			steps = append(steps, fmt.Sprintf("- %s: %q", o.Name, o.FirstObservation()))
		}
	}
	return derrors.NewNotFoundWithAvailable(
		"🔍 ACTION STEP NOT FOUND",
		name,
		`Action step name (e.g., "chart_123_action_1" or "chart_456_desired_outcome")`,
		"Available action steps in memory:",
		steps,
		"Use 'get_chart' on a chart to see its action steps.",
	)
}

func availableCharts(g *entities.Graph) []string {
	var out []string
	for _, c := range g.EntitiesOfType(entities.EntityTypeChart) {
		text := "Unknown"
		if o := g.Outcome(c.ChartID()); o != nil && o.FirstObservation() != "" {
			text = o.FirstObservation()
		}
		out = append(out, fmt.Sprintf("- %s: %q", c.ChartID(), text))
	}
	return out
}

func availableActionSteps(g *entities.Graph) []string {
	var out []string
	for _, st := range g.EntitiesOfType(entities.EntityTypeActionStep) {
		out = append(out, fmt.Sprintf("- %s: %q", st.Name, st.FirstObservation()))
	}
	return out
}

func parseDue(dueDate string) (time.Time, error) {
	if strings.TrimSpace(dueDate) == "" {
		return time.Time{}, derrors.NewValidation("dueDate", "is required")
	}
	t, err := entities.ParseDate(dueDate)
	if err != nil {
		return time.Time{}, derrors.NewValidation("dueDate", err.Error())
	}
	return t, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
