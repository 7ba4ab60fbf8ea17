package services

import (
	"context"
	"sort"

	"github.com/ersonp/tension-core/internal/domain/entities"
)

// ChartSummary is one row of ListCharts.
type ChartSummary struct {
	ChartID          string  `json:"chartId"`
	DesiredOutcome   string  `json:"desiredOutcome"`
	DueDate          string  `json:"dueDate,omitempty"`
	Progress         float64 `json:"progress"`
	CompletedActions int     `json:"completedActions"`
	TotalActions     int     `json:"totalActions"`
	Level            int     `json:"level"`
	ParentChart      string  `json:"parentChart,omitempty"`
	Completed        bool    `json:"completed"`
}

// Stats aggregates counts across the whole graph.
type Stats struct {
	TotalEntities         int     `json:"totalEntities"`
	TotalRelations        int     `json:"totalRelations"`
	TotalCharts           int     `json:"totalCharts"`
	MasterCharts          int     `json:"masterCharts"`
	ActionCharts          int     `json:"actionCharts"`
	CompletedActionCharts int     `json:"completedActionCharts"`
	NarrativeBeats        int     `json:"narrativeBeats"`
	TotalActions          int     `json:"totalActions"`
	CompletedActions      int     `json:"completedActions"`
	OverdueCharts         int     `json:"overdueCharts"`
	OverallProgress       float64 `json:"overallProgress"`
}

// QueryService assembles read-only views over the graph.
type QueryService struct {
	graph *GraphService
}

// NewQueryService creates a new query service.
func NewQueryService(graph *GraphService) *QueryService {
	return &QueryService{graph: graph}
}

// ListCharts returns every chart with its outcome and progress, masters
// first, then by due date within a level.
func (s *QueryService) ListCharts(ctx context.Context) ([]ChartSummary, error) {
	g, err := s.graph.read(ctx)
	if err != nil {
		return nil, err
	}

	charts := g.EntitiesOfType(entities.EntityTypeChart)
	sort.SliceStable(charts, func(i, j int) bool {
		if charts[i].Level() != charts[j].Level() {
			return charts[i].Level() < charts[j].Level()
		}
		return entities.DueBefore(charts[i], charts[j])
	})

	out := make([]ChartSummary, 0, len(charts))
	for _, c := range charts {
		id := c.ChartID()
		p := chartProgress(g, id)
		outcome := "Unknown outcome"
		if o := g.Outcome(id); o != nil && o.FirstObservation() != "" {
			outcome = o.FirstObservation()
		}
		out = append(out, ChartSummary{
			ChartID:          id,
			DesiredOutcome:   outcome,
			DueDate:          c.DueDate(),
			Progress:         p.Progress,
			CompletedActions: p.CompletedActions,
			TotalActions:     p.TotalActions,
			Level:            c.Level(),
			ParentChart:      c.ParentChart(),
			Completed:        c.IsComplete(),
		})
	}
	return out, nil
}

// ChartDetails returns every entity of chartID with the relations among them.
func (s *QueryService) ChartDetails(ctx context.Context, chartID string) (*entities.Graph, error) {
	g, err := s.graph.read(ctx)
	if err != nil {
		return nil, err
	}
	return chartDetails(g, chartID)
}

// ActionStepDetails resolves the chart an action step or outcome belongs to
// and returns that chart's details.
func (s *QueryService) ActionStepDetails(ctx context.Context, name string) (*entities.Graph, error) {
	g, err := s.graph.read(ctx)
	if err != nil {
		return nil, err
	}
	step := g.FindEntityOfType(name, entities.EntityTypeActionStep, entities.EntityTypeDesiredOutcome)
	if step == nil || step.ChartID() == "" {
		return nil, actionStepNotFound(g, name)
	}
	return chartDetails(g, step.ChartID())
}

// Stats summarizes the graph.
func (s *QueryService) Stats(ctx context.Context) (*Stats, error) {
	g, err := s.graph.read(ctx)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	st := &Stats{
		TotalEntities:  len(g.Entities),
		TotalRelations: len(g.Relations),
		NarrativeBeats: len(g.EntitiesOfType(entities.EntityTypeNarrativeBeat)),
	}
	for _, c := range g.EntitiesOfType(entities.EntityTypeChart) {
		st.TotalCharts++
		if c.Level() == 0 {
			st.MasterCharts++
		} else {
			st.ActionCharts++
			if c.IsComplete() {
				st.CompletedActionCharts++
			}
		}

		steps := g.ActionSteps(c.ChartID())
		st.TotalActions += len(steps)
		for _, a := range steps {
			if a.IsComplete() {
				st.CompletedActions++
			}
		}

		if due, ok := c.DueTime(); ok && due.Before(now) && !c.IsComplete() {
			st.OverdueCharts++
		}
	}
	if st.TotalActions > 0 {
		st.OverallProgress = float64(st.CompletedActions) / float64(st.TotalActions)
	}
	return st, nil
}

func chartDetails(g *entities.Graph, chartID string) (*entities.Graph, error) {
	members := g.EntitiesInChart(chartID)
	if len(members) == 0 {
		return nil, missingChart(g, "🔍 CHART NOT FOUND", chartID)
	}
	return g.Subgraph(members), nil
}
