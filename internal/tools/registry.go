package tools

import "github.com/ersonp/tension-core/internal/application/handlers"

// Handlers bundles the application handlers the tools delegate to.
type Handlers struct {
	Chart     *handlers.ChartHandler
	Query     *handlers.QueryHandler
	Graph     *handlers.GraphHandler
	Narrative *handlers.NarrativeHandler
	Guidance  *handlers.GuidanceHandler
}

// All returns every tool, knowledge-graph tools first.
func All(h Handlers) []Tool {
	var all []Tool
	for _, g := range NewGraphTools(h.Graph) {
		all = append(all, g)
	}
	return append(all,
		NewCreateChartTool(h.Chart),
		NewTelescopeActionStepTool(h.Chart),
		NewAddActionStepTool(h.Chart),
		NewRemoveActionStepTool(h.Chart),
		NewManageActionStepTool(h.Chart),
		NewMarkCompleteTool(h.Chart),
		NewProgressTool(h.Chart),
		NewListChartsTool(h.Query),
		NewGetChartTool(h.Query),
		NewGetActionStepTool(h.Query),
		NewUpdateProgressTool(h.Chart),
		NewUpdateRealityTool(h.Chart),
		NewUpdateOutcomeTool(h.Chart),
		NewMomentOfTruthTool(h.Guidance),
		NewCreateBeatTool(h.Narrative),
		NewTelescopeBeatTool(h.Narrative),
		NewListBeatsTool(h.Narrative),
		NewInitGuidanceTool(h.Guidance),
	)
}
