package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/tension-core/internal/domain/mocks"
	"github.com/ersonp/tension-core/internal/domain/services"
)

const farDue = "2099-06-01"

type testHandlers struct {
	store     *mocks.GraphStore
	chart     *ChartHandler
	query     *QueryHandler
	graph     *GraphHandler
	narrative *NarrativeHandler
	guidance  *GuidanceHandler
}

func setupHandlers(t *testing.T) *testHandlers {
	t.Helper()

	store := mocks.NewGraphStore()
	graph := services.NewGraphService(store, nil)
	charts := services.NewChartService(graph, services.NewValidationService(), nil)
	query := services.NewQueryService(graph)
	return &testHandlers{
		store:     store,
		chart:     NewChartHandler(charts),
		query:     NewQueryHandler(query),
		graph:     NewGraphHandler(graph),
		narrative: NewNarrativeHandler(services.NewNarrativeService(graph, nil)),
		guidance:  NewGuidanceHandler(charts, query),
	}
}

func (th *testHandlers) createChart(t *testing.T, steps ...string) *services.ChartResult {
	t.Helper()
	res, err := th.chart.HandleCreate(t.Context(), CreateChartInput{
		DesiredOutcome: "A published recipe website",
		CurrentReality: "Twelve recipes written in a notebook",
		DueDate:        farDue,
		ActionSteps:    steps,
	})
	require.NoError(t, err)
	return res
}
