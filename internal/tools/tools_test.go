package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tension-core/internal/application/handlers"
	"github.com/ersonp/tension-core/internal/domain/entities"
	"github.com/ersonp/tension-core/internal/domain/mocks"
	"github.com/ersonp/tension-core/internal/domain/services"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

func newTestHandlers(t *testing.T) (Handlers, *mocks.GraphStore) {
	t.Helper()
	store := mocks.NewGraphStore()
	graph := services.NewGraphService(store, nil)
	charts := services.NewChartService(graph, services.NewValidationService(), nil)
	query := services.NewQueryService(graph)
	return Handlers{
		Chart:     handlers.NewChartHandler(charts),
		Query:     handlers.NewQueryHandler(query),
		Graph:     handlers.NewGraphHandler(graph),
		Narrative: handlers.NewNarrativeHandler(services.NewNarrativeService(graph, nil)),
		Guidance:  handlers.NewGuidanceHandler(charts, query),
	}, store
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, tool Tool, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	res, err := tool.Handle(context.Background(), makeReq(args))
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func createChart(t *testing.T, h Handlers, steps ...interface{}) services.ChartResult {
	t.Helper()
	res := call(t, NewCreateChartTool(h.Chart), map[string]interface{}{
		"desiredOutcome": "A community garden with twenty plots",
		"currentReality": "Vacant lot leased, no soil tested",
		"dueDate":        "2099-04-01",
		"actionSteps":    steps,
	})
	require.False(t, res.IsError, resultText(res))

	var out services.ChartResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &out))
	return out
}

// ─── Definitions ─────────────────────────────────────────────────────────────

func TestAll_DefinitionsAreUnique(t *testing.T) {
	h, _ := newTestHandlers(t)

	seen := make(map[string]bool)
	for _, tool := range All(h) {
		def := tool.Definition()
		assert.False(t, seen[def.Name], "duplicate tool %s", def.Name)
		seen[def.Name] = true
		assert.NotEmpty(t, def.Description, def.Name)
	}
	assert.Len(t, seen, 27)

	for group, names := range Groups {
		for _, n := range names {
			assert.True(t, seen[n], "group %s names unknown tool %s", group, n)
		}
	}
}

func TestCreateChartTool_Definition(t *testing.T) {
	h, _ := newTestHandlers(t)
	def := NewCreateChartTool(h.Chart).Definition()

	assert.Equal(t, CreateChart, def.Name)
	for _, p := range []string{"desiredOutcome", "currentReality", "dueDate", "actionSteps"} {
		assert.Contains(t, def.InputSchema.Properties, p)
	}
	assert.ElementsMatch(t, []string{"desiredOutcome", "currentReality", "dueDate"}, def.InputSchema.Required)
}

// ─── Chart tools ─────────────────────────────────────────────────────────────

func TestCreateChartTool_Handle(t *testing.T) {
	h, store := newTestHandlers(t)

	chart := createChart(t, h, "Test the soil", "Build raised beds")

	assert.NotEmpty(t, chart.ChartID)
	assert.Len(t, chart.Entities, 5)
	assert.Len(t, store.Snapshot().ActionSteps(chart.ChartID), 2)
}

func TestCreateChartTool_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing outcome",
			args: map[string]interface{}{"currentReality": "Lot leased", "dueDate": "2099-04-01"},
			want: "invalid desiredOutcome",
		},
		{
			name: "wrong type",
			args: map[string]interface{}{"desiredOutcome": "A garden", "currentReality": "Lot leased", "dueDate": 20990401},
			want: "invalid dueDate",
		},
		{
			name: "problem solving language",
			args: map[string]interface{}{"desiredOutcome": "Eliminate weeds", "currentReality": "Lot leased", "dueDate": "2099-04-01"},
			want: "CREATIVE ORIENTATION REQUIRED",
		},
		{
			name: "readiness language",
			args: map[string]interface{}{"desiredOutcome": "A garden", "currentReality": "All set to plant", "dueDate": "2099-04-01"},
			want: "DELAYED RESOLUTION PRINCIPLE VIOLATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newTestHandlers(t)

			res := call(t, NewCreateChartTool(h.Chart), tt.args)

			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.want)
			assert.Zero(t, store.Saves)
		})
	}
}

func TestManageActionStepTool_Handle(t *testing.T) {
	h, store := newTestHandlers(t)
	chart := createChart(t, h)
	tool := NewManageActionStepTool(h.Chart)

	res := call(t, tool, map[string]interface{}{
		"parentReference":   chart.ChartID,
		"actionDescription": "Test the soil",
		"currentReality":    "Sample kit ordered",
	})
	require.False(t, res.IsError, resultText(res))

	var step services.ActionStepResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &step))
	child := store.Snapshot().ChartEntity(step.ChartID)
	require.NotNil(t, child)
	assert.Equal(t, chart.ChartID, child.ParentChart())
	assert.Equal(t, 1, child.Level())

	res = call(t, tool, map[string]interface{}{
		"parentReference":   "garden",
		"actionDescription": "Test the soil",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "INVALID PARENT REFERENCE FORMAT")
}

func TestMarkCompleteTool_Handle(t *testing.T) {
	h, store := newTestHandlers(t)
	chart := createChart(t, h, "Test the soil")
	name := entities.ActionStepName(chart.ChartID, 1)

	res := call(t, NewMarkCompleteTool(h.Chart), map[string]interface{}{"actionStepName": name})
	require.False(t, res.IsError, resultText(res))
	assert.True(t, store.Snapshot().FindEntity(name).IsComplete())

	res = call(t, NewMarkCompleteTool(h.Chart), map[string]interface{}{"actionStepName": "chart_1_action_9"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "ACTION STEP NOT FOUND")
}

func TestProgressAndUpdateTools(t *testing.T) {
	h, store := newTestHandlers(t)
	chart := createChart(t, h, "Test the soil", "Build raised beds")
	first := entities.ActionStepName(chart.ChartID, 1)

	res := call(t, NewUpdateProgressTool(h.Chart), map[string]interface{}{
		"actionStepName":       first,
		"progressObservation":  "Two samples sent to the lab",
		"updateCurrentReality": true,
	})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), "Progress recorded")

	res = call(t, NewUpdateRealityTool(h.Chart), map[string]interface{}{
		"chartId":         chart.ChartID,
		"newObservations": []interface{}{"Water line connected"},
	})
	require.False(t, res.IsError, resultText(res))

	reality := store.Snapshot().Reality(chart.ChartID).Observations
	assert.Contains(t, reality, "Progress on Test the soil: Two samples sent to the lab")
	assert.Contains(t, reality, "Water line connected")

	res = call(t, NewProgressTool(h.Chart), map[string]interface{}{"chartId": chart.ChartID})
	require.False(t, res.IsError, resultText(res))
	var p services.Progress
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &p))
	assert.Equal(t, 2, p.TotalActions)
	assert.Equal(t, first, p.NextAction)
}

func TestRemoveActionStepTool_Handle(t *testing.T) {
	h, store := newTestHandlers(t)
	chart := createChart(t, h)
	res := call(t, NewAddActionStepTool(h.Chart), map[string]interface{}{
		"parentChartId":   chart.ChartID,
		"actionStepTitle": "Build raised beds",
		"currentReality":  "Lumber quote received",
	})
	require.False(t, res.IsError, resultText(res))
	var step services.ActionStepResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &step))

	res = call(t, NewRemoveActionStepTool(h.Chart), map[string]interface{}{
		"parentChartId":  "chart_0",
		"actionStepName": step.ActionStepName,
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "does not belong to chart chart_0")

	res = call(t, NewRemoveActionStepTool(h.Chart), map[string]interface{}{
		"parentChartId":  chart.ChartID,
		"actionStepName": step.ActionStepName,
	})
	require.False(t, res.IsError, resultText(res))
	assert.Nil(t, store.Snapshot().ChartEntity(step.ChartID))
}

// ─── Query tools ─────────────────────────────────────────────────────────────

func TestQueryTools(t *testing.T) {
	h, _ := newTestHandlers(t)
	chart := createChart(t, h, "Test the soil")

	res := call(t, NewListChartsTool(h.Query), nil)
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), chart.ChartID)
	assert.Contains(t, resultText(res), "A community garden with twenty plots")

	res = call(t, NewGetChartTool(h.Query), map[string]interface{}{"chartId": chart.ChartID})
	require.False(t, res.IsError, resultText(res))
	var g entities.Graph
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &g))
	assert.Len(t, g.Entities, 4)

	res = call(t, NewGetActionStepTool(h.Query), map[string]interface{}{"actionStepName": "nope"})
	assert.True(t, res.IsError)
}

// ─── Knowledge-graph tools ───────────────────────────────────────────────────

func graphTool(t *testing.T, h Handlers, name string) Tool {
	t.Helper()
	for _, g := range NewGraphTools(h.Graph) {
		if g.Definition().Name == name {
			return g
		}
	}
	t.Fatalf("no graph tool %s", name)
	return nil
}

func TestGraphTools(t *testing.T) {
	h, store := newTestHandlers(t)

	res := call(t, graphTool(t, h, CreateEntities), map[string]interface{}{
		"entities": []interface{}{
			map[string]interface{}{"name": "Maria", "entityType": "person", "observations": []interface{}{"Coordinates volunteers"}},
			map[string]interface{}{"name": "Tool Shed", "entityType": "place", "observations": []interface{}{}},
		},
	})
	require.False(t, res.IsError, resultText(res))

	res = call(t, graphTool(t, h, CreateRelations), map[string]interface{}{
		"relations": []interface{}{
			map[string]interface{}{"from": "Maria", "to": "Tool Shed", "relationType": "keeps_keys_of"},
		},
	})
	require.False(t, res.IsError, resultText(res))

	res = call(t, graphTool(t, h, AddObservations), map[string]interface{}{
		"observations": []interface{}{
			map[string]interface{}{"entityName": "Maria", "contents": []interface{}{"Lives next door"}},
		},
	})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), "Lives next door")

	res = call(t, graphTool(t, h, SearchNodes), map[string]interface{}{"query": "volunteers"})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), "Maria")
	assert.NotContains(t, resultText(res), "Tool Shed")

	res = call(t, graphTool(t, h, OpenNodes), map[string]interface{}{"names": []interface{}{"Maria", "Tool Shed"}})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), "keeps_keys_of")

	res = call(t, graphTool(t, h, DeleteObservations), map[string]interface{}{
		"deletions": []interface{}{
			map[string]interface{}{"entityName": "Maria", "observations": []interface{}{"Lives next door"}},
		},
	})
	require.False(t, res.IsError, resultText(res))

	res = call(t, graphTool(t, h, DeleteRelations), map[string]interface{}{
		"relations": []interface{}{
			map[string]interface{}{"from": "Maria", "to": "Tool Shed", "relationType": "keeps_keys_of"},
		},
	})
	require.False(t, res.IsError, resultText(res))

	res = call(t, graphTool(t, h, DeleteEntities), map[string]interface{}{"entityNames": []interface{}{"Tool Shed"}})
	require.False(t, res.IsError, resultText(res))

	res = call(t, graphTool(t, h, ReadGraph), nil)
	require.False(t, res.IsError, resultText(res))
	var g entities.Graph
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &g))
	require.Len(t, g.Entities, 1)
	assert.Equal(t, []string{"Coordinates volunteers"}, g.Entities[0].Observations)
	assert.Empty(t, g.Relations)
	assert.Equal(t, []string{"Coordinates volunteers"}, store.Snapshot().FindEntity("Maria").Observations)
}

func TestGraphTools_ValidationErrors(t *testing.T) {
	h, _ := newTestHandlers(t)

	res := call(t, graphTool(t, h, CreateEntities), map[string]interface{}{
		"entities": []interface{}{map[string]interface{}{"entityType": "person"}},
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "entities[0].name")

	res = call(t, graphTool(t, h, AddObservations), map[string]interface{}{
		"observations": []interface{}{map[string]interface{}{"entityName": "Ghost", "contents": []interface{}{"x"}}},
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "Ghost not found")

	res = call(t, graphTool(t, h, OpenNodes), map[string]interface{}{"names": "Maria"})
	assert.True(t, res.IsError)
}

// ─── Narrative and guidance tools ────────────────────────────────────────────

func TestNarrativeTools(t *testing.T) {
	h, _ := newTestHandlers(t)
	chart := createChart(t, h)

	res := call(t, NewCreateBeatTool(h.Narrative), map[string]interface{}{
		"parentChartId": chart.ChartID,
		"title":         "Ground breaking",
		"act":           float64(1),
		"type_dramatic": "Setup",
		"universes":     []interface{}{"engineer-world"},
		"lessons":       []interface{}{"Start with the soil"},
	})
	require.False(t, res.IsError, resultText(res))
	var beat services.BeatResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &beat))
	assert.True(t, beat.Documents)
	assert.True(t, strings.HasPrefix(beat.BeatName, chart.ChartID+"_beat_"))

	res = call(t, NewCreateBeatTool(h.Narrative), map[string]interface{}{
		"parentChartId": chart.ChartID,
		"title":         "Ground breaking",
		"act":           "one",
		"type_dramatic": "Setup",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "act")

	res = call(t, NewTelescopeBeatTool(h.Narrative), map[string]interface{}{
		"parentBeatName":    beat.BeatName,
		"newCurrentReality": "Beds built",
		"initialSubBeats": []interface{}{
			map[string]interface{}{"title": "First seedlings", "type_dramatic": "Rising Action"},
		},
	})
	require.False(t, res.IsError, resultText(res))

	res = call(t, NewListBeatsTool(h.Narrative), map[string]interface{}{"parentChartId": chart.ChartID})
	require.False(t, res.IsError, resultText(res))
	var beats []entities.Entity
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &beats))
	require.Len(t, beats, 1)
	assert.Equal(t, beat.BeatName, beats[0].Name)
}

func TestGuidanceTools(t *testing.T) {
	h, _ := newTestHandlers(t)
	chart := createChart(t, h, "Test the soil")

	res := call(t, NewInitGuidanceTool(h.Guidance), nil)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(res), "Working Guide")

	res = call(t, NewInitGuidanceTool(h.Guidance), map[string]interface{}{"format": "quick"})
	assert.Contains(t, resultText(res), "Quick Reference")

	res = call(t, NewMomentOfTruthTool(h.Guidance), map[string]interface{}{"chartId": chart.ChartID})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), "**Progress**: 0% (0/1 action steps)")

	res = call(t, NewMomentOfTruthTool(h.Guidance), map[string]interface{}{"chartId": chart.ChartID, "step": "plan", "userInput": "Order soil earlier"})
	assert.Contains(t, resultText(res), "**User's Plan**: Order soil earlier")

	res = call(t, NewMomentOfTruthTool(h.Guidance), map[string]interface{}{"chartId": "chart_404"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "PARENT CHART NOT FOUND")
}
