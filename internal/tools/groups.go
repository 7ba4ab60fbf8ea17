package tools

import (
	"strings"
	"unicode"
)

// Tool names.
const (
	CreateEntities     = "create_entities"
	CreateRelations    = "create_relations"
	AddObservations    = "add_observations"
	DeleteEntities     = "delete_entities"
	DeleteObservations = "delete_observations"
	DeleteRelations    = "delete_relations"
	ReadGraph          = "read_graph"
	SearchNodes        = "search_nodes"
	OpenNodes          = "open_nodes"

	CreateChart          = "create_structural_tension_chart"
	TelescopeActionStep  = "telescope_action_step"
	AddActionStep        = "add_action_step"
	RemoveActionStep     = "remove_action_step"
	ManageActionStep     = "manage_action_step"
	MarkActionComplete   = "mark_action_complete"
	GetChartProgress     = "get_chart_progress"
	ListActiveCharts     = "list_active_charts"
	GetChart             = "get_chart"
	GetActionStep        = "get_action_step"
	UpdateActionProgress = "update_action_progress"
	UpdateCurrentReality = "update_current_reality"
	UpdateDesiredOutcome = "update_desired_outcome"
	CreatorMomentOfTruth = "creator_moment_of_truth"

	CreateNarrativeBeat    = "create_narrative_beat"
	TelescopeNarrativeBeat = "telescope_narrative_beat"
	ListNarrativeBeats     = "list_narrative_beats"

	InitLLMGuidance = "init_llm_guidance"
)

// Groups maps a group name to the tools it enables.
var Groups = map[string][]string{
	"STC_TOOLS": {
		CreateChart,
		TelescopeActionStep,
		AddActionStep,
		RemoveActionStep,
		ManageActionStep,
		MarkActionComplete,
		GetChartProgress,
		ListActiveCharts,
		GetChart,
		GetActionStep,
		UpdateActionProgress,
		UpdateCurrentReality,
		UpdateDesiredOutcome,
		CreatorMomentOfTruth,
	},
	"NARRATIVE_TOOLS": {
		CreateNarrativeBeat,
		TelescopeNarrativeBeat,
		ListNarrativeBeats,
	},
	"KG_TOOLS": {
		CreateEntities,
		CreateRelations,
		AddObservations,
		DeleteEntities,
		DeleteObservations,
		DeleteRelations,
		SearchNodes,
		OpenNodes,
		ReadGraph,
	},
	"CORE_TOOLS": {
		ListActiveCharts,
		CreateChart,
		AddActionStep,
		ManageActionStep,
		MarkActionComplete,
	},
}

// DefaultSelection is used when no tool selection is configured.
const DefaultSelection = "STC_TOOLS,NARRATIVE_TOOLS," + InitLLMGuidance

// EnabledTools resolves a selection of group and tool names, minus the
// disabled tool names. Both lists are separated by commas or whitespace.
// A name that is not a group is taken as a tool name. A blank selection
// means DefaultSelection.
func EnabledTools(selection, disabled string) map[string]bool {
	if strings.TrimSpace(selection) == "" {
		selection = DefaultSelection
	}
	enabled := make(map[string]bool)
	for _, name := range splitList(selection) {
		if group, ok := Groups[name]; ok {
			for _, tool := range group {
				enabled[tool] = true
			}
			continue
		}
		enabled[name] = true
	}
	for _, name := range splitList(disabled) {
		delete(enabled, name)
	}
	return enabled
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
