// Package entities contains core domain data structures.
package entities

import "strings"

// EntityType categorizes an entity. Chart types are fixed; any other string
// is accepted for free-form knowledge-graph entities.
type EntityType string

const (
	EntityTypeChart          EntityType = "structural_tension_chart"
	EntityTypeDesiredOutcome EntityType = "desired_outcome"
	EntityTypeCurrentReality EntityType = "current_reality"
	EntityTypeActionStep     EntityType = "action_step"
	EntityTypeNarrativeBeat  EntityType = "narrative_beat"
)

// Phase is the creative-cycle phase of a chart element.
type Phase string

const (
	PhaseGermination  Phase = "germination"
	PhaseAssimilation Phase = "assimilation"
	PhaseCompletion   Phase = "completion"
)

// Entity is a named record in the graph. Name is globally unique and doubles
// as a structured key (e.g. "chart_123_desired_outcome").
type Entity struct {
	Name         string     `json:"name"`
	EntityType   EntityType `json:"entityType"`
	Observations []string   `json:"observations"`
	Metadata     *Metadata  `json:"metadata,omitempty"`
}

// Metadata carries chart bookkeeping and, for narrative beats, the beat
// fields. Pointer fields distinguish "unset" from the zero value.
type Metadata struct {
	ChartID          string `json:"chartId,omitempty"`
	DueDate          string `json:"dueDate,omitempty"`
	Phase            Phase  `json:"phase,omitempty"`
	CompletionStatus *bool  `json:"completionStatus,omitempty"`
	ParentChart      string `json:"parentChart,omitempty"`
	ParentActionStep string `json:"parentActionStep,omitempty"`
	Level            *int   `json:"level,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"`

	Act                 int                  `json:"act,omitempty"`
	TypeDramatic        string               `json:"type_dramatic,omitempty"`
	Universes           []string             `json:"universes,omitempty"`
	Timestamp           string               `json:"timestamp,omitempty"`
	Narrative           *Narrative           `json:"narrative,omitempty"`
	RelationalAlignment *RelationalAlignment `json:"relationalAlignment,omitempty"`
	FourDirections      *FourDirections      `json:"fourDirections,omitempty"`
}

// ChartID returns the chart id from metadata, or "" when there is none.
func (e *Entity) ChartID() string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata.ChartID
}

// Level returns the hierarchy level. Missing levels count as master (0).
func (e *Entity) Level() int {
	if e.Metadata == nil || e.Metadata.Level == nil {
		return 0
	}
	return *e.Metadata.Level
}

// ParentChart returns the id of the chart this one telescopes from.
func (e *Entity) ParentChart() string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata.ParentChart
}

// DueDate returns the raw due date string.
func (e *Entity) DueDate() string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata.DueDate
}

// IsComplete reports whether completionStatus is set to true.
func (e *Entity) IsComplete() bool {
	return e.Metadata != nil && e.Metadata.CompletionStatus != nil && *e.Metadata.CompletionStatus
}

// FirstObservation returns observations[0], or "" for an empty entity.
func (e *Entity) FirstObservation() string {
	if len(e.Observations) == 0 {
		return ""
	}
	return e.Observations[0]
}

// HasObservation reports whether the exact string is already recorded.
func (e *Entity) HasObservation(obs string) bool {
	for _, o := range e.Observations {
		if o == obs {
			return true
		}
	}
	return false
}

// AppendUnique appends obs unless it is already present. It reports whether
// the observation was added.
func (e *Entity) AppendUnique(obs string) bool {
	if e.HasObservation(obs) {
		return false
	}
	e.Observations = append(e.Observations, obs)
	return true
}

// SetLevel sets metadata.level, allocating metadata if needed.
func (e *Entity) SetLevel(level int) {
	e.ensureMetadata()
	e.Metadata.Level = &level
}

// SetComplete sets metadata.completionStatus.
func (e *Entity) SetComplete(done bool) {
	e.ensureMetadata()
	e.Metadata.CompletionStatus = &done
}

// Touch sets metadata.updatedAt.
func (e *Entity) Touch(ts string) {
	e.ensureMetadata()
	e.Metadata.UpdatedAt = ts
}

// Matches reports whether query (already lowercased) occurs in the name,
// entity type or any observation.
func (e *Entity) Matches(query string) bool {
	if strings.Contains(strings.ToLower(e.Name), query) ||
		strings.Contains(strings.ToLower(string(e.EntityType)), query) {
		return true
	}
	for _, o := range e.Observations {
		if strings.Contains(strings.ToLower(o), query) {
			return true
		}
	}
	return false
}

func (e *Entity) ensureMetadata() {
	if e.Metadata == nil {
		e.Metadata = &Metadata{}
	}
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }
