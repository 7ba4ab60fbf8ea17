package entities

// Narrative is the prose block of a narrative beat.
type Narrative struct {
	Description string   `json:"description"`
	Prose       string   `json:"prose"`
	Lessons     []string `json:"lessons"`
}

// RelationalAlignment records whether a beat has been assessed.
type RelationalAlignment struct {
	Assessed   bool     `json:"assessed"`
	Score      *float64 `json:"score"`
	Principles []string `json:"principles"`
}

// FourDirections holds the four-directions inquiry answers. Nil means unanswered.
type FourDirections struct {
	NorthVision       *string `json:"north_vision"`
	EastIntention     *string `json:"east_intention"`
	SouthEmotion      *string `json:"south_emotion"`
	WestIntrospection *string `json:"west_introspection"`
}

// DefaultUniverse is used when a beat has no universes to inherit.
const DefaultUniverse = "engineer-world"
