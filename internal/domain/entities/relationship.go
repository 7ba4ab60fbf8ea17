package entities

// RelationType defines the kind of edge between two entities. Unknown values
// are kept as-is for free-form relations.
type RelationType string

const (
	RelationContains           RelationType = "contains"
	RelationCreatesTensionWith RelationType = "creates_tension_with"
	RelationAdvancesToward     RelationType = "advances_toward"
	RelationDocuments          RelationType = "documents"
	RelationPrecedes           RelationType = "precedes"
	RelationTriggers           RelationType = "triggers"
	RelationEnables            RelationType = "enables"
	RelationLeadsTo            RelationType = "leads_to"
	RelationInstantiates       RelationType = "instantiates"
	RelationIlluminates        RelationType = "illuminates"
	RelationTelescopesInto     RelationType = "telescopes_into"
	RelationFlowsInto          RelationType = "flows_into"
)

// Relation is a directed, typed edge. Its identity is the (from, to, type)
// triple; metadata does not take part in equality.
type Relation struct {
	From         string            `json:"from"`
	To           string            `json:"to"`
	RelationType RelationType      `json:"relationType"`
	Metadata     *RelationMetadata `json:"metadata,omitempty"`
}

// RelationMetadata is optional descriptive data on a relation.
type RelationMetadata struct {
	CreatedAt   string   `json:"createdAt,omitempty"`
	Strength    *float64 `json:"strength,omitempty"`
	Context     string   `json:"context,omitempty"`
	Description string   `json:"description,omitempty"`
}

// SameAs reports whether two relations have the same identity triple.
func (r Relation) SameAs(other Relation) bool {
	return r.From == other.From && r.To == other.To && r.RelationType == other.RelationType
}

// Touches reports whether either endpoint is in names.
func (r Relation) Touches(names map[string]struct{}) bool {
	_, from := names[r.From]
	_, to := names[r.To]
	return from || to
}

// Within reports whether both endpoints are in names.
func (r Relation) Within(names map[string]struct{}) bool {
	_, from := names[r.From]
	_, to := names[r.To]
	return from && to
}

func (r Relation) key() relationKey {
	return relationKey{from: r.From, to: r.To, relationType: r.RelationType}
}

type relationKey struct {
	from         string
	to           string
	relationType RelationType
}
