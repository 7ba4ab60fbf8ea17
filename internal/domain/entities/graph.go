package entities

import (
	"encoding/json"
	"fmt"
)

// Graph is the whole persisted collection. Entity and relation order is
// insertion order and is preserved through save and load.
type Graph struct {
	Entities  []*Entity  `json:"entities"`
	Relations []Relation `json:"relations"`
}

// NewGraph returns an empty graph with non-nil slices.
func NewGraph() *Graph {
	return &Graph{
		Entities:  []*Entity{},
		Relations: []Relation{},
	}
}

// FindEntity returns the entity with the given name, or nil.
func (g *Graph) FindEntity(name string) *Entity {
	for _, e := range g.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindEntityOfType returns the named entity if its type is one of types.
func (g *Graph) FindEntityOfType(name string, types ...EntityType) *Entity {
	e := g.FindEntity(name)
	if e == nil {
		return nil
	}
	for _, t := range types {
		if e.EntityType == t {
			return e
		}
	}
	return nil
}

// ChartEntity returns the structural_tension_chart entity for chartID.
func (g *Graph) ChartEntity(chartID string) *Entity {
	for _, e := range g.Entities {
		if e.EntityType == EntityTypeChart && e.ChartID() == chartID {
			return e
		}
	}
	return nil
}

// Outcome returns the desired_outcome entity of chartID.
func (g *Graph) Outcome(chartID string) *Entity {
	return g.FindEntityOfType(OutcomeName(chartID), EntityTypeDesiredOutcome)
}

// Reality returns the current_reality entity of chartID.
func (g *Graph) Reality(chartID string) *Entity {
	return g.FindEntityOfType(RealityName(chartID), EntityTypeCurrentReality)
}

// EntitiesOfType returns every entity of type t in insertion order.
func (g *Graph) EntitiesOfType(t EntityType) []*Entity {
	var out []*Entity
	for _, e := range g.Entities {
		if e.EntityType == t {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesInChart returns every entity whose metadata chartId is chartID.
func (g *Graph) EntitiesInChart(chartID string) []*Entity {
	var out []*Entity
	for _, e := range g.Entities {
		if e.ChartID() == chartID {
			out = append(out, e)
		}
	}
	return out
}

// ActionSteps returns the direct action_step entities of chartID.
func (g *Graph) ActionSteps(chartID string) []*Entity {
	var out []*Entity
	for _, e := range g.Entities {
		if e.EntityType == EntityTypeActionStep && e.ChartID() == chartID {
			out = append(out, e)
		}
	}
	return out
}

// AddEntities appends entities whose names are not yet taken, including
// names repeated within the batch, and returns the ones added.
func (g *Graph) AddEntities(list []*Entity) []*Entity {
	taken := make(map[string]struct{}, len(g.Entities)+len(list))
	for _, e := range g.Entities {
		taken[e.Name] = struct{}{}
	}

	added := make([]*Entity, 0, len(list))
	for _, e := range list {
		if e == nil {
			continue
		}
		if _, ok := taken[e.Name]; ok {
			continue
		}
		taken[e.Name] = struct{}{}
		if e.Observations == nil {
			e.Observations = []string{}
		}
		g.Entities = append(g.Entities, e)
		added = append(added, e)
	}
	return added
}

// AddRelations appends relations whose triple is not yet present and returns
// the ones added.
func (g *Graph) AddRelations(list []Relation) []Relation {
	seen := make(map[relationKey]struct{}, len(g.Relations)+len(list))
	for _, r := range g.Relations {
		seen[r.key()] = struct{}{}
	}

	added := make([]Relation, 0, len(list))
	for _, r := range list {
		if _, ok := seen[r.key()]; ok {
			continue
		}
		seen[r.key()] = struct{}{}
		g.Relations = append(g.Relations, r)
		added = append(added, r)
	}
	return added
}

// RemoveEntities deletes the named entities and every relation touching
// them. It returns the number of entities removed.
func (g *Graph) RemoveEntities(names map[string]struct{}) int {
	kept := g.Entities[:0]
	removed := 0
	for _, e := range g.Entities {
		if _, ok := names[e.Name]; ok {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	g.Entities = kept

	rels := g.Relations[:0]
	for _, r := range g.Relations {
		if r.Touches(names) {
			continue
		}
		rels = append(rels, r)
	}
	g.Relations = rels
	return removed
}

// RemoveRelations deletes relations matching any triple in list.
func (g *Graph) RemoveRelations(list []Relation) int {
	drop := make(map[relationKey]struct{}, len(list))
	for _, r := range list {
		drop[r.key()] = struct{}{}
	}

	kept := g.Relations[:0]
	removed := 0
	for _, r := range g.Relations {
		if _, ok := drop[r.key()]; ok {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	g.Relations = kept
	return removed
}

// HasRelation reports whether the triple is present.
func (g *Graph) HasRelation(r Relation) bool {
	for _, existing := range g.Relations {
		if existing.SameAs(r) {
			return true
		}
	}
	return false
}

// Subgraph returns the given entities plus the relations whose endpoints
// both belong to them.
func (g *Graph) Subgraph(list []*Entity) *Graph {
	names := NameSet(list)
	sub := &Graph{
		Entities:  append([]*Entity{}, list...),
		Relations: []Relation{},
	}
	for _, r := range g.Relations {
		if r.Within(names) {
			sub.Relations = append(sub.Relations, r)
		}
	}
	return sub
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() (*Graph, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshaling graph: %w", err)
	}
	out := NewGraph()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("unmarshaling graph: %w", err)
	}
	if out.Entities == nil {
		out.Entities = []*Entity{}
	}
	if out.Relations == nil {
		out.Relations = []Relation{}
	}
	return out, nil
}

// NameSet builds a lookup set from entity names.
func NameSet(list []*Entity) map[string]struct{} {
	names := make(map[string]struct{}, len(list))
	for _, e := range list {
		names[e.Name] = struct{}{}
	}
	return names
}
