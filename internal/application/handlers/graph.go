package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/tension-core/internal/domain/entities"
	"github.com/ersonp/tension-core/internal/domain/services"
)

// GraphHandler handles free-form knowledge-graph operations.
type GraphHandler struct {
	graph *services.GraphService
}

// NewGraphHandler creates a new GraphHandler.
func NewGraphHandler(graph *services.GraphService) *GraphHandler {
	return &GraphHandler{graph: graph}
}

// EntityInput is one entity to create.
type EntityInput struct {
	Name         string   `json:"name"`
	EntityType   string   `json:"entityType"`
	Observations []string `json:"observations"`
}

// RelationInput is one relation to create or delete.
type RelationInput struct {
	From         string `json:"from"`
	To           string `json:"to"`
	RelationType string `json:"relationType"`
}

// HandleCreateEntities creates entities whose names are not yet taken.
func (h *GraphHandler) HandleCreateEntities(ctx context.Context, in []EntityInput) ([]*entities.Entity, error) {
	list := make([]*entities.Entity, 0, len(in))
	for i, e := range in {
		if err := requireString(fmt.Sprintf("entities[%d].name", i), e.Name); err != nil {
			return nil, err
		}
		if err := requireString(fmt.Sprintf("entities[%d].entityType", i), e.EntityType); err != nil {
			return nil, err
		}
		obs := e.Observations
		if obs == nil {
			obs = []string{}
		}
		list = append(list, &entities.Entity{
			Name:         e.Name,
			EntityType:   entities.EntityType(e.EntityType),
			Observations: obs,
		})
	}

	added, err := h.graph.CreateEntities(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("creating entities: %w", err)
	}
	if added == nil {
		added = []*entities.Entity{}
	}
	return added, nil
}

// HandleCreateRelations creates relations whose triple is not yet present.
func (h *GraphHandler) HandleCreateRelations(ctx context.Context, in []RelationInput) ([]entities.Relation, error) {
	list, err := toRelations(in)
	if err != nil {
		return nil, err
	}

	added, err := h.graph.CreateRelations(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("creating relations: %w", err)
	}
	if added == nil {
		added = []entities.Relation{}
	}
	return added, nil
}

// HandleAddObservations appends unseen observations to existing entities.
func (h *GraphHandler) HandleAddObservations(ctx context.Context, in []services.ObservationInput) ([]services.ObservationResult, error) {
	for i, o := range in {
		if err := requireString(fmt.Sprintf("observations[%d].entityName", i), o.EntityName); err != nil {
			return nil, err
		}
		if err := stringItems(fmt.Sprintf("observations[%d].contents", i), o.Contents); err != nil {
			return nil, err
		}
	}

	return h.graph.AddObservations(ctx, in)
}

// HandleDeleteEntities removes entities and the relations touching them.
func (h *GraphHandler) HandleDeleteEntities(ctx context.Context, names []string) error {
	if err := requireList("entityNames", names); err != nil {
		return err
	}

	return h.graph.DeleteEntities(ctx, names)
}

// HandleDeleteObservations removes exact observation values.
func (h *GraphHandler) HandleDeleteObservations(ctx context.Context, in []services.ObservationDeletion) error {
	for i, d := range in {
		if err := requireString(fmt.Sprintf("deletions[%d].entityName", i), d.EntityName); err != nil {
			return err
		}
	}

	return h.graph.DeleteObservations(ctx, in)
}

// HandleDeleteRelations removes relations by exact triple.
func (h *GraphHandler) HandleDeleteRelations(ctx context.Context, in []RelationInput) error {
	list, err := toRelations(in)
	if err != nil {
		return err
	}

	return h.graph.DeleteRelations(ctx, list)
}

// HandleReadGraph returns the whole graph.
func (h *GraphHandler) HandleReadGraph(ctx context.Context) (*entities.Graph, error) {
	return h.graph.ReadGraph(ctx)
}

// HandleSearch returns entities matching query with the relations among them.
func (h *GraphHandler) HandleSearch(ctx context.Context, query string) (*entities.Graph, error) {
	if err := requireString("query", query); err != nil {
		return nil, err
	}

	return h.graph.SearchNodes(ctx, query)
}

// HandleOpen returns the named entities with the relations among them.
func (h *GraphHandler) HandleOpen(ctx context.Context, names []string) (*entities.Graph, error) {
	if err := requireList("names", names); err != nil {
		return nil, err
	}

	return h.graph.OpenNodes(ctx, names)
}

func toRelations(in []RelationInput) ([]entities.Relation, error) {
	list := make([]entities.Relation, 0, len(in))
	for i, r := range in {
		if err := requireString(fmt.Sprintf("relations[%d].from", i), r.From); err != nil {
			return nil, err
		}
		if err := requireString(fmt.Sprintf("relations[%d].to", i), r.To); err != nil {
			return nil, err
		}
		if err := requireString(fmt.Sprintf("relations[%d].relationType", i), r.RelationType); err != nil {
			return nil, err
		}
		list = append(list, entities.Relation{
			From:         r.From,
			To:           r.To,
			RelationType: entities.RelationType(r.RelationType),
		})
	}
	return list, nil
}
