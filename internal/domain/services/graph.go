package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
	"github.com/ersonp/tension-core/internal/domain/ports"
)

// ObservationInput asks for contents to be appended to one entity.
type ObservationInput struct {
	EntityName string   `json:"entityName"`
	Contents   []string `json:"contents"`
}

// ObservationResult reports which observations were actually appended.
type ObservationResult struct {
	EntityName        string   `json:"entityName"`
	AddedObservations []string `json:"addedObservations"`
}

// ObservationDeletion asks for exact observations to be removed from one entity.
type ObservationDeletion struct {
	EntityName   string   `json:"entityName"`
	Observations []string `json:"observations"`
}

// GraphService is the entity/relation repository. Every mutation is one
// load, mutate, save cycle over the store, serialized by mu.
type GraphService struct {
	store ports.GraphStore
	log   *zap.Logger
	mu    sync.Mutex
}

// NewGraphService creates a new GraphService. A nil logger disables logging.
func NewGraphService(store ports.GraphStore, log *zap.Logger) *GraphService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GraphService{
		store: store,
		log:   log,
	}
}

// update runs fn against a freshly loaded graph and saves the result. If fn
// returns an error nothing is saved.
func (s *GraphService) update(ctx context.Context, fn func(g *entities.Graph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	g, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}
	if err := fn(g); err != nil {
		return err
	}
	if err := s.store.Save(ctx, g); err != nil {
		return fmt.Errorf("saving graph: %w", err)
	}
	return nil
}

// read loads the graph for a read-only operation.
func (s *GraphService) read(ctx context.Context) (*entities.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}
	return g, nil
}

// CreateEntities adds entities whose names are not taken and returns them.
func (s *GraphService) CreateEntities(ctx context.Context, list []*entities.Entity) ([]*entities.Entity, error) {
	var added []*entities.Entity
	err := s.update(ctx, func(g *entities.Graph) error {
		added = g.AddEntities(list)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("entities created", zap.Int("requested", len(list)), zap.Int("added", len(added)))
	return added, nil
}

// CreateRelations adds relations whose triple is not present and returns them.
func (s *GraphService) CreateRelations(ctx context.Context, list []entities.Relation) ([]entities.Relation, error) {
	var added []entities.Relation
	err := s.update(ctx, func(g *entities.Graph) error {
		added = g.AddRelations(list)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("relations created", zap.Int("requested", len(list)), zap.Int("added", len(added)))
	return added, nil
}

// AddObservations appends unseen observations to each named entity. A
// missing entity fails the whole batch and nothing is saved.
func (s *GraphService) AddObservations(ctx context.Context, inputs []ObservationInput) ([]ObservationResult, error) {
	var results []ObservationResult
	err := s.update(ctx, func(g *entities.Graph) error {
		results = make([]ObservationResult, 0, len(inputs))
		for _, in := range inputs {
			e := g.FindEntity(in.EntityName)
			if e == nil {
				return derrors.NewNotFound("Entity with name", in.EntityName)
			}
			added := []string{}
			for _, c := range in.Contents {
				if e.AppendUnique(c) {
					added = append(added, c)
				}
			}
			results = append(results, ObservationResult{EntityName: in.EntityName, AddedObservations: added})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteEntities removes the named entities and every relation touching them.
func (s *GraphService) DeleteEntities(ctx context.Context, names []string) error {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	var removed int
	err := s.update(ctx, func(g *entities.Graph) error {
		removed = g.RemoveEntities(set)
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Debug("entities deleted", zap.Int("removed", removed))
	return nil
}

// DeleteObservations removes exact observation values. Unknown entities are ignored.
func (s *GraphService) DeleteObservations(ctx context.Context, deletions []ObservationDeletion) error {
	return s.update(ctx, func(g *entities.Graph) error {
		for _, d := range deletions {
			e := g.FindEntity(d.EntityName)
			if e == nil {
				continue
			}
			drop := make(map[string]struct{}, len(d.Observations))
			for _, o := range d.Observations {
				drop[o] = struct{}{}
			}
			if e.EntityType == entities.EntityTypeDesiredOutcome && len(e.Observations) > 0 {
				if _, ok := drop[e.Observations[0]]; ok {
					return derrors.NewValidation("observations",
						fmt.Sprintf("cannot delete the outcome text of %s; use update_desired_outcome to replace it", e.Name))
				}
			}
			kept := e.Observations[:0]
			for _, o := range e.Observations {
				if _, ok := drop[o]; !ok {
					kept = append(kept, o)
				}
			}
			e.Observations = kept
		}
		return nil
	})
}

// DeleteRelations removes relations by exact triple.
func (s *GraphService) DeleteRelations(ctx context.Context, list []entities.Relation) error {
	return s.update(ctx, func(g *entities.Graph) error {
		g.RemoveRelations(list)
		return nil
	})
}

// ReadGraph returns the whole graph.
func (s *GraphService) ReadGraph(ctx context.Context) (*entities.Graph, error) {
	return s.read(ctx)
}

// SearchNodes returns entities whose name, type or any observation contains
// query (case-insensitive), with the relations among them.
func (s *GraphService) SearchNodes(ctx context.Context, query string) (*entities.Graph, error) {
	g, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matched []*entities.Entity
	for _, e := range g.Entities {
		if e.Matches(q) {
			matched = append(matched, e)
		}
	}
	return g.Subgraph(matched), nil
}

// OpenNodes returns the named entities with the relations among them.
func (s *GraphService) OpenNodes(ctx context.Context, names []string) (*entities.Graph, error) {
	g, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	var matched []*entities.Entity
	for _, e := range g.Entities {
		if _, ok := want[e.Name]; ok {
			matched = append(matched, e)
		}
	}
	return g.Subgraph(matched), nil
}
