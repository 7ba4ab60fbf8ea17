// Package mocks provides hand-written test doubles for the domain ports.
package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/tension-core/internal/domain/entities"
)

// GraphStore is an in-memory mock implementation of ports.GraphStore.
// Load and Save deep-copy so callers cannot alias the stored graph.
type GraphStore struct {
	mu    sync.Mutex
	graph *entities.Graph

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error

	// Loads and Saves count calls.
	Loads int
	Saves int
}

// NewGraphStore creates a mock GraphStore holding an empty graph.
func NewGraphStore() *GraphStore {
	return &GraphStore{graph: entities.NewGraph()}
}

// Load returns a copy of the stored graph.
func (m *GraphStore) Load(_ context.Context) (*entities.Graph, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Loads++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.graph.Clone()
}

// Save stores a copy of g.
func (m *GraphStore) Save(_ context.Context, g *entities.Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	clone, err := g.Clone()
	if err != nil {
		return err
	}
	m.graph = clone
	return nil
}

// Snapshot returns a copy of the stored graph for assertions.
func (m *GraphStore) Snapshot() *entities.Graph {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone, _ := m.graph.Clone()
	return clone
}

// Seed replaces the stored graph without counting a save.
func (m *GraphStore) Seed(g *entities.Graph) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone, _ := g.Clone()
	m.graph = clone
}
