// Package ports defines the interfaces the domain depends on.
package ports

import (
	"context"

	"github.com/ersonp/tension-core/internal/domain/entities"
)

// GraphStore loads and saves the whole entity/relation collection at once.
// There is no partial update; callers load, mutate in memory, then save.
type GraphStore interface {
	// Load returns the full graph. A backing resource that does not exist
	// yields an empty graph, not an error.
	Load(ctx context.Context) (*entities.Graph, error)

	// Save replaces the stored graph with g, entities first then relations,
	// each in insertion order.
	Save(ctx context.Context, g *entities.Graph) error
}
