package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tension-core/internal/domain/entities"
)

// setupTestStore creates an in-memory SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func sampleGraph() *entities.Graph {
	strength := 0.8
	g := entities.NewGraph()
	g.AddEntities([]*entities.Entity{
		{
			Name:         "chart_2_chart",
			EntityType:   entities.EntityTypeChart,
			Observations: []string{"Chart created on 2025-01-01T00:00:00.000Z"},
			Metadata:     &entities.Metadata{ChartID: "chart_2", Level: entities.IntPtr(0), CompletionStatus: entities.BoolPtr(false)},
		},
		{Name: "Zed", EntityType: "person", Observations: []string{}},
		{
			Name:         "chart_2_desired_outcome",
			EntityType:   entities.EntityTypeDesiredOutcome,
			Observations: []string{"Grow a vegetable garden", "Bought seeds"},
			Metadata:     &entities.Metadata{ChartID: "chart_2", DueDate: "2025-06-01"},
		},
	})
	g.AddRelations([]entities.Relation{
		{From: "chart_2_chart", To: "chart_2_desired_outcome", RelationType: entities.RelationContains},
		{From: "Zed", To: "chart_2_chart", RelationType: "tends", Metadata: &entities.RelationMetadata{Strength: &strength}},
	})
	return g
}

func TestNewStore(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		store, err := NewStore(":memory:")
		require.NoError(t, err)
		defer store.Close()
		assert.Equal(t, ":memory:", store.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewStore("")
		require.Error(t, err)
	})
}

func TestStore_EnsureSchema(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"entities", "relations"} {
		var count int
		err := store.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}

	require.NoError(t, store.EnsureSchema(context.Background()))
}

func TestStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	g, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.NewGraph(), g)
}

func TestStore_RoundTripKeepsOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	want := sampleGraph()

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveReplacesContents(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleGraph()))

	smaller := entities.NewGraph()
	smaller.AddEntities([]*entities.Entity{{Name: "only", EntityType: "thing", Observations: []string{"x"}}})
	require.NoError(t, store.Save(ctx, smaller))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, smaller, got)
}

func TestStore_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tension.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.Save(ctx, sampleGraph()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Entities, 3)
	assert.Len(t, got.Relations, 2)
}
