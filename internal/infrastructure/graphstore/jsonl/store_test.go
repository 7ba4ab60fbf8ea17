package jsonl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

func sampleGraph() *entities.Graph {
	g := entities.NewGraph()
	g.AddEntities([]*entities.Entity{
		{
			Name:         "chart_1_chart",
			EntityType:   entities.EntityTypeChart,
			Observations: []string{"Chart created on 2025-01-01T00:00:00.000Z"},
			Metadata:     &entities.Metadata{ChartID: "chart_1", DueDate: "2025-03-01", Level: entities.IntPtr(0)},
		},
		{
			Name:         "chart_1_desired_outcome",
			EntityType:   entities.EntityTypeDesiredOutcome,
			Observations: []string{"Publish a <short> novel & more"},
			Metadata:     &entities.Metadata{ChartID: "chart_1"},
		},
		{Name: "Alice", EntityType: "person", Observations: []string{}},
	})
	g.AddRelations([]entities.Relation{
		{From: "chart_1_chart", To: "chart_1_desired_outcome", RelationType: entities.RelationContains},
		{From: "Alice", To: "chart_1_chart", RelationType: "owns", Metadata: &entities.RelationMetadata{Context: "personal"}},
	})
	return g
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "memory.jsonl"))

	g, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, g.Entities)
	assert.Empty(t, g.Relations)
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "memory.jsonl")
	store := NewStore(path)
	ctx := context.Background()
	want := sampleGraph()

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasSuffix(text, "\n"))

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], `{"type":"entity","name":"chart_1_chart"`))
	assert.True(t, strings.HasPrefix(lines[3], `{"type":"relation","from":"chart_1_chart"`))
	assert.Contains(t, lines[1], "<short> novel & more")
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "memory.jsonl"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleGraph()))
	require.NoError(t, store.Save(ctx, entities.NewGraph()))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "memory.jsonl", files[0].Name())

	g, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, g.Entities)
}

func TestStore_LoadLegacyNarrativeBeat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.jsonl")
	content := `{"type":"entity","name":"chart_1_chart","entityType":"structural_tension_chart","observations":[],"metadata":{"chartId":"chart_1"}}

{"type":"narrative_beat","name":"chart_1_beat_1","observations":["Act 1 Setup"],"metadata":{"chartId":"chart_1","act":1},"narrative":{"description":"d","prose":"p","lessons":["l"]},"relational_alignment":{"assessed":false,"score":null,"principles":[]},"four_directions":{"north_vision":"see","east_intention":null,"south_emotion":null,"west_introspection":null}}
{"type":"mystery","name":"ignored"}
{"type":"relation","from":"chart_1_beat_1","to":"chart_1_chart","relationType":"documents"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	g, err := NewStore(path).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, g.Entities, 2)
	require.Len(t, g.Relations, 1)

	beat := g.FindEntity("chart_1_beat_1")
	require.NotNil(t, beat)
	assert.Equal(t, entities.EntityTypeNarrativeBeat, beat.EntityType)
	assert.Equal(t, "chart_1", beat.ChartID())
	assert.Equal(t, 1, beat.Metadata.Act)
	require.NotNil(t, beat.Metadata.Narrative)
	assert.Equal(t, "p", beat.Metadata.Narrative.Prose)
	require.NotNil(t, beat.Metadata.RelationalAlignment)
	assert.False(t, beat.Metadata.RelationalAlignment.Assessed)
	require.NotNil(t, beat.Metadata.FourDirections)
	require.NotNil(t, beat.Metadata.FourDirections.NorthVision)
	assert.Equal(t, "see", *beat.Metadata.FourDirections.NorthVision)
	assert.Nil(t, beat.Metadata.FourDirections.EastIntention)
}

func TestStore_LoadMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.jsonl")
	content := "{\"type\":\"entity\",\"name\":\"a\",\"entityType\":\"x\",\"observations\":[]}\n{not json}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := NewStore(path).Load(context.Background())

	require.Error(t, err)
	assert.True(t, derrors.IsIO(err))
	assert.Contains(t, err.Error(), "line 2")
}

func TestStore_CancelledContext(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "memory.jsonl"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, entities.NewGraph()), context.Canceled)
}
