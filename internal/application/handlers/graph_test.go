package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/ersonp/tension-core/internal/domain/errors"
	"github.com/ersonp/tension-core/internal/domain/services"
)

func seedGraph(t *testing.T, th *testHandlers) {
	t.Helper()
	_, err := th.graph.HandleCreateEntities(t.Context(), []EntityInput{
		{Name: "Ada", EntityType: "person", Observations: []string{"Writes the recipes"}},
		{Name: "Recipe Site", EntityType: "project"},
	})
	require.NoError(t, err)
	_, err = th.graph.HandleCreateRelations(t.Context(), []RelationInput{
		{From: "Ada", To: "Recipe Site", RelationType: "maintains"},
	})
	require.NoError(t, err)
}

func TestGraphHandler_HandleCreateEntities_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input []EntityInput
		field string
	}{
		{name: "missing name", input: []EntityInput{{EntityType: "person"}}, field: "entities[0].name"},
		{name: "missing type", input: []EntityInput{{Name: "Ada"}, {Name: "Bob"}}, field: "entities[0].entityType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := setupHandlers(t)

			_, err := th.graph.HandleCreateEntities(t.Context(), tt.input)

			require.Error(t, err)
			assert.True(t, derrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
			assert.Zero(t, th.store.Saves)
		})
	}
}

func TestGraphHandler_HandleCreateEntities(t *testing.T) {
	th := setupHandlers(t)
	seedGraph(t, th)

	added, err := th.graph.HandleCreateEntities(t.Context(), []EntityInput{
		{Name: "Ada", EntityType: "person"},
		{Name: "Bob", EntityType: "person"},
	})

	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "Bob", added[0].Name)
	assert.NotNil(t, added[0].Observations)
}

func TestGraphHandler_HandleCreateRelations_Validation(t *testing.T) {
	th := setupHandlers(t)

	_, err := th.graph.HandleCreateRelations(t.Context(), []RelationInput{{From: "Ada", To: "Recipe Site"}})

	require.Error(t, err)
	assert.True(t, derrors.IsValidation(err))
	assert.Contains(t, err.Error(), "relations[0].relationType")
}

func TestGraphHandler_Observations(t *testing.T) {
	th := setupHandlers(t)
	seedGraph(t, th)

	results, err := th.graph.HandleAddObservations(t.Context(), []services.ObservationInput{
		{EntityName: "Ada", Contents: []string{"Writes the recipes", "Takes the photos"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"Takes the photos"}, results[0].AddedObservations)

	_, err = th.graph.HandleAddObservations(t.Context(), []services.ObservationInput{{EntityName: "Nobody", Contents: []string{"x"}}})
	assert.True(t, derrors.IsNotFound(err))

	_, err = th.graph.HandleAddObservations(t.Context(), []services.ObservationInput{{Contents: []string{"x"}}})
	assert.True(t, derrors.IsValidation(err))

	require.NoError(t, th.graph.HandleDeleteObservations(t.Context(), []services.ObservationDeletion{
		{EntityName: "Ada", Observations: []string{"Writes the recipes"}},
	}))
	assert.Equal(t, []string{"Takes the photos"}, th.store.Snapshot().FindEntity("Ada").Observations)
}

func TestGraphHandler_Deletes(t *testing.T) {
	th := setupHandlers(t)
	seedGraph(t, th)

	assert.True(t, derrors.IsValidation(th.graph.HandleDeleteEntities(t.Context(), nil)))

	require.NoError(t, th.graph.HandleDeleteRelations(t.Context(), []RelationInput{
		{From: "Ada", To: "Recipe Site", RelationType: "maintains"},
	}))
	assert.Empty(t, th.store.Snapshot().Relations)

	require.NoError(t, th.graph.HandleDeleteEntities(t.Context(), []string{"Ada"}))
	g := th.store.Snapshot()
	assert.Nil(t, g.FindEntity("Ada"))
	assert.NotNil(t, g.FindEntity("Recipe Site"))
}

func TestGraphHandler_Reads(t *testing.T) {
	th := setupHandlers(t)
	seedGraph(t, th)

	full, err := th.graph.HandleReadGraph(t.Context())
	require.NoError(t, err)
	assert.Len(t, full.Entities, 2)
	assert.Len(t, full.Relations, 1)

	found, err := th.graph.HandleSearch(t.Context(), "RECIPES")
	require.NoError(t, err)
	require.Len(t, found.Entities, 1)
	assert.Equal(t, "Ada", found.Entities[0].Name)

	_, err = th.graph.HandleSearch(t.Context(), "")
	assert.True(t, derrors.IsValidation(err))

	opened, err := th.graph.HandleOpen(t.Context(), []string{"Ada", "Recipe Site", "Missing"})
	require.NoError(t, err)
	assert.Len(t, opened.Entities, 2)
	assert.Len(t, opened.Relations, 1)

	_, err = th.graph.HandleOpen(t.Context(), []string{})
	assert.True(t, derrors.IsValidation(err))
}
