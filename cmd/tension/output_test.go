package main

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tension-core/internal/domain/entities"
	"github.com/ersonp/tension-core/internal/domain/services"
)

func TestFormatChartList(t *testing.T) {
	tests := []struct {
		name   string
		charts []services.ChartSummary
		want   []string
	}{
		{
			name: "empty",
			want: []string{"No charts found."},
		},
		{
			name: "master and action chart",
			charts: []services.ChartSummary{
				{ChartID: "chart_1", DesiredOutcome: "A home garden", Progress: 0.5, CompletedActions: 1, TotalActions: 2, DueDate: "2099-06-01T00:00:00.000Z"},
				{ChartID: "chart_2", DesiredOutcome: "Raised beds built", Level: 1, ParentChart: "chart_1", Completed: true},
			},
			want: []string{
				"Showing 2 charts:",
				"[ ] chart_1  A home garden",
				"50% (1/2 action steps), due 2099-06-01",
				"  [x] chart_2  Raised beds built",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatChartList(&buf, tt.charts)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestFormatBeats(t *testing.T) {
	beats := []*entities.Entity{{
		Name:         "chart_1_beat_abc",
		EntityType:   entities.EntityTypeNarrativeBeat,
		Observations: []string{"Act 2 Crisis", "Title: The frost"},
		Metadata:     &entities.Metadata{Act: 2, TypeDramatic: "Crisis"},
	}}

	var buf bytes.Buffer
	formatBeats(&buf, beats)

	assert.Contains(t, buf.String(), "Act 2  Crisis")
	assert.Contains(t, buf.String(), "The frost")
	assert.Contains(t, buf.String(), "chart_1_beat_abc")
}

func TestEmit_JSON(t *testing.T) {
	globalJSON = true
	t.Cleanup(func() { globalJSON = false })

	var buf bytes.Buffer
	err := emit(&buf, &services.Progress{ChartID: "chart_1", TotalActions: 3}, func(io.Writer) {})
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, "chart_1", parsed["chartId"])
	assert.Equal(t, float64(3), parsed["totalActions"])
}
