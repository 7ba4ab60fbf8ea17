package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     RefKind
		expected string
	}{
		{
			name:     "chart id",
			input:    "chart_1700000000000",
			kind:     ChartRef,
			expected: "chart_1700000000000",
		},
		{
			name:     "legacy action step",
			input:    "chart_17_action_2",
			kind:     ActionStepRef,
			expected: "chart_17",
		},
		{
			name:     "desired outcome",
			input:    "chart_17_desired_outcome",
			kind:     OutcomeRef,
			expected: "chart_17",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  chart_42 ",
			kind:     ChartRef,
			expected: "chart_42",
		},
		{
			name:  "current reality is not a reference",
			input: "chart_17_current_reality",
			kind:  InvalidRef,
		},
		{
			name:  "non numeric id",
			input: "chart_abc",
			kind:  InvalidRef,
		},
		{
			name:  "empty",
			input: "",
			kind:  InvalidRef,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseReference(tt.input)
			assert.Equal(t, tt.kind, ref.Kind)
			assert.Equal(t, tt.expected, ref.ChartID)
		})
	}
}

func TestNewChartID(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	t.Run("uses milliseconds", func(t *testing.T) {
		assert.Equal(t, "chart_1700000000000", NewChartID(now, nil))
	})

	t.Run("bumps past taken ids", func(t *testing.T) {
		taken := map[string]bool{
			"chart_1700000000000": true,
			"chart_1700000000001": true,
		}
		id := NewChartID(now, func(id string) bool { return taken[id] })
		assert.Equal(t, "chart_1700000000002", id)
		assert.Equal(t, ChartRef, ParseReference(id).Kind)
	})
}

func TestChartNames(t *testing.T) {
	assert.Equal(t, "chart_1_chart", ChartEntityName("chart_1"))
	assert.Equal(t, "chart_1_desired_outcome", OutcomeName("chart_1"))
	assert.Equal(t, "chart_1_current_reality", RealityName("chart_1"))
	assert.Equal(t, "chart_1_action_3", ActionStepName("chart_1", 3))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 with millis",
			input: "2025-03-01T10:00:00.000Z",
			want:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 without fraction",
			input: "2025-03-01T10:00:00Z",
			want:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2025-12-31",
			want:  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("X", 3600))
	assert.Equal(t, "2025-01-02T02:04:05.006Z", FormatTimestamp(ts))
}

func TestDueBefore(t *testing.T) {
	early := &Entity{Name: "a", Metadata: &Metadata{DueDate: "2025-01-01"}}
	late := &Entity{Name: "b", Metadata: &Metadata{DueDate: "2025-06-01T00:00:00Z"}}
	undated := &Entity{Name: "c"}

	assert.True(t, DueBefore(early, late))
	assert.False(t, DueBefore(late, early))
	assert.True(t, DueBefore(late, undated))
	assert.False(t, DueBefore(undated, early))
}
