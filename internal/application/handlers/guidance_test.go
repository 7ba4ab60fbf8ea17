package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

func TestGuidanceHandler_HandleInitGuidance(t *testing.T) {
	th := setupHandlers(t)

	tests := []struct {
		format string
		want   string
	}{
		{format: "", want: "Structural Tension Charts: Working Guide"},
		{format: FormatFull, want: "Structural Tension Charts: Working Guide"},
		{format: FormatQuick, want: "Quick Reference"},
		{format: FormatSaveDirective, want: "Save This Guidance"},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			text, err := th.guidance.HandleInitGuidance(tt.format)
			require.NoError(t, err)
			assert.Contains(t, text, tt.want)
		})
	}

	_, err := th.guidance.HandleInitGuidance("verbose")
	require.Error(t, err)
	assert.True(t, derrors.IsValidation(err))
}

func TestGuidanceHandler_HandleMomentOfTruth(t *testing.T) {
	th := setupHandlers(t)
	chart := th.createChart(t, "Choose a host", "Write the about page")
	_, err := th.chart.HandleUpdateReality(t.Context(), UpdateRealityInput{
		ChartID:         chart.ChartID,
		NewObservations: []string{"Domain registered"},
	})
	require.NoError(t, err)

	t.Run("full review", func(t *testing.T) {
		text, err := th.guidance.HandleMomentOfTruth(t.Context(), chart.ChartID, "", "")

		require.NoError(t, err)
		assert.Contains(t, text, "**Chart**: "+chart.ChartID)
		assert.Contains(t, text, "**Desired Outcome**: A published recipe website")
		assert.Contains(t, text, "**Current Reality**: Twelve recipes written in a notebook; Domain registered")
		assert.Contains(t, text, "**Progress**: 0% (0/2 action steps)")
	})

	t.Run("step with input", func(t *testing.T) {
		text, err := th.guidance.HandleMomentOfTruth(t.Context(), chart.ChartID, StepAcknowledge, "Expected a host by Friday")

		require.NoError(t, err)
		assert.Contains(t, text, "Step 1: ACKNOWLEDGE THE TRUTH")
		assert.Contains(t, text, "**User's Observation**: Expected a host by Friday")
		assert.Contains(t, text, "step 2 (analyze)")
	})

	t.Run("step without input", func(t *testing.T) {
		text, err := th.guidance.HandleMomentOfTruth(t.Context(), chart.ChartID, StepFeedback, "")

		require.NoError(t, err)
		assert.Contains(t, text, "Step 4: SET UP A FEEDBACK SYSTEM")
		assert.NotContains(t, text, "User's Feedback System")
	})

	t.Run("invalid step", func(t *testing.T) {
		_, err := th.guidance.HandleMomentOfTruth(t.Context(), chart.ChartID, "celebrate", "")
		assert.True(t, derrors.IsValidation(err))
	})

	t.Run("unknown chart", func(t *testing.T) {
		_, err := th.guidance.HandleMomentOfTruth(t.Context(), "chart_404", "", "")
		assert.True(t, derrors.IsNotFound(err))
	})
}
