package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
	"github.com/ersonp/tension-core/internal/domain/services"
)

// NarrativeHandler handles narrative beat operations.
type NarrativeHandler struct {
	narrative *services.NarrativeService
}

// NewNarrativeHandler creates a new NarrativeHandler.
func NewNarrativeHandler(narrative *services.NarrativeService) *NarrativeHandler {
	return &NarrativeHandler{narrative: narrative}
}

// TelescopeBeatInput is the argument set of HandleTelescope.
type TelescopeBeatInput struct {
	ParentBeatName    string                  `json:"parentBeatName"`
	NewCurrentReality string                  `json:"newCurrentReality"`
	InitialSubBeats   []services.SubBeatInput `json:"initialSubBeats,omitempty"`
}

// HandleCreate creates a beat documenting a chart.
func (h *NarrativeHandler) HandleCreate(ctx context.Context, in services.BeatInput) (*services.BeatResult, error) {
	if err := requireString("parentChartId", in.ParentChartID); err != nil {
		return nil, err
	}
	if err := requireString("title", in.Title); err != nil {
		return nil, err
	}
	if in.Act < 1 {
		return nil, derrors.NewValidation("act", "must be a positive number")
	}
	if err := requireString("type_dramatic", in.TypeDramatic); err != nil {
		return nil, err
	}
	if err := stringItems("universes", in.Universes); err != nil {
		return nil, err
	}

	return h.narrative.CreateNarrativeBeat(ctx, in)
}

// HandleTelescope splits a beat into numbered sub-beats.
func (h *NarrativeHandler) HandleTelescope(ctx context.Context, in TelescopeBeatInput) (*services.TelescopedBeat, error) {
	if err := requireString("parentBeatName", in.ParentBeatName); err != nil {
		return nil, err
	}
	if err := requireString("newCurrentReality", in.NewCurrentReality); err != nil {
		return nil, err
	}
	for i, sb := range in.InitialSubBeats {
		if err := requireString(fmt.Sprintf("initialSubBeats[%d].title", i), sb.Title); err != nil {
			return nil, err
		}
	}

	return h.narrative.TelescopeNarrativeBeat(ctx, in.ParentBeatName, in.NewCurrentReality, in.InitialSubBeats)
}

// HandleList lists beats ordered by act. An empty parentChartID lists all.
func (h *NarrativeHandler) HandleList(ctx context.Context, parentChartID string) ([]*entities.Entity, error) {
	beats, err := h.narrative.ListNarrativeBeats(ctx, parentChartID)
	if err != nil {
		return nil, fmt.Errorf("listing narrative beats: %w", err)
	}

	return beats, nil
}
