package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/tension-core/internal/domain/entities"
	"github.com/ersonp/tension-core/internal/domain/services"
)

// QueryHandler handles read-only chart queries.
type QueryHandler struct {
	queryService *services.QueryService
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(queryService *services.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

// ListResult contains every chart in display order.
type ListResult struct {
	Charts []services.ChartSummary `json:"charts"`
}

// HandleList lists all charts.
func (h *QueryHandler) HandleList(ctx context.Context) (*ListResult, error) {
	charts, err := h.queryService.ListCharts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}
	if charts == nil {
		charts = []services.ChartSummary{}
	}

	return &ListResult{Charts: charts}, nil
}

// HandleChart returns the chart's own entities and the relations among them.
func (h *QueryHandler) HandleChart(ctx context.Context, chartID string) (*entities.Graph, error) {
	if err := requireString("chartId", chartID); err != nil {
		return nil, err
	}

	return h.queryService.ChartDetails(ctx, chartID)
}

// HandleActionStep returns the chart behind an action step name.
func (h *QueryHandler) HandleActionStep(ctx context.Context, actionStepName string) (*entities.Graph, error) {
	if err := requireString("actionStepName", actionStepName); err != nil {
		return nil, err
	}

	return h.queryService.ActionStepDetails(ctx, actionStepName)
}

// HandleStats returns counts across the whole graph.
func (h *QueryHandler) HandleStats(ctx context.Context) (*services.Stats, error) {
	stats, err := h.queryService.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}

	return stats, nil
}
