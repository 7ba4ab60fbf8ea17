package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ersonp/tension-core/internal/domain/entities"
	"github.com/ersonp/tension-core/internal/domain/services"
)

// formatJSON writes v as indented JSON.
func formatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit writes v as JSON when --json is set, otherwise calls text.
func emit(w io.Writer, v any, text func(io.Writer)) error {
	if globalJSON {
		return formatJSON(w, v)
	}
	text(w)
	return nil
}

func percent(p float64) int {
	return int(math.Round(p * 100))
}

func mark(done bool) string {
	if done {
		return markDone
	}
	return markPending
}

// formatChartList writes one line per chart, indented by level.
func formatChartList(w io.Writer, charts []services.ChartSummary) {
	if len(charts) == 0 {
		fmt.Fprintln(w, "No charts found.")
		return
	}

	fmt.Fprintf(w, "Showing %d charts:\n\n", len(charts))
	for _, c := range charts {
		indent := strings.Repeat(indentUnit, c.Level)
		fmt.Fprintf(w, "%s%s %s  %s\n", indent, mark(c.Completed), c.ChartID, c.DesiredOutcome)
		fmt.Fprintf(w, "%s    %d%% (%d/%d action steps)", indent, percent(c.Progress), c.CompletedActions, c.TotalActions)
		if c.DueDate != "" {
			fmt.Fprintf(w, ", due %s", displayDate(c.DueDate))
		}
		fmt.Fprintln(w)
	}
}

// formatChartDetails writes the outcome, reality and action steps of chartID.
func formatChartDetails(w io.Writer, g *entities.Graph, chartID string) {
	fmt.Fprintf(w, "Chart: %s\n", chartID)
	if c := g.ChartEntity(chartID); c != nil {
		if due := c.DueDate(); due != "" {
			fmt.Fprintf(w, "Due: %s\n", displayDate(due))
		}
		if parent := c.ParentChart(); parent != "" {
			fmt.Fprintf(w, "Parent: %s\n", parent)
		}
	}

	if o := g.Outcome(chartID); o != nil {
		fmt.Fprintf(w, "\nDesired Outcome %s\n  %s\n", mark(o.IsComplete()), o.FirstObservation())
	}

	if r := g.Reality(chartID); r != nil {
		fmt.Fprintln(w, "\nCurrent Reality")
		if len(r.Observations) == 0 {
			fmt.Fprintln(w, "  (none recorded)")
		}
		for _, obs := range r.Observations {
			fmt.Fprintf(w, "  - %s\n", obs)
		}
	}

	steps := g.ActionSteps(chartID)
	if len(steps) > 0 {
		fmt.Fprintln(w, "\nAction Steps")
		for _, s := range steps {
			fmt.Fprintf(w, "  %s %s  %s", mark(s.IsComplete()), s.Name, s.FirstObservation())
			if due := s.DueDate(); due != "" {
				fmt.Fprintf(w, " (due %s)", displayDate(due))
			}
			fmt.Fprintln(w)
		}
	}
}

// formatProgress writes a progress summary.
func formatProgress(w io.Writer, p *services.Progress) {
	fmt.Fprintf(w, "%s: %d%% (%d/%d action steps)\n", p.ChartID, percent(p.Progress), p.CompletedActions, p.TotalActions)
	if p.NextAction != "" {
		fmt.Fprintf(w, "Next: %s\n", p.NextAction)
	}
	if p.DueDate != "" {
		fmt.Fprintf(w, "Due: %s\n", displayDate(p.DueDate))
	}
}

// formatStats writes graph statistics.
func formatStats(w io.Writer, s *services.Stats) {
	fmt.Fprintf(w, "Entities:        %d\n", s.TotalEntities)
	fmt.Fprintf(w, "Relations:       %d\n", s.TotalRelations)
	fmt.Fprintf(w, "Charts:          %d (%d master, %d action)\n", s.TotalCharts, s.MasterCharts, s.ActionCharts)
	fmt.Fprintf(w, "Action charts:   %d completed\n", s.CompletedActionCharts)
	fmt.Fprintf(w, "Action steps:    %d/%d completed\n", s.CompletedActions, s.TotalActions)
	fmt.Fprintf(w, "Overdue charts:  %d\n", s.OverdueCharts)
	fmt.Fprintf(w, "Narrative beats: %d\n", s.NarrativeBeats)
	fmt.Fprintf(w, "Overall:         %d%%\n", percent(s.OverallProgress))
}

// formatEntities writes one line per entity with its first observation.
func formatEntities(w io.Writer, list []*entities.Entity) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No entities found.")
		return
	}
	for _, e := range list {
		fmt.Fprintf(w, "%s [%s]", e.Name, e.EntityType)
		if first := e.FirstObservation(); first != "" {
			fmt.Fprintf(w, "  %s", first)
		}
		fmt.Fprintln(w)
	}
}

// formatBeats writes one line per narrative beat.
func formatBeats(w io.Writer, beats []*entities.Entity) {
	if len(beats) == 0 {
		fmt.Fprintln(w, "No narrative beats found.")
		return
	}
	for _, b := range beats {
		act, kind := 0, ""
		if b.Metadata != nil {
			act, kind = b.Metadata.Act, b.Metadata.TypeDramatic
		}
		fmt.Fprintf(w, "Act %d  %-16s %s\n", act, kind, beatTitle(b))
		fmt.Fprintf(w, "       %s\n", b.Name)
	}
}

func beatTitle(b *entities.Entity) string {
	for _, obs := range b.Observations {
		if title, ok := strings.CutPrefix(obs, "Title: "); ok {
			return title
		}
	}
	return b.FirstObservation()
}

// displayDate trims a stored timestamp to its calendar date.
func displayDate(ts string) string {
	if t, err := entities.ParseDate(ts); err == nil {
		return t.Format("2006-01-02")
	}
	return ts
}
