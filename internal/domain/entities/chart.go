package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ChartIDPrefix starts every generated chart id.
const ChartIDPrefix = "chart_"

var (
	reChartID    = regexp.MustCompile(`^chart_\d+$`)
	reActionStep = regexp.MustCompile(`^chart_\d+_action_\d+$`)
	reOutcome    = regexp.MustCompile(`^chart_\d+_desired_outcome$`)
)

// ChartEntityName returns the name of the chart entity for chartID.
func ChartEntityName(chartID string) string { return chartID + "_chart" }

// OutcomeName returns the name of the desired_outcome entity for chartID.
func OutcomeName(chartID string) string { return chartID + "_desired_outcome" }

// RealityName returns the name of the current_reality entity for chartID.
func RealityName(chartID string) string { return chartID + "_current_reality" }

// ActionStepName returns the name of the n-th (1-indexed) legacy action step.
func ActionStepName(chartID string, n int) string {
	return fmt.Sprintf("%s_action_%d", chartID, n)
}

// NewChartID derives a chart id from now in milliseconds, bumping the number
// until taken reports it free.
func NewChartID(now time.Time, taken func(chartID string) bool) string {
	n := now.UnixMilli()
	for {
		id := ChartIDPrefix + strconv.FormatInt(n, 10)
		if taken == nil || !taken(id) {
			return id
		}
		n++
	}
}

// RefKind tags a parsed chart reference.
type RefKind int

const (
	InvalidRef RefKind = iota
	ChartRef
	ActionStepRef
	OutcomeRef
)

// String returns a readable name for the kind.
func (k RefKind) String() string {
	switch k {
	case ChartRef:
		return "chart"
	case ActionStepRef:
		return "action_step"
	case OutcomeRef:
		return "desired_outcome"
	default:
		return "invalid"
	}
}

// Reference is a chart, action-step or outcome reference classified by shape.
type Reference struct {
	Kind RefKind
	// Raw is the reference as received, trimmed.
	Raw string
	// ChartID is the chart the reference points into. Empty for InvalidRef.
	ChartID string
}

// ParseReference classifies s as a chart id, legacy action-step name or
// desired-outcome name.
func ParseReference(s string) Reference {
	s = strings.TrimSpace(s)
	switch {
	case reChartID.MatchString(s):
		return Reference{Kind: ChartRef, Raw: s, ChartID: s}
	case reActionStep.MatchString(s):
		return Reference{Kind: ActionStepRef, Raw: s, ChartID: s[:strings.LastIndex(s, "_action_")]}
	case reOutcome.MatchString(s):
		return Reference{Kind: OutcomeRef, Raw: s, ChartID: strings.TrimSuffix(s, "_desired_outcome")}
	default:
		return Reference{Kind: InvalidRef, Raw: s}
	}
}
