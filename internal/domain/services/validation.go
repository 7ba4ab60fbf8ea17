package services

import (
	"fmt"
	"strings"

	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

// ProblemSolvingTerms are elimination-oriented verbs rejected in desired outcomes.
var ProblemSolvingTerms = []string{"fix", "solve", "eliminate", "prevent", "stop", "avoid", "reduce", "remove"}

// ReadinessTerms are readiness phrases rejected in current-reality statements.
var ReadinessTerms = []string{"ready to", "prepared to", "all set", "ready for", "set to"}

const creativeOrientationMessage = `🌊 CREATIVE ORIENTATION REQUIRED

Desired Outcome: "%s"

❌ **Problem**: Contains problem-solving language: "%s"
📚 **Principle**: Structural Tension Charts use creative orientation - focus on what you want to CREATE, not what you want to eliminate.

🎯 **Reframe Your Outcome**:
Instead of elimination → Creation focus

✅ **Examples**:
- Instead of: "Fix communication problems"
- Use: "Establish clear, effective communication practices"

- Instead of: "Reduce website loading time"
- Use: "Achieve fast, responsive website performance"

**Why This Matters**: Problem-solving creates oscillating patterns. Creative orientation creates advancing patterns toward desired outcomes.

💡 **Tip**: Run 'init_llm_guidance' for complete methodology overview.`

const delayedResolutionMessage = `🌊 DELAYED RESOLUTION PRINCIPLE VIOLATION

Current Reality: "%s"

❌ **Problem**: Contains readiness assumptions: "%s"
📚 **Principle**: "Tolerate discrepancy, tension, and delayed resolution" - Robert Fritz

🎯 **What's Needed**: Factual assessment of your actual current state (not readiness or preparation).

✅ **Examples**:
- Instead of: "Ready to learn Python"
- Use: "Never programmed before, interested in web development"

- Instead of: "Prepared to start the project"
- Use: "Have project requirements, no code written yet"

**Why This Matters**: Readiness assumptions prematurely resolve the structural tension needed for creative advancement.

💡 **Tip**: Run 'init_llm_guidance' for complete methodology overview.`

const missingRealityMessage = `🌊 DELAYED RESOLUTION PRINCIPLE VIOLATION

Action step: "%s"
%s
❌ **Problem**: Current reality assessment missing
📚 **Principle**: "Tolerate discrepancy, tension, and delayed resolution" - Robert Fritz

🎯 **What's Needed**: Honest assessment of your actual current state relative to this action step.

✅ **Examples**:
- "Never used Django, completed Python basics"
- "Built one API, struggling with authentication"
- "Read 3 chapters, concepts still unclear"

❌ **Avoid**: "Ready to begin", "Prepared to start", "All set to..."

**Why This Matters**: Premature resolution destroys the structural tension that generates creative advancement. The system NEEDS honest current reality to create productive tension.

💡 **Tip**: Run 'init_llm_guidance' for complete methodology overview.`

// ValidationService runs the language checks that guard chart text. It is
// stateless; the zero value is ready to use.
type ValidationService struct{}

// NewValidationService creates a new ValidationService.
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// CheckCreativeOrientation rejects outcomes phrased as elimination.
func (v *ValidationService) CheckCreativeOrientation(outcome string) error {
	terms := matchTerms(outcome, ProblemSolvingTerms)
	if len(terms) == 0 {
		return nil
	}
	msg := fmt.Sprintf(creativeOrientationMessage, outcome, strings.Join(terms, ", "))
	return derrors.NewPrincipleViolation(derrors.PrincipleCreativeOrientation, outcome, terms, msg)
}

// CheckDelayedResolution rejects reality statements that assert readiness.
func (v *ValidationService) CheckDelayedResolution(reality string) error {
	terms := matchTerms(reality, ReadinessTerms)
	if len(terms) == 0 {
		return nil
	}
	msg := fmt.Sprintf(delayedResolutionMessage, reality, strings.Join(terms, ", "))
	return derrors.NewPrincipleViolation(derrors.PrincipleDelayedResolution, reality, terms, msg)
}

// RequireCurrentReality rejects an action step whose reality is blank.
// parentChartID is optional and only shown in the message.
func (v *ValidationService) RequireCurrentReality(actionStep, parentChartID, reality string) error {
	if strings.TrimSpace(reality) != "" {
		return nil
	}
	parentLine := ""
	if parentChartID != "" {
		parentLine = fmt.Sprintf("Parent chart: %q\n", parentChartID)
	}
	msg := fmt.Sprintf(missingRealityMessage, actionStep, parentLine)
	return derrors.NewPrincipleViolation(derrors.PrincipleDelayedResolution, actionStep, nil, msg)
}

// CheckChart runs both checks, outcome first.
func (v *ValidationService) CheckChart(outcome, reality string) error {
	if err := v.CheckCreativeOrientation(outcome); err != nil {
		return err
	}
	return v.CheckDelayedResolution(reality)
}

func matchTerms(text string, terms []string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, t := range terms {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}
