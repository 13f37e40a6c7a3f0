// Package scoring implements the deterministic lead scoring engine: quality,
// intent, and confidence calculators, the classification decision list, risk
// flagging, next-action assignment, and the human-readable summary.
//
// The engine is pure and stateless. Every function only reads its input and
// allocates fresh output, so concurrent invocation needs no locking. All
// persistence, timestamps, and transport concerns belong to the caller.
package scoring

import (
	"math"
	"strings"
)

// ModelVersion tracks the scoring model for debugging and analysis.
// Bump this when changing scoring logic significantly.
const ModelVersion = "1.0"

// Breakdown is one entry in the per-score audit trail: which rule contributed
// which points. Entries are appended in evaluation order and never influence
// scoring themselves.
type Breakdown struct {
	Factor string `json:"factor"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// QualityResult answers "can they complete the purchase?".
type QualityResult struct {
	Total                  int         `json:"total"`
	Breakdown              []Breakdown `json:"breakdown"`
	IsDisqualified         bool        `json:"isDisqualified"`
	DisqualificationReason string      `json:"disqualificationReason,omitempty"`
}

// IntentResult answers "how urgent is the purchase?".
type IntentResult struct {
	Total        int         `json:"total"`
	Breakdown    []Breakdown `json:"breakdown"`
	Is28DayBuyer bool        `json:"is28DayBuyer"`
}

// ConfidenceResult measures how complete the submitted data is.
type ConfidenceResult struct {
	Total     int         `json:"total"`
	Breakdown []Breakdown `json:"breakdown"`
}

// Result is the full scoring output for one lead. Immutable once produced.
type Result struct {
	Quality        QualityResult    `json:"quality"`
	Intent         IntentResult     `json:"intent"`
	Confidence     ConfidenceResult `json:"confidence"`
	Classification Classification   `json:"classification"`
	Priority       Priority         `json:"priority"`
	RiskFlags      []string         `json:"riskFlags"`
	NextAction     string           `json:"nextAction"`
	Summary        string           `json:"summary"`
}

// ScoreLead runs the full pipeline: the three calculators, then the
// classifier, priority map, risk flags, next action, and summary. It is total
// over well-formed input; missing optional fields are valid, not errors.
func ScoreLead(lead Lead) Result {
	quality := CalculateQuality(lead)
	intent := CalculateIntent(lead)
	confidence := CalculateConfidence(lead)

	classification := Classify(quality, intent, confidence)

	return Result{
		Quality:        quality,
		Intent:         intent,
		Confidence:     confidence,
		Classification: classification,
		Priority:       PriorityFor(classification),
		RiskFlags:      GenerateRiskFlags(lead, quality),
		NextAction:     NextActionFor(classification),
		Summary:        BuildSummary(lead, classification),
	}
}

// clampScore keeps totals inside [0,100]. The current point tables cannot
// exceed 100, but the clamp is mandatory so future rule additions stay safe.
func clampScore(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// normalize lower-cases and trims a field value for case-insensitive rule
// matching. Absent fields behave as the empty string and match no case.
func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// containsAny checks if s contains any of the keywords.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// roundHalfUp rounds to the nearest integer, halves away from zero.
func roundHalfUp(value float64) int {
	return int(math.Round(value))
}
