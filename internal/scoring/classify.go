package scoring

// Classification is the lead category derived from the three scores.
type Classification string

// Classification values.
const (
	ClassHotLead            Classification = "hot_lead"
	ClassQualified          Classification = "qualified"
	ClassNeedsQualification Classification = "needs_qualification"
	ClassNurture            Classification = "nurture"
	ClassLowPriority        Classification = "low_priority"
	ClassDisqualified       Classification = "disqualified"
)

// Priority is the follow-up priority derived from the classification.
type Priority string

// Priority values.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

// classificationRule pairs a predicate with its outcome. Rules are evaluated
// top to bottom, first match wins.
type classificationRule struct {
	matches func(q QualityResult, i IntentResult, c ConfidenceResult) bool
	result  Classification
}

// classificationRules is the ordered decision list. The ordering is
// load-bearing: disqualification must precede the 28-day override, so a
// disqualified 28-day buyer stays disqualified, and the hot/qualified
// threshold rules must precede the catch-all confidence and nurture rules.
var classificationRules = []classificationRule{
	// 1. Disqualified leads stay disqualified no matter what else is set.
	{func(q QualityResult, _ IntentResult, _ ConfidenceResult) bool {
		return q.IsDisqualified
	}, ClassDisqualified},
	// 2. A committed 28-day buyer is hot regardless of other scores.
	{func(_ QualityResult, i IntentResult, _ ConfidenceResult) bool {
		return i.Is28DayBuyer
	}, ClassHotLead},
	// 3. Strong on every axis.
	{func(q QualityResult, i IntentResult, c ConfidenceResult) bool {
		return q.Total >= 70 && i.Total >= 70 && c.Total >= 60
	}, ClassHotLead},
	// 4. Good on every axis.
	{func(q QualityResult, i IntentResult, c ConfidenceResult) bool {
		return q.Total >= 60 && i.Total >= 50 && c.Total >= 50
	}, ClassQualified},
	// 5. Too little data to judge.
	{func(_ QualityResult, _ IntentResult, c ConfidenceResult) bool {
		return c.Total < 50
	}, ClassNeedsQualification},
	// 6. Able to buy, in no hurry.
	{func(q QualityResult, i IntentResult, _ ConfidenceResult) bool {
		return i.Total < 50 && q.Total >= 50
	}, ClassNurture},
}

// Classify combines the three scores into a single category using the
// ordered decision list above.
func Classify(quality QualityResult, intent IntentResult, confidence ConfidenceResult) Classification {
	for _, rule := range classificationRules {
		if rule.matches(quality, intent, confidence) {
			return rule.result
		}
	}
	return ClassLowPriority
}

// priorityByClassification is a pure lookup; every classification maps.
var priorityByClassification = map[Classification]Priority{
	ClassHotLead:            PriorityHigh,
	ClassQualified:          PriorityHigh,
	ClassNeedsQualification: PriorityMedium,
	ClassNurture:            PriorityLow,
	ClassLowPriority:        PriorityLow,
	ClassDisqualified:       PriorityNone,
}

// PriorityFor maps a classification to its follow-up priority.
func PriorityFor(classification Classification) Priority {
	if priority, ok := priorityByClassification[classification]; ok {
		return priority
	}
	return PriorityLow
}

// nextActionByClassification is a pure lookup; every classification maps.
var nextActionByClassification = map[Classification]string{
	ClassHotLead:            "Schedule viewing within 24 hours",
	ClassQualified:          "Send development brochure + follow up in 48 hours",
	ClassNeedsQualification: "WhatsApp to confirm budget, timeline, and requirements",
	ClassNurture:            "Add to 3-month email sequence",
	ClassLowPriority:        "Monitor for re-engagement",
	ClassDisqualified:       "Archive - do not pursue",
}

// NextActionFor maps a classification to the recommended next action.
func NextActionFor(classification Classification) string {
	if action, ok := nextActionByClassification[classification]; ok {
		return action
	}
	return nextActionByClassification[ClassLowPriority]
}
