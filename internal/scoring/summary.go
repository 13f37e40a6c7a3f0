package scoring

import (
	"fmt"
	"strings"
)

// purposePhrases renders purchase purposes for the summary sentence.
var purposePhrases = map[string]string{
	"primary_residence":  "buying as a primary residence",
	"dependent_studying": "buying for a dependent studying nearby",
	"investment":         "buying as an investment",
	"holiday_home":       "buying as a holiday home",
}

// assessmentClauses is the fixed per-classification closing clause.
var assessmentClauses = map[Classification]string{
	ClassHotLead:            "Hot lead - act immediately.",
	ClassQualified:          "Qualified lead worth active follow-up.",
	ClassNeedsQualification: "Key details missing - qualify before investing time.",
	ClassNurture:            "Able to buy but not urgent - keep warm.",
	ClassLowPriority:        "Weak signals - monitor only.",
	ClassDisqualified:       "Likely fake or unserviceable - do not pursue.",
}

// BuildSummary composes one human-readable sentence from the lead fields and
// its classification. Output is whitespace-normalized.
func BuildSummary(lead Lead, classification Classification) string {
	parts := make([]string, 0, 6)

	// Binary payment label: anything that is not cash reads as a mortgage
	// buyer, including an unset payment method.
	if normalize(lead.Financial.PaymentMethod) == "cash" {
		parts = append(parts, "Cash buyer")
	} else {
		parts = append(parts, "Mortgage buyer")
	}

	if budget := formatBudgetRange(lead.Requirements); budget != "" {
		parts = append(parts, "with a budget of "+budget)
	}

	if lead.Requirements.Bedrooms != nil {
		parts = append(parts, fmt.Sprintf("looking for %d bedrooms", *lead.Requirements.Bedrooms))
	}

	if phrase, ok := purposePhrases[normalize(lead.Requirements.PurchasePurpose)]; ok {
		parts = append(parts, phrase)
	}

	if lead.Financial.BuyingWithin28Days != nil && *lead.Financial.BuyingWithin28Days {
		parts = append(parts, "aiming to complete within 28 days")
	} else if timeline := strings.TrimSpace(lead.Requirements.Timeline); timeline != "" {
		parts = append(parts, "timeline: "+timeline)
	}

	sentence := strings.Join(parts, ", ") + ". " + assessmentClauses[classification]
	return strings.Join(strings.Fields(sentence), " ")
}

// formatBudgetRange renders the budget for the summary. Both bounds present
// and unequal render as a range; otherwise the single available value is
// rendered. Returns "" when no budget was given.
func formatBudgetRange(req Requirements) string {
	switch {
	case req.BudgetMin != nil && req.BudgetMax != nil:
		if *req.BudgetMin != *req.BudgetMax {
			return formatAmount(*req.BudgetMin) + "-" + formatAmount(*req.BudgetMax)
		}
		return formatAmount(*req.BudgetMax)
	case req.BudgetMax != nil:
		return formatAmount(*req.BudgetMax)
	case req.BudgetMin != nil:
		return formatAmount(*req.BudgetMin)
	default:
		return ""
	}
}

// formatAmount renders a single budget figure: >=1M as £X.XM, >=1K as £XK
// rounded, otherwise the raw value.
func formatAmount(value float64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("£%.1fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("£%dK", roundHalfUp(value/1_000))
	default:
		return fmt.Sprintf("£%d", roundHalfUp(value))
	}
}
