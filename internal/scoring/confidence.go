package scoring

// confidenceCheckPoints is the value of each data completeness check.
// Five independent binary checks, 20 points each.
const confidenceCheckPoints = 20

// CalculateConfidence scores data completeness: five independent binary
// checks, each worth 20 points. Presence is what counts, not the value;
// bedrooms: 0 and buying_within_28_days: false both count as provided.
func CalculateConfidence(lead Lead) ConfidenceResult {
	total := 0
	var breakdown []Breakdown
	check := func(factor string, present bool, reason string) {
		if !present {
			return
		}
		total += confidenceCheckPoints
		breakdown = append(breakdown, Breakdown{Factor: factor, Points: confidenceCheckPoints, Reason: reason})
	}

	check("Budget Provided", lead.Requirements.HasBudget(),
		"Budget range given")
	check("Bedrooms Provided", lead.Requirements.Bedrooms != nil,
		"Bedroom requirement given")
	check("Purpose Provided", lead.Requirements.PurchasePurpose != "",
		"Purchase purpose given")
	check("Payment Method Provided", lead.Financial.PaymentMethod != "",
		"Payment method given")
	check("Timeline Provided", lead.Requirements.Timeline != "" || lead.Financial.BuyingWithin28Days != nil,
		"Purchase timeline given")

	return ConfidenceResult{
		Total:     clampScore(total),
		Breakdown: breakdown,
	}
}
