package scoring

const (
	// disqualifyBudgetFloor is the budget at which a low bedroom count stops
	// making sense as a genuine enquiry.
	disqualifyBudgetFloor = 2_000_000
	// disqualifyBedroomCeiling is the bedroom count at or below which a
	// 2M+ budget is treated as fake.
	disqualifyBedroomCeiling = 1

	disqualificationReason = "Budget of 2M+ with 1 bedroom or fewer indicates a likely fake enquiry"
)

// Purchase purpose points for quality. Mutually exclusive, max 15.
var qualityPurposePoints = map[string]int{
	"primary_residence":  15,
	"dependent_studying": 15,
	"investment":         10,
	"holiday_home":       5,
}

// CalculateQuality scores "can they complete?" from payment method, purchase
// purpose, and context completeness. The auto-disqualification check
// short-circuits: no further rules apply to a disqualified lead.
func CalculateQuality(lead Lead) QualityResult {
	if budget := lead.Requirements.Budget(); budget >= disqualifyBudgetFloor &&
		lead.Requirements.Bedrooms != nil && *lead.Requirements.Bedrooms <= disqualifyBedroomCeiling {
		return QualityResult{
			Total: 0,
			Breakdown: []Breakdown{{
				Factor: "Auto-Disqualification",
				Points: 0,
				Reason: disqualificationReason,
			}},
			IsDisqualified:         true,
			DisqualificationReason: disqualificationReason,
		}
	}

	total := 0
	var breakdown []Breakdown
	add := func(factor string, points int, reason string) {
		total += points
		breakdown = append(breakdown, Breakdown{Factor: factor, Points: points, Reason: reason})
	}

	// Payment method (max 30 pts)
	switch normalize(lead.Financial.PaymentMethod) {
	case "cash":
		add("Cash Buyer", 30, "Cash purchase removes financing risk")
	case "mortgage":
		switch {
		case lead.Financial.ConnectToBroker == nil:
			add("Mortgage Buyer", 10, "Mortgage purchase, broker status unknown")
		case *lead.Financial.ConnectToBroker:
			add("Mortgage + Wants Broker", 15, "Mortgage purchase, open to broker introduction")
		default:
			add("Mortgage + Has Broker", 20, "Mortgage purchase with financing already arranged")
		}
	}

	// Purchase purpose (max 15 pts, mutually exclusive)
	purpose := normalize(lead.Requirements.PurchasePurpose)
	if points, ok := qualityPurposePoints[purpose]; ok {
		add("Purchase Purpose", points, "Purpose "+purpose+" signals ability to complete")
	}

	// Data completeness (max 10 pts): any context field present
	if lead.Context.DevelopmentName != "" || lead.Context.Channel != "" || lead.Context.SourceCampaign != "" {
		add("Complete Context", 10, "Campaign context provided with the enquiry")
	}

	return QualityResult{
		Total:     clampScore(total),
		Breakdown: breakdown,
	}
}
