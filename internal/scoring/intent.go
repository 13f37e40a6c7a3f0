package scoring

// Timeline keyword tables for the free-text urgency match. Matching is a
// case-insensitive substring check against the normalized timeline value.
var (
	// Terms indicating a purchase inside ~3 months.
	shortTermTimelineTerms = []string{"3 month", "1-3", "2-3", "short", "soon"}
	// Terms indicating a ~6 month horizon.
	midTermTimelineTerms = []string{"6 month", "3-6", "half"}
)

// Purchase purpose points for intent. Mutually exclusive, max 25.
// dependent_studying outranks primary_residence here: term dates are a hard
// deadline in a way owner-occupation is not.
var intentPurposePoints = map[string]int{
	"dependent_studying": 25,
	"primary_residence":  20,
	"investment":         10,
	"holiday_home":       5,
}

// CalculateIntent scores "how urgent?" from the 28-day commitment, timeline
// text, purchase purpose, broker interest, and acquisition channel.
func CalculateIntent(lead Lead) IntentResult {
	total := 0
	is28Day := false
	var breakdown []Breakdown
	add := func(factor string, points int, reason string) {
		total += points
		breakdown = append(breakdown, Breakdown{Factor: factor, Points: points, Reason: reason})
	}

	// 28-day hard rule (max 40 pts). Takes priority over the timeline text
	// match and skips it entirely.
	if lead.Financial.BuyingWithin28Days != nil && *lead.Financial.BuyingWithin28Days {
		is28Day = true
		add("28-Day Purchase Intent", 40, "Buyer committed to purchasing within 28 days")
	} else if timeline := normalize(lead.Requirements.Timeline); timeline != "" {
		if containsAny(timeline, shortTermTimelineTerms) {
			add("Short-Term Timeline", 25, "Stated timeline indicates purchase within 3 months")
		} else if containsAny(timeline, midTermTimelineTerms) {
			add("Mid-Term Timeline", 5, "Stated timeline indicates purchase within 6 months")
		}
	}

	// Purchase purpose (max 25 pts, mutually exclusive)
	purpose := normalize(lead.Requirements.PurchasePurpose)
	if points, ok := intentPurposePoints[purpose]; ok {
		add("Purchase Purpose", points, "Purpose "+purpose+" signals urgency to buy")
	}

	// Commitment signal (max 10 pts)
	if lead.Financial.ConnectToBroker != nil && *lead.Financial.ConnectToBroker {
		add("Wants Broker Connection", 10, "Asking for a broker shows active progress toward buying")
	}

	// Channel/source (max 10 pts)
	switch normalize(lead.Context.Channel) {
	case "form", "website":
		add("Direct Channel", 10, "Came in through a high-intent direct channel")
	case "whatsapp":
		add("WhatsApp Channel", 5, "Conversational channel shows moderate intent")
	}

	return IntentResult{
		Total:        clampScore(total),
		Breakdown:    breakdown,
		Is28DayBuyer: is28Day,
	}
}
