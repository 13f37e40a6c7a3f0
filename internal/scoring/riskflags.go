package scoring

// Risk flag values.
const (
	FlagLikelyFakeLead        = "likely_fake_lead"
	FlagNoFinanceConfirmation = "no_finance_confirmation"
	FlagLowUrgency            = "low_urgency"
	FlagIncompleteProfile     = "incomplete_profile"
	FlagTimeSensitiveVisa     = "time_sensitive_visa"
)

// lowUrgencyTimelineTerms flags a holiday-home buyer on a long horizon.
var lowUrgencyTimelineTerms = []string{"6 month", "12 month", "year"}

// GenerateRiskFlags evaluates each risk check independently against the lead
// and its quality result; a lead may carry several flags. The returned list
// is deduplicated.
func GenerateRiskFlags(lead Lead, quality QualityResult) []string {
	flags := make([]string, 0, 4)
	seen := make(map[string]bool)
	add := func(flag string) {
		if !seen[flag] {
			seen[flag] = true
			flags = append(flags, flag)
		}
	}

	// High budget with almost no bedrooms: the same signature the quality
	// calculator disqualifies on.
	if quality.IsDisqualified {
		add(FlagLikelyFakeLead)
	}

	// Mortgage buyer who declined a broker introduction: financing claimed
	// but never confirmed.
	if normalize(lead.Financial.PaymentMethod) == "mortgage" &&
		lead.Financial.ConnectToBroker != nil && !*lead.Financial.ConnectToBroker {
		add(FlagNoFinanceConfirmation)
	}

	// Holiday home on a 6-12 month horizon will not move soon.
	if normalize(lead.Requirements.PurchasePurpose) == "holiday_home" &&
		containsAny(normalize(lead.Requirements.Timeline), lowUrgencyTimelineTerms) {
		add(FlagLowUrgency)
	}

	// Missing core fields. At most one entry: the chain stops at the first
	// missing field and every branch adds the same flag value.
	if !lead.Requirements.HasBudget() {
		add(FlagIncompleteProfile)
	} else if lead.Requirements.PurchasePurpose == "" {
		add(FlagIncompleteProfile)
	} else if lead.Financial.PaymentMethod == "" {
		add(FlagIncompleteProfile)
	}

	// Dependent-student purchases run against visa and term dates.
	if normalize(lead.Requirements.PurchasePurpose) == "dependent_studying" {
		add(FlagTimeSensitiveVisa)
	}

	return flags
}
