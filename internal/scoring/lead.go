package scoring

// Lead is the normalized input record the engine scores. All fields besides
// ExternalID are optional; a missing optional field is valid input, not an
// error. Pointer fields distinguish "absent" from zero values (bedrooms: 0
// counts as defined, buying_within_28_days: false counts as defined).
type Lead struct {
	ExternalID     string       `json:"external_id"`
	ExternalSource string       `json:"external_source,omitempty"`
	Buyer          Buyer        `json:"buyer"`
	Requirements   Requirements `json:"requirements"`
	Financial      Financial    `json:"financial"`
	Context        LeadContext  `json:"context"`
}

// Buyer holds contact details. Informational only, never scored.
type Buyer struct {
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Requirements describes what the buyer is looking for.
type Requirements struct {
	BudgetMin         *float64 `json:"budget_min,omitempty"`
	BudgetMax         *float64 `json:"budget_max,omitempty"`
	Bedrooms          *int     `json:"bedrooms,omitempty"`
	PreferredLocation string   `json:"preferred_location,omitempty"`
	PurchasePurpose   string   `json:"purchase_purpose,omitempty"`
	Timeline          string   `json:"timeline,omitempty"`
}

// Financial describes how the buyer intends to pay.
type Financial struct {
	PaymentMethod      string `json:"payment_method,omitempty"`
	ConnectToBroker    *bool  `json:"connect_to_broker,omitempty"`
	BuyingWithin28Days *bool  `json:"buying_within_28_days,omitempty"`
	ProofOfFunds       *bool  `json:"proof_of_funds,omitempty"`
	MortgageStatus     string `json:"mortgage_status,omitempty"`
}

// LeadContext describes where the lead came from.
type LeadContext struct {
	DevelopmentID   string `json:"development_id,omitempty"`
	DevelopmentName string `json:"development_name,omitempty"`
	Channel         string `json:"channel,omitempty"`
	SourceCampaign  string `json:"source_campaign,omitempty"`
}

// Budget resolves the effective budget for disqualification and risk checks:
// budget_max wins over budget_min, 0 when neither is set.
func (r Requirements) Budget() float64 {
	if r.BudgetMax != nil {
		return *r.BudgetMax
	}
	if r.BudgetMin != nil {
		return *r.BudgetMin
	}
	return 0
}

// HasBudget reports whether either budget bound is set.
func (r Requirements) HasBudget() bool {
	return r.BudgetMin != nil || r.BudgetMax != nil
}
