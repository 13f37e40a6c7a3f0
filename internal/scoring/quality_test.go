package scoring

import "testing"

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestCalculateQuality_AutoDisqualification(t *testing.T) {
	lead := Lead{
		ExternalID: "dq-1",
		Requirements: Requirements{
			BudgetMax: floatPtr(2_500_000),
			Bedrooms:  intPtr(1),
		},
		Financial: Financial{PaymentMethod: "cash"},
	}

	result := CalculateQuality(lead)

	if !result.IsDisqualified {
		t.Fatal("expected lead to be disqualified")
	}
	if result.Total != 0 {
		t.Fatalf("expected total 0, got %d", result.Total)
	}
	if len(result.Breakdown) != 1 || result.Breakdown[0].Factor != "Auto-Disqualification" {
		t.Fatalf("expected single Auto-Disqualification entry, got %+v", result.Breakdown)
	}
	if result.DisqualificationReason == "" {
		t.Fatal("expected disqualification reason to be set")
	}
}

func TestCalculateQuality_DisqualificationUsesBudgetMinFallback(t *testing.T) {
	lead := Lead{
		Requirements: Requirements{
			BudgetMin: floatPtr(2_000_000),
			Bedrooms:  intPtr(0),
		},
	}

	if result := CalculateQuality(lead); !result.IsDisqualified {
		t.Fatal("expected budget_min fallback to trigger disqualification")
	}
}

func TestCalculateQuality_NoDisqualificationWithoutBedrooms(t *testing.T) {
	lead := Lead{
		Requirements: Requirements{BudgetMax: floatPtr(5_000_000)},
	}

	if result := CalculateQuality(lead); result.IsDisqualified {
		t.Fatal("undefined bedrooms must not disqualify")
	}
}

func TestCalculateQuality_PaymentMethod(t *testing.T) {
	cases := []struct {
		name   string
		method string
		broker *bool
		want   int
	}{
		{"cash", "cash", nil, 30},
		{"cash case insensitive", "CASH", nil, 30},
		{"mortgage wants broker", "mortgage", boolPtr(true), 15},
		{"mortgage has broker", "mortgage", boolPtr(false), 20},
		{"mortgage broker unknown", "mortgage", nil, 10},
		{"other method", "crypto", boolPtr(true), 0},
		{"absent", "", nil, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lead := Lead{Financial: Financial{PaymentMethod: tc.method, ConnectToBroker: tc.broker}}
			if got := CalculateQuality(lead).Total; got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCalculateQuality_PurchasePurpose(t *testing.T) {
	cases := []struct {
		purpose string
		want    int
	}{
		{"primary_residence", 15},
		{"dependent_studying", 15},
		{"investment", 10},
		{"holiday_home", 5},
		{"speculation", 0},
		{"", 0},
	}

	for _, tc := range cases {
		lead := Lead{Requirements: Requirements{PurchasePurpose: tc.purpose}}
		if got := CalculateQuality(lead).Total; got != tc.want {
			t.Fatalf("purpose %q: expected %d, got %d", tc.purpose, tc.want, got)
		}
	}
}

func TestCalculateQuality_CompleteContext(t *testing.T) {
	cases := []struct {
		name string
		ctx  LeadContext
		want int
	}{
		{"development name", LeadContext{DevelopmentName: "Riverside"}, 10},
		{"channel only", LeadContext{Channel: "form"}, 10},
		{"source campaign only", LeadContext{SourceCampaign: "spring-2026"}, 10},
		{"development id does not count", LeadContext{DevelopmentID: "dev-1"}, 0},
		{"empty", LeadContext{}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lead := Lead{Context: tc.ctx}
			if got := CalculateQuality(lead).Total; got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCalculateQuality_BreakdownSumsToTotal(t *testing.T) {
	lead := Lead{
		Requirements: Requirements{PurchasePurpose: "investment"},
		Financial:    Financial{PaymentMethod: "mortgage", ConnectToBroker: boolPtr(false)},
		Context:      LeadContext{Channel: "website"},
	}

	result := CalculateQuality(lead)

	sum := 0
	for _, entry := range result.Breakdown {
		sum += entry.Points
	}
	if sum != result.Total {
		t.Fatalf("breakdown sum %d != total %d", sum, result.Total)
	}
}

func TestCalculateQuality_MonotonicUnderAddedSignal(t *testing.T) {
	base := Lead{Requirements: Requirements{PurchasePurpose: "investment"}}
	upgraded := base
	upgraded.Financial.PaymentMethod = "cash"

	if CalculateQuality(upgraded).Total < CalculateQuality(base).Total {
		t.Fatal("adding a positive-scoring field must never decrease quality")
	}
}
