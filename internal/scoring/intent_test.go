package scoring

import "testing"

func TestCalculateIntent_28DayHardRule(t *testing.T) {
	lead := Lead{
		Financial: Financial{BuyingWithin28Days: boolPtr(true)},
		// Timeline would score +25 on its own; the hard rule must skip it.
		Requirements: Requirements{Timeline: "1-3 months"},
	}

	result := CalculateIntent(lead)

	if !result.Is28DayBuyer {
		t.Fatal("expected is28DayBuyer")
	}
	if result.Total != 40 {
		t.Fatalf("expected 40 (hard rule only, timeline skipped), got %d", result.Total)
	}
	if result.Breakdown[0].Factor != "28-Day Purchase Intent" {
		t.Fatalf("unexpected factor %q", result.Breakdown[0].Factor)
	}
}

func TestCalculateIntent_28DayFalseIsNotABuyer(t *testing.T) {
	lead := Lead{Financial: Financial{BuyingWithin28Days: boolPtr(false)}}

	if CalculateIntent(lead).Is28DayBuyer {
		t.Fatal("explicit false must not set is28DayBuyer")
	}
}

func TestCalculateIntent_TimelineTextMatch(t *testing.T) {
	cases := []struct {
		timeline string
		want     int
	}{
		{"within 3 months", 25},
		{"1-3 months", 25},
		{"2-3 months ideally", 25},
		{"short term", 25},
		{"as soon as possible", 25},
		{"SOON", 25},
		{"6 months", 5},
		{"3-6 months", 5},
		{"half a year", 5},
		{"next year sometime", 0},
		{"", 0},
	}

	for _, tc := range cases {
		lead := Lead{Requirements: Requirements{Timeline: tc.timeline}}
		if got := CalculateIntent(lead).Total; got != tc.want {
			t.Fatalf("timeline %q: expected %d, got %d", tc.timeline, tc.want, got)
		}
	}
}

func TestCalculateIntent_PurchasePurpose(t *testing.T) {
	cases := []struct {
		purpose string
		want    int
	}{
		{"dependent_studying", 25},
		{"primary_residence", 20},
		{"investment", 10},
		{"holiday_home", 5},
		{"other", 0},
	}

	for _, tc := range cases {
		lead := Lead{Requirements: Requirements{PurchasePurpose: tc.purpose}}
		if got := CalculateIntent(lead).Total; got != tc.want {
			t.Fatalf("purpose %q: expected %d, got %d", tc.purpose, tc.want, got)
		}
	}
}

func TestCalculateIntent_BrokerAndChannel(t *testing.T) {
	lead := Lead{
		Financial: Financial{ConnectToBroker: boolPtr(true)},
		Context:   LeadContext{Channel: "form"},
	}

	if got := CalculateIntent(lead).Total; got != 20 {
		t.Fatalf("expected 10 (broker) + 10 (form channel) = 20, got %d", got)
	}

	lead.Context.Channel = "whatsapp"
	if got := CalculateIntent(lead).Total; got != 15 {
		t.Fatalf("expected 10 (broker) + 5 (whatsapp) = 15, got %d", got)
	}

	lead.Context.Channel = "billboard"
	if got := CalculateIntent(lead).Total; got != 10 {
		t.Fatalf("expected 10 (broker only), got %d", got)
	}

	// Declining a broker is not a commitment signal.
	lead.Financial.ConnectToBroker = boolPtr(false)
	if got := CalculateIntent(lead).Total; got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestCalculateIntent_MaximumStaysClamped(t *testing.T) {
	lead := Lead{
		Requirements: Requirements{PurchasePurpose: "dependent_studying"},
		Financial: Financial{
			BuyingWithin28Days: boolPtr(true),
			ConnectToBroker:    boolPtr(true),
		},
		Context: LeadContext{Channel: "website"},
	}

	result := CalculateIntent(lead)

	// 40 + 25 + 10 + 10 = 85, well inside range, but the invariant holds.
	if result.Total != 85 {
		t.Fatalf("expected 85, got %d", result.Total)
	}
	if result.Total < 0 || result.Total > 100 {
		t.Fatalf("total %d outside [0,100]", result.Total)
	}
}
