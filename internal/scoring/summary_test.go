package scoring

import (
	"strings"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{2_500_000, "£2.5M"},
		{1_000_000, "£1.0M"},
		{600_000, "£600K"},
		{550_500, "£551K"},
		{1_000, "£1K"},
		{950, "£950"},
		{0, "£0"},
	}

	for _, tc := range cases {
		if got := formatAmount(tc.value); got != tc.want {
			t.Fatalf("formatAmount(%v): expected %q, got %q", tc.value, tc.want, got)
		}
	}
}

func TestFormatBudgetRange(t *testing.T) {
	cases := []struct {
		name string
		req  Requirements
		want string
	}{
		{"range", Requirements{BudgetMin: floatPtr(500_000), BudgetMax: floatPtr(600_000)}, "£500K-£600K"},
		{"equal bounds collapse", Requirements{BudgetMin: floatPtr(500_000), BudgetMax: floatPtr(500_000)}, "£500K"},
		{"max only", Requirements{BudgetMax: floatPtr(2_500_000)}, "£2.5M"},
		{"min only", Requirements{BudgetMin: floatPtr(300_000)}, "£300K"},
		{"none", Requirements{}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatBudgetRange(tc.req); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildSummary_CashBuyerFullProfile(t *testing.T) {
	lead := Lead{
		Requirements: Requirements{
			BudgetMin:       floatPtr(500_000),
			BudgetMax:       floatPtr(600_000),
			Bedrooms:        intPtr(2),
			PurchasePurpose: "primary_residence",
		},
		Financial: Financial{
			PaymentMethod:      "cash",
			BuyingWithin28Days: boolPtr(true),
		},
	}

	summary := BuildSummary(lead, ClassHotLead)

	for _, fragment := range []string{
		"Cash buyer",
		"£500K-£600K",
		"2 bedrooms",
		"primary residence",
		"within 28 days",
		"Hot lead",
	} {
		if !strings.Contains(summary, fragment) {
			t.Fatalf("summary %q missing %q", summary, fragment)
		}
	}
}

func TestBuildSummary_UnsetPaymentMethodReadsAsMortgage(t *testing.T) {
	// The payment clause is a binary choice; unset collapses into the
	// mortgage label.
	summary := BuildSummary(Lead{}, ClassNeedsQualification)

	if !strings.HasPrefix(summary, "Mortgage buyer") {
		t.Fatalf("expected mortgage label for unset payment method, got %q", summary)
	}
}

func TestBuildSummary_RawTimelineWhenNot28Day(t *testing.T) {
	lead := Lead{Requirements: Requirements{Timeline: "6 months"}}

	summary := BuildSummary(lead, ClassNurture)

	if !strings.Contains(summary, "6 months") {
		t.Fatalf("expected raw timeline in %q", summary)
	}
}

func TestBuildSummary_WhitespaceNormalized(t *testing.T) {
	lead := Lead{Requirements: Requirements{Timeline: "  3   months  "}}

	summary := BuildSummary(lead, ClassLowPriority)

	if strings.Contains(summary, "  ") {
		t.Fatalf("summary not whitespace-normalized: %q", summary)
	}
	if summary != strings.TrimSpace(summary) {
		t.Fatalf("summary not trimmed: %q", summary)
	}
}

func TestBuildSummary_EveryClassificationHasAssessment(t *testing.T) {
	for _, classification := range []Classification{
		ClassHotLead, ClassQualified, ClassNeedsQualification,
		ClassNurture, ClassLowPriority, ClassDisqualified,
	} {
		summary := BuildSummary(Lead{}, classification)
		if !strings.HasSuffix(summary, ".") || len(summary) < 20 {
			t.Fatalf("%s: implausible summary %q", classification, summary)
		}
	}
}
