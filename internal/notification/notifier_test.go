package notification

import (
	"context"
	"errors"
	"testing"

	"leadscore_backend/internal/events"
	"leadscore_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeSender struct {
	alerts []HotLeadAlert
	to     []string
	err    error
}

func (f *fakeSender) SendHotLeadAlert(_ context.Context, toEmail string, alert HotLeadAlert) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, toEmail)
	f.alerts = append(f.alerts, alert)
	return nil
}

func scoredEvent(classification string) events.LeadScored {
	return events.LeadScored{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          uuid.New(),
		CustomerID:      uuid.New(),
		ExternalID:      "crm-42",
		BuyerName:       "Sarah Chen",
		BuyerEmail:      "sarah@example.com",
		QualityScore:    80,
		IntentScore:     75,
		ConfidenceScore: 100,
		Classification:  classification,
		Priority:        "high",
		NextAction:      "Call immediately - priority follow-up",
		Summary:         "Cash buyer looking for a 2-bed property.",
	}
}

func TestNotifierSendsForHotLead(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "sales@example.com", logger.New("test"))
	bus := events.NewInMemoryBus(logger.New("test"))
	n.Register(bus)

	if err := bus.PublishSync(context.Background(), scoredEvent("hot_lead")); err != nil {
		t.Fatalf("PublishSync returned error: %v", err)
	}

	if len(sender.alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(sender.alerts))
	}
	if sender.to[0] != "sales@example.com" {
		t.Fatalf("expected alert to sales@example.com, got %s", sender.to[0])
	}
	if sender.alerts[0].ExternalID != "crm-42" {
		t.Fatalf("unexpected alert payload: %+v", sender.alerts[0])
	}
}

func TestNotifierIgnoresNonHotLeads(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "sales@example.com", logger.New("test"))
	bus := events.NewInMemoryBus(logger.New("test"))
	n.Register(bus)

	for _, classification := range []string{"qualified", "nurture", "low_priority", "needs_qualification", "disqualified"} {
		if err := bus.PublishSync(context.Background(), scoredEvent(classification)); err != nil {
			t.Fatalf("PublishSync returned error for %s: %v", classification, err)
		}
	}

	if len(sender.alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(sender.alerts))
	}
}

func TestNotifierReportsDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp unreachable")}
	n := NewNotifier(sender, "sales@example.com", logger.New("test"))

	err := n.handleLeadScored(context.Background(), scoredEvent("hot_lead"))
	if err == nil {
		t.Fatal("expected delivery error to propagate to the bus")
	}
}
