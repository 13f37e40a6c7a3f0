package notification

import (
	"context"
	"fmt"

	"leadscore_backend/internal/events"
	"leadscore_backend/internal/scoring"
	"leadscore_backend/platform/logger"
)

// Notifier listens for scored leads and emails an alert for every hot lead.
// Delivery failures are logged and never surface to the scoring call.
type Notifier struct {
	sender    Sender
	toAddress string
	log       *logger.Logger
}

func NewNotifier(sender Sender, toAddress string, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, toAddress: toAddress, log: log}
}

// Register subscribes the notifier to the event bus.
func (n *Notifier) Register(bus events.Bus) {
	bus.Subscribe(events.LeadScored{}.EventName(), events.HandlerFunc(n.handleLeadScored))
}

func (n *Notifier) handleLeadScored(ctx context.Context, event events.Event) error {
	scored, ok := event.(events.LeadScored)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if scored.Classification != string(scoring.ClassHotLead) {
		return nil
	}

	alert := HotLeadAlert{
		ExternalID:      scored.ExternalID,
		BuyerName:       scored.BuyerName,
		BuyerEmail:      scored.BuyerEmail,
		QualityScore:    scored.QualityScore,
		IntentScore:     scored.IntentScore,
		ConfidenceScore: scored.ConfidenceScore,
		Priority:        scored.Priority,
		NextAction:      scored.NextAction,
		Summary:         scored.Summary,
	}

	if err := n.sender.SendHotLeadAlert(ctx, n.toAddress, alert); err != nil {
		n.log.Error("hot lead alert delivery failed",
			"external_id", scored.ExternalID,
			"error", err.Error(),
		)
		return err
	}

	n.log.Info("hot lead alert sent",
		"external_id", scored.ExternalID,
		"priority", scored.Priority,
	)
	return nil
}
