// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadscore_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
var NewInMemoryBus = events.NewInMemoryBus

// InMemoryBus is a type alias to the platform InMemoryBus
type InMemoryBus = events.InMemoryBus

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadScored is published after a lead has been scored and persisted.
type LeadScored struct {
	BaseEvent
	LeadID          uuid.UUID `json:"leadId"`
	CustomerID      uuid.UUID `json:"customerId"`
	ExternalID      string    `json:"externalId"`
	ExternalSource  string    `json:"externalSource"`
	BuyerName       string    `json:"buyerName"`
	BuyerEmail      string    `json:"buyerEmail"`
	QualityScore    int       `json:"qualityScore"`
	IntentScore     int       `json:"intentScore"`
	ConfidenceScore int       `json:"confidenceScore"`
	Classification  string    `json:"classification"`
	Priority        string    `json:"priority"`
	NextAction      string    `json:"nextAction"`
	Summary         string    `json:"summary"`
}

func (e LeadScored) EventName() string { return "leads.scored" }

// LeadOutcomeRecorded is published when a terminal outcome lands on a lead,
// whether through the API or the stale sweep.
type LeadOutcomeRecorded struct {
	BaseEvent
	LeadID        uuid.UUID `json:"leadId"`
	CustomerID    uuid.UUID `json:"customerId"`
	ExternalID    string    `json:"externalId"`
	Outcome       string    `json:"outcome"`
	DaysToOutcome int       `json:"daysToOutcome"`
}

func (e LeadOutcomeRecorded) EventName() string { return "leads.outcome_recorded" }

// =============================================================================
// API Key Domain Events
// =============================================================================

// APIKeyCreated is published when an admin issues a new scoring API key.
type APIKeyCreated struct {
	BaseEvent
	KeyID      uuid.UUID `json:"keyId"`
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name"`
	KeyPrefix  string    `json:"keyPrefix"`
}

func (e APIKeyCreated) EventName() string { return "apikeys.created" }
