// Package transport defines the request and response DTOs for the leads API.
package transport

import (
	"time"

	"leadscore_backend/internal/scoring"

	"github.com/google/uuid"
)

// ScoreLeadRequest is the body for a single-score call. The payload is the
// engine's normalized lead record; external_id is required and checked by
// the service so the error carries MISSING_EXTERNAL_ID.
type ScoreLeadRequest = scoring.Lead

// BatchScoreRequest is the body for a batch-score call.
type BatchScoreRequest struct {
	Leads []scoring.Lead `json:"leads" validate:"required,max=100"`
}

// Scores groups the three engine totals in the wire format.
type Scores struct {
	QualityScore    int `json:"quality_score"`
	IntentScore     int `json:"intent_score"`
	ConfidenceScore int `json:"confidence_score"`
}

// ScoreResponse is returned for every scored lead.
type ScoreResponse struct {
	ID             uuid.UUID `json:"id"`
	ExternalID     string    `json:"external_id"`
	Scores         Scores    `json:"scores"`
	Classification string    `json:"classification"`
	Priority       string    `json:"priority"`
	RiskFlags      []string  `json:"risk_flags"`
	NextAction     string    `json:"next_action"`
	Summary        string    `json:"summary"`
	ModelVersion   string    `json:"model_version"`
	ScoredAt       time.Time `json:"scored_at"`
}

// BatchError records one failed element of a batch without aborting the rest.
type BatchError struct {
	ExternalID string `json:"external_id"`
	Error      string `json:"error"`
}

// BatchScoreResponse is returned for a batch-score call.
type BatchScoreResponse struct {
	Results   []ScoreResponse `json:"results"`
	Processed int             `json:"processed"`
	Errors    []BatchError    `json:"errors"`
}

// LeadDetailResponse extends ScoreResponse with audit and outcome data for
// retrieval calls.
type LeadDetailResponse struct {
	ScoreResponse
	QualityBreakdown    []scoring.Breakdown `json:"quality_breakdown"`
	IntentBreakdown     []scoring.Breakdown `json:"intent_breakdown"`
	ConfidenceBreakdown []scoring.Breakdown `json:"confidence_breakdown"`
	Is28DayBuyer        bool                `json:"is_28_day_buyer"`
	IsDisqualified      bool                `json:"is_disqualified"`
	Outcome             *string             `json:"outcome,omitempty"`
	OutcomeAt           *time.Time          `json:"outcome_at,omitempty"`
	DaysToOutcome       *int                `json:"days_to_outcome,omitempty"`
}

// RecordOutcomeRequest is the body for the outcome update call.
type RecordOutcomeRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=converted lost disqualified stale"`
}

// RecordOutcomeResponse confirms a recorded outcome.
type RecordOutcomeResponse struct {
	ExternalID    string    `json:"external_id"`
	Outcome       string    `json:"outcome"`
	OutcomeAt     time.Time `json:"outcome_at"`
	DaysToOutcome int       `json:"days_to_outcome"`
}
