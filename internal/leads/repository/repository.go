// Package repository persists scored leads in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrLeadNotFound is returned when no scored lead matches the lookup key.
var ErrLeadNotFound = errors.New("lead not found")

// ScoredLead is the persisted record of one scoring run, upserted on the
// (customer_id, external_id, external_source) key so re-scores overwrite.
type ScoredLead struct {
	ID                     uuid.UUID
	CustomerID             uuid.UUID
	ExternalID             string
	ExternalSource         string
	BuyerName              string
	BuyerEmail             string
	BuyerPhone             string
	InputPayload           []byte
	QualityScore           int
	IntentScore            int
	ConfidenceScore        int
	QualityBreakdown       []byte
	IntentBreakdown        []byte
	ConfidenceBreakdown    []byte
	IsDisqualified         bool
	DisqualificationReason string
	Is28DayBuyer           bool
	Classification         string
	Priority               string
	RiskFlags              []string
	NextAction             string
	Summary                string
	ModelVersion           string
	ScoreTimeMs            int64
	ScoredAt               time.Time
	Outcome                *string
	OutcomeAt              *time.Time
	DaysToOutcome          *int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const scoredLeadColumns = `
	id, customer_id, external_id, external_source,
	buyer_name, buyer_email, buyer_phone, input_payload,
	quality_score, intent_score, confidence_score,
	quality_breakdown, intent_breakdown, confidence_breakdown,
	is_disqualified, disqualification_reason, is_28_day_buyer,
	classification, priority, risk_flags, next_action, summary,
	model_version, score_time_ms, scored_at,
	outcome, outcome_at, days_to_outcome, created_at, updated_at`

// Upsert inserts a scored lead or, when the customer has already scored the
// same external record, replaces the previous result. An existing outcome is
// cleared because the new score starts a fresh measurement window.
func (r *Repository) Upsert(ctx context.Context, lead *ScoredLead) (*ScoredLead, error) {
	query := `
		INSERT INTO scored_leads (
			customer_id, external_id, external_source,
			buyer_name, buyer_email, buyer_phone, input_payload,
			quality_score, intent_score, confidence_score,
			quality_breakdown, intent_breakdown, confidence_breakdown,
			is_disqualified, disqualification_reason, is_28_day_buyer,
			classification, priority, risk_flags, next_action, summary,
			model_version, score_time_ms, scored_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		ON CONFLICT (customer_id, external_id, external_source) DO UPDATE SET
			buyer_name = EXCLUDED.buyer_name,
			buyer_email = EXCLUDED.buyer_email,
			buyer_phone = EXCLUDED.buyer_phone,
			input_payload = EXCLUDED.input_payload,
			quality_score = EXCLUDED.quality_score,
			intent_score = EXCLUDED.intent_score,
			confidence_score = EXCLUDED.confidence_score,
			quality_breakdown = EXCLUDED.quality_breakdown,
			intent_breakdown = EXCLUDED.intent_breakdown,
			confidence_breakdown = EXCLUDED.confidence_breakdown,
			is_disqualified = EXCLUDED.is_disqualified,
			disqualification_reason = EXCLUDED.disqualification_reason,
			is_28_day_buyer = EXCLUDED.is_28_day_buyer,
			classification = EXCLUDED.classification,
			priority = EXCLUDED.priority,
			risk_flags = EXCLUDED.risk_flags,
			next_action = EXCLUDED.next_action,
			summary = EXCLUDED.summary,
			model_version = EXCLUDED.model_version,
			score_time_ms = EXCLUDED.score_time_ms,
			scored_at = EXCLUDED.scored_at,
			outcome = NULL,
			outcome_at = NULL,
			days_to_outcome = NULL,
			updated_at = NOW()
		RETURNING ` + scoredLeadColumns

	row := r.pool.QueryRow(ctx, query,
		lead.CustomerID, lead.ExternalID, lead.ExternalSource,
		lead.BuyerName, lead.BuyerEmail, lead.BuyerPhone, lead.InputPayload,
		lead.QualityScore, lead.IntentScore, lead.ConfidenceScore,
		lead.QualityBreakdown, lead.IntentBreakdown, lead.ConfidenceBreakdown,
		lead.IsDisqualified, lead.DisqualificationReason, lead.Is28DayBuyer,
		lead.Classification, lead.Priority, lead.RiskFlags, lead.NextAction, lead.Summary,
		lead.ModelVersion, lead.ScoreTimeMs, lead.ScoredAt,
	)

	saved, err := scanScoredLead(row)
	if err != nil {
		return nil, fmt.Errorf("upsert scored lead: %w", err)
	}
	return saved, nil
}

// GetByExternalID fetches a customer's scored lead. An empty externalSource
// matches any source and returns the most recently scored record.
func (r *Repository) GetByExternalID(ctx context.Context, customerID uuid.UUID, externalID, externalSource string) (*ScoredLead, error) {
	query := `
		SELECT ` + scoredLeadColumns + `
		FROM scored_leads
		WHERE customer_id = $1 AND external_id = $2
		  AND ($3 = '' OR external_source = $3)
		ORDER BY scored_at DESC
		LIMIT 1`

	row := r.pool.QueryRow(ctx, query, customerID, externalID, externalSource)
	lead, err := scanScoredLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("get scored lead: %w", err)
	}
	return lead, nil
}

// RecordOutcome stamps the lead's real-world result and the whole days
// elapsed since scoring.
func (r *Repository) RecordOutcome(ctx context.Context, customerID uuid.UUID, externalID, externalSource, outcome string, outcomeAt time.Time) (*ScoredLead, error) {
	query := `
		UPDATE scored_leads
		SET outcome = $4,
		    outcome_at = $5,
		    days_to_outcome = GREATEST(0, FLOOR(EXTRACT(EPOCH FROM ($5 - scored_at)) / 86400))::int,
		    updated_at = NOW()
		WHERE customer_id = $1 AND external_id = $2
		  AND ($3 = '' OR external_source = $3)
		RETURNING ` + scoredLeadColumns

	row := r.pool.QueryRow(ctx, query, customerID, externalID, externalSource, outcome, outcomeAt)
	lead, err := scanScoredLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("record outcome: %w", err)
	}
	return lead, nil
}

// MarkStale closes out leads scored before the cutoff that never received an
// outcome, and returns the affected records so callers can emit events.
func (r *Repository) MarkStale(ctx context.Context, cutoff time.Time) ([]*ScoredLead, error) {
	query := `
		UPDATE scored_leads
		SET outcome = 'stale',
		    outcome_at = NOW(),
		    days_to_outcome = GREATEST(0, FLOOR(EXTRACT(EPOCH FROM (NOW() - scored_at)) / 86400))::int,
		    updated_at = NOW()
		WHERE outcome IS NULL AND scored_at < $1
		RETURNING ` + scoredLeadColumns

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("mark stale leads: %w", err)
	}
	defer rows.Close()

	var leads []*ScoredLead
	for rows.Next() {
		lead, err := scanScoredLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stale lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stale leads: %w", err)
	}
	return leads, nil
}

func scanScoredLead(row pgx.Row) (*ScoredLead, error) {
	var lead ScoredLead
	err := row.Scan(
		&lead.ID, &lead.CustomerID, &lead.ExternalID, &lead.ExternalSource,
		&lead.BuyerName, &lead.BuyerEmail, &lead.BuyerPhone, &lead.InputPayload,
		&lead.QualityScore, &lead.IntentScore, &lead.ConfidenceScore,
		&lead.QualityBreakdown, &lead.IntentBreakdown, &lead.ConfidenceBreakdown,
		&lead.IsDisqualified, &lead.DisqualificationReason, &lead.Is28DayBuyer,
		&lead.Classification, &lead.Priority, &lead.RiskFlags, &lead.NextAction, &lead.Summary,
		&lead.ModelVersion, &lead.ScoreTimeMs, &lead.ScoredAt,
		&lead.Outcome, &lead.OutcomeAt, &lead.DaysToOutcome, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
