// Package service implements the scoring workflow around the pure engine:
// validation, persistence, timing, and event publication.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leadscore_backend/internal/events"
	"leadscore_backend/internal/leads/repository"
	"leadscore_backend/internal/leads/transport"
	"leadscore_backend/internal/scoring"
	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxBatchSize caps a single batch-score call.
	MaxBatchSize = 100

	// batchConcurrency bounds parallel scoring inside one batch.
	batchConcurrency = 8

	defaultExternalSource = "api"
)

// LeadsRepository is the persistence surface the service needs. It is
// satisfied by repository.Repository.
type LeadsRepository interface {
	Upsert(ctx context.Context, lead *repository.ScoredLead) (*repository.ScoredLead, error)
	GetByExternalID(ctx context.Context, customerID uuid.UUID, externalID, externalSource string) (*repository.ScoredLead, error)
	RecordOutcome(ctx context.Context, customerID uuid.UUID, externalID, externalSource, outcome string, outcomeAt time.Time) (*repository.ScoredLead, error)
}

type Service struct {
	repo          LeadsRepository
	bus           events.Bus
	log           *logger.Logger
	defaultRegion string
}

func NewService(repo LeadsRepository, bus events.Bus, log *logger.Logger, defaultRegion string) *Service {
	return &Service{repo: repo, bus: bus, log: log, defaultRegion: defaultRegion}
}

// Score runs the engine over one lead, persists the result, and publishes
// a LeadScored event. Scoring itself never touches the database; the
// recorded score_time_ms covers only the engine run.
func (s *Service) Score(ctx context.Context, customerID uuid.UUID, lead scoring.Lead) (*transport.ScoreResponse, error) {
	if lead.ExternalID == "" {
		return nil, apperr.Validation("external_id is required").WithCode(apperr.CodeMissingExternalID)
	}
	if lead.ExternalSource == "" {
		lead.ExternalSource = defaultExternalSource
	}
	lead.Buyer.Phone = phone.NormalizeE164(lead.Buyer.Phone, s.defaultRegion)

	result, elapsed, err := s.runEngine(lead)
	if err != nil {
		return nil, err
	}

	record, err := buildRecord(customerID, lead, result, elapsed)
	if err != nil {
		return nil, apperr.Internal("failed to encode scoring result").WithOp("leads.Score")
	}

	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		s.log.DatabaseError("upsert scored lead", err)
		return nil, apperr.Internal("failed to persist scored lead").WithOp("leads.Score")
	}

	s.log.LeadScored(saved.ExternalID, saved.Classification, saved.QualityScore, saved.IntentScore, saved.ConfidenceScore, saved.ScoreTimeMs)

	s.bus.Publish(ctx, events.LeadScored{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          saved.ID,
		CustomerID:      saved.CustomerID,
		ExternalID:      saved.ExternalID,
		ExternalSource:  saved.ExternalSource,
		BuyerName:       saved.BuyerName,
		BuyerEmail:      saved.BuyerEmail,
		QualityScore:    saved.QualityScore,
		IntentScore:     saved.IntentScore,
		ConfidenceScore: saved.ConfidenceScore,
		Classification:  saved.Classification,
		Priority:        saved.Priority,
		NextAction:      saved.NextAction,
		Summary:         saved.Summary,
	})

	return toScoreResponse(saved), nil
}

// ScoreBatch scores up to MaxBatchSize leads with per-lead isolation: a lead
// that fails validation or panics the engine produces an error entry and
// never disturbs its neighbours. Results keep the input order.
func (s *Service) ScoreBatch(ctx context.Context, customerID uuid.UUID, leads []scoring.Lead) (*transport.BatchScoreResponse, error) {
	if len(leads) > MaxBatchSize {
		msg := fmt.Sprintf("batch size %d exceeds the maximum of %d", len(leads), MaxBatchSize)
		return nil, apperr.Validation(msg).WithCode(apperr.CodeBatchTooLarge)
	}

	type slot struct {
		result *transport.ScoreResponse
		err    *transport.BatchError
	}
	slots := make([]slot, len(leads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, lead := range leads {
		g.Go(func() error {
			resp, err := s.Score(gctx, customerID, lead)
			if err != nil {
				slots[i] = slot{err: &transport.BatchError{
					ExternalID: lead.ExternalID,
					Error:      err.Error(),
				}}
				return nil
			}
			slots[i] = slot{result: resp}
			return nil
		})
	}
	// Workers never return errors; Wait only drains the group.
	_ = g.Wait()

	resp := &transport.BatchScoreResponse{
		Results: make([]transport.ScoreResponse, 0, len(leads)),
		Errors:  make([]transport.BatchError, 0),
	}
	for _, sl := range slots {
		if sl.err != nil {
			resp.Errors = append(resp.Errors, *sl.err)
			continue
		}
		resp.Results = append(resp.Results, *sl.result)
	}
	resp.Processed = len(resp.Results)
	return resp, nil
}

// GetLead returns the stored scoring result for a customer's external record.
func (s *Service) GetLead(ctx context.Context, customerID uuid.UUID, externalID, externalSource string) (*transport.LeadDetailResponse, error) {
	saved, err := s.repo.GetByExternalID(ctx, customerID, externalID, externalSource)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return nil, apperr.NotFound("lead not found")
		}
		s.log.DatabaseError("get scored lead", err)
		return nil, apperr.Internal("failed to load scored lead").WithOp("leads.GetLead")
	}
	return toDetailResponse(saved)
}

// RecordOutcome stamps an external result on a previously scored lead and
// publishes a LeadOutcomeRecorded event.
func (s *Service) RecordOutcome(ctx context.Context, customerID uuid.UUID, externalID, externalSource, outcome string) (*transport.RecordOutcomeResponse, error) {
	saved, err := s.repo.RecordOutcome(ctx, customerID, externalID, externalSource, outcome, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return nil, apperr.NotFound("lead not found")
		}
		s.log.DatabaseError("record lead outcome", err)
		return nil, apperr.Internal("failed to record outcome").WithOp("leads.RecordOutcome")
	}

	days := 0
	if saved.DaysToOutcome != nil {
		days = *saved.DaysToOutcome
	}
	outcomeAt := time.Now().UTC()
	if saved.OutcomeAt != nil {
		outcomeAt = *saved.OutcomeAt
	}

	s.bus.Publish(ctx, events.LeadOutcomeRecorded{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        saved.ID,
		CustomerID:    saved.CustomerID,
		ExternalID:    saved.ExternalID,
		Outcome:       outcome,
		DaysToOutcome: days,
	})

	return &transport.RecordOutcomeResponse{
		ExternalID:    saved.ExternalID,
		Outcome:       outcome,
		OutcomeAt:     outcomeAt,
		DaysToOutcome: days,
	}, nil
}

// runEngine executes the pure scorer with panic isolation so one malformed
// lead cannot take down a batch.
func (s *Service) runEngine(lead scoring.Lead) (result scoring.Result, elapsedMs int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scoring engine panic", "external_id", lead.ExternalID, "panic", fmt.Sprint(r))
			err = apperr.Internal("scoring failed").WithOp("leads.runEngine")
		}
	}()

	start := time.Now()
	result = scoring.ScoreLead(lead)
	elapsedMs = time.Since(start).Milliseconds()
	return result, elapsedMs, nil
}

func buildRecord(customerID uuid.UUID, lead scoring.Lead, result scoring.Result, elapsedMs int64) (*repository.ScoredLead, error) {
	payload, err := json.Marshal(lead)
	if err != nil {
		return nil, err
	}
	qb, err := json.Marshal(result.Quality.Breakdown)
	if err != nil {
		return nil, err
	}
	ib, err := json.Marshal(result.Intent.Breakdown)
	if err != nil {
		return nil, err
	}
	cb, err := json.Marshal(result.Confidence.Breakdown)
	if err != nil {
		return nil, err
	}

	return &repository.ScoredLead{
		CustomerID:             customerID,
		ExternalID:             lead.ExternalID,
		ExternalSource:         lead.ExternalSource,
		BuyerName:              lead.Buyer.Name,
		BuyerEmail:             lead.Buyer.Email,
		BuyerPhone:             lead.Buyer.Phone,
		InputPayload:           payload,
		QualityScore:           result.Quality.Total,
		IntentScore:            result.Intent.Total,
		ConfidenceScore:        result.Confidence.Total,
		QualityBreakdown:       qb,
		IntentBreakdown:        ib,
		ConfidenceBreakdown:    cb,
		IsDisqualified:         result.Quality.IsDisqualified,
		DisqualificationReason: result.Quality.DisqualificationReason,
		Is28DayBuyer:           result.Intent.Is28DayBuyer,
		Classification:         string(result.Classification),
		Priority:               string(result.Priority),
		RiskFlags:              result.RiskFlags,
		NextAction:             result.NextAction,
		Summary:                result.Summary,
		ModelVersion:           scoring.ModelVersion,
		ScoreTimeMs:            elapsedMs,
		ScoredAt:               time.Now().UTC(),
	}, nil
}

func toScoreResponse(lead *repository.ScoredLead) *transport.ScoreResponse {
	flags := lead.RiskFlags
	if flags == nil {
		flags = []string{}
	}
	return &transport.ScoreResponse{
		ID:         lead.ID,
		ExternalID: lead.ExternalID,
		Scores: transport.Scores{
			QualityScore:    lead.QualityScore,
			IntentScore:     lead.IntentScore,
			ConfidenceScore: lead.ConfidenceScore,
		},
		Classification: lead.Classification,
		Priority:       lead.Priority,
		RiskFlags:      flags,
		NextAction:     lead.NextAction,
		Summary:        lead.Summary,
		ModelVersion:   lead.ModelVersion,
		ScoredAt:       lead.ScoredAt,
	}
}

func toDetailResponse(lead *repository.ScoredLead) (*transport.LeadDetailResponse, error) {
	var qb, ib, cb []scoring.Breakdown
	for _, pair := range []struct {
		raw []byte
		out *[]scoring.Breakdown
	}{
		{lead.QualityBreakdown, &qb},
		{lead.IntentBreakdown, &ib},
		{lead.ConfidenceBreakdown, &cb},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.out); err != nil {
			return nil, apperr.Internal("failed to decode stored breakdown").WithOp("leads.toDetailResponse")
		}
	}

	return &transport.LeadDetailResponse{
		ScoreResponse:       *toScoreResponse(lead),
		QualityBreakdown:    qb,
		IntentBreakdown:     ib,
		ConfidenceBreakdown: cb,
		Is28DayBuyer:        lead.Is28DayBuyer,
		IsDisqualified:      lead.IsDisqualified,
		Outcome:             lead.Outcome,
		OutcomeAt:           lead.OutcomeAt,
		DaysToOutcome:       lead.DaysToOutcome,
	}, nil
}
