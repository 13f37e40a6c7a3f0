package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"leadscore_backend/internal/events"
	"leadscore_backend/internal/leads/repository"
	"leadscore_backend/internal/scoring"
	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu      sync.Mutex
	upserts []*repository.ScoredLead
	stored  map[string]*repository.ScoredLead
	failFor string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: make(map[string]*repository.ScoredLead)}
}

func (f *fakeRepo) key(customerID uuid.UUID, externalID, externalSource string) string {
	return customerID.String() + "|" + externalID + "|" + externalSource
}

func (f *fakeRepo) Upsert(_ context.Context, lead *repository.ScoredLead) (*repository.ScoredLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor != "" && lead.ExternalID == f.failFor {
		return nil, errors.New("connection reset")
	}

	saved := *lead
	saved.ID = uuid.New()
	f.upserts = append(f.upserts, &saved)
	f.stored[f.key(lead.CustomerID, lead.ExternalID, lead.ExternalSource)] = &saved
	return &saved, nil
}

func (f *fakeRepo) GetByExternalID(_ context.Context, customerID uuid.UUID, externalID, externalSource string) (*repository.ScoredLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if externalSource == "" {
		for _, lead := range f.stored {
			if lead.CustomerID == customerID && lead.ExternalID == externalID {
				return lead, nil
			}
		}
		return nil, repository.ErrLeadNotFound
	}
	lead, ok := f.stored[f.key(customerID, externalID, externalSource)]
	if !ok {
		return nil, repository.ErrLeadNotFound
	}
	return lead, nil
}

func (f *fakeRepo) RecordOutcome(_ context.Context, customerID uuid.UUID, externalID, externalSource, outcome string, outcomeAt time.Time) (*repository.ScoredLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lead, ok := f.stored[f.key(customerID, externalID, externalSource)]
	if !ok {
		return nil, repository.ErrLeadNotFound
	}
	days := int(outcomeAt.Sub(lead.ScoredAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	lead.Outcome = &outcome
	lead.OutcomeAt = &outcomeAt
	lead.DaysToOutcome = &days
	return lead, nil
}

type fakeBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *fakeBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *fakeBus) Subscribe(string, events.Handler) {}

func (b *fakeBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]events.Event, len(b.events))
	copy(out, b.events)
	return out
}

func newTestService(repo LeadsRepository, bus events.Bus) *Service {
	return NewService(repo, bus, logger.New("test"), "GB")
}

func cashLead(externalID string) scoring.Lead {
	budget := 450000.0
	bedrooms := 2
	within28 := true
	return scoring.Lead{
		ExternalID: externalID,
		Buyer: scoring.Buyer{
			Name:  "Sarah Chen",
			Email: "sarah@example.com",
			Phone: "+447911123456",
		},
		Requirements: scoring.Requirements{
			BudgetMax:         &budget,
			Bedrooms:          &bedrooms,
			PreferredLocation: "Manchester",
			PurchasePurpose:   "investment",
		},
		Financial: scoring.Financial{
			PaymentMethod:      "cash",
			BuyingWithin28Days: &within28,
		},
		Context: scoring.LeadContext{Channel: "form"},
	}
}

func TestScoreRequiresExternalID(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeBus{})

	_, err := svc.Score(context.Background(), uuid.New(), scoring.Lead{})
	if err == nil {
		t.Fatal("expected error for missing external_id")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if appErr.Code != apperr.CodeMissingExternalID {
		t.Fatalf("expected code %s, got %s", apperr.CodeMissingExternalID, appErr.Code)
	}
}

func TestScorePersistsAndPublishes(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, bus)
	customerID := uuid.New()

	resp, err := svc.Score(context.Background(), customerID, cashLead("crm-1001"))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	if resp.ExternalID != "crm-1001" {
		t.Fatalf("expected external_id crm-1001, got %s", resp.ExternalID)
	}
	if resp.Classification != "hot_lead" {
		t.Fatalf("expected hot_lead for a 28-day cash buyer, got %s", resp.Classification)
	}
	if resp.ModelVersion != scoring.ModelVersion {
		t.Fatalf("expected model version %s, got %s", scoring.ModelVersion, resp.ModelVersion)
	}
	if resp.ID == uuid.Nil {
		t.Fatal("expected a persisted lead ID")
	}

	if len(repo.upserts) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(repo.upserts))
	}
	saved := repo.upserts[0]
	if saved.CustomerID != customerID {
		t.Fatalf("expected customer %s, got %s", customerID, saved.CustomerID)
	}
	if saved.ExternalSource != "api" {
		t.Fatalf("expected default source api, got %s", saved.ExternalSource)
	}
	if len(saved.InputPayload) == 0 {
		t.Fatal("expected the input payload to be stored")
	}

	published := bus.published()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	scored, ok := published[0].(events.LeadScored)
	if !ok {
		t.Fatalf("expected LeadScored event, got %T", published[0])
	}
	if scored.ExternalID != "crm-1001" || scored.Classification != "hot_lead" {
		t.Fatalf("unexpected event payload: %+v", scored)
	}
}

func TestScoreNormalizesPhone(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	lead := cashLead("crm-1002")
	lead.Buyer.Phone = "07911 123456"
	if _, err := svc.Score(context.Background(), uuid.New(), lead); err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	if got := repo.upserts[0].BuyerPhone; got != "+447911123456" {
		t.Fatalf("expected normalized phone +447911123456, got %q", got)
	}
}

func TestScoreBatchIsolatesFailures(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	leads := []scoring.Lead{
		cashLead("crm-1"),
		{}, // missing external_id
		cashLead("crm-3"),
	}

	resp, err := svc.ScoreBatch(context.Background(), uuid.New(), leads)
	if err != nil {
		t.Fatalf("ScoreBatch returned error: %v", err)
	}

	if resp.Processed != 2 {
		t.Fatalf("expected 2 processed, got %d", resp.Processed)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].ExternalID != "crm-1" || resp.Results[1].ExternalID != "crm-3" {
		t.Fatalf("expected results to keep input order, got %s then %s",
			resp.Results[0].ExternalID, resp.Results[1].ExternalID)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("expected 1 error entry, got %d", len(resp.Errors))
	}
	if resp.Errors[0].ExternalID != "" {
		t.Fatalf("expected empty external_id in error entry, got %q", resp.Errors[0].ExternalID)
	}
	if !strings.Contains(resp.Errors[0].Error, "external_id") {
		t.Fatalf("expected error message to mention external_id, got %q", resp.Errors[0].Error)
	}
}

func TestScoreBatchRepositoryFailureDoesNotAbort(t *testing.T) {
	repo := newFakeRepo()
	repo.failFor = "crm-2"
	svc := newTestService(repo, &fakeBus{})

	resp, err := svc.ScoreBatch(context.Background(), uuid.New(), []scoring.Lead{
		cashLead("crm-1"),
		cashLead("crm-2"),
		cashLead("crm-3"),
	})
	if err != nil {
		t.Fatalf("ScoreBatch returned error: %v", err)
	}

	if resp.Processed != 2 {
		t.Fatalf("expected 2 processed, got %d", resp.Processed)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].ExternalID != "crm-2" {
		t.Fatalf("expected a single error for crm-2, got %+v", resp.Errors)
	}
}

func TestScoreBatchRejectsOversizedBatch(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeBus{})

	leads := make([]scoring.Lead, MaxBatchSize+1)
	for i := range leads {
		leads[i] = cashLead(fmt.Sprintf("crm-%d", i))
	}

	_, err := svc.ScoreBatch(context.Background(), uuid.New(), leads)
	if err == nil {
		t.Fatal("expected error for oversized batch")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if appErr.Code != apperr.CodeBatchTooLarge {
		t.Fatalf("expected code %s, got %s", apperr.CodeBatchTooLarge, appErr.Code)
	}
}

func TestGetLeadNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeBus{})

	_, err := svc.GetLead(context.Background(), uuid.New(), "missing", "")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if appErr.Code != apperr.CodeLeadNotFound {
		t.Fatalf("expected code %s, got %s", apperr.CodeLeadNotFound, appErr.Code)
	}
}

func TestGetLeadReturnsBreakdowns(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})
	customerID := uuid.New()

	if _, err := svc.Score(context.Background(), customerID, cashLead("crm-2001")); err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	detail, err := svc.GetLead(context.Background(), customerID, "crm-2001", "api")
	if err != nil {
		t.Fatalf("GetLead returned error: %v", err)
	}
	if len(detail.QualityBreakdown) == 0 {
		t.Fatal("expected a quality breakdown")
	}
	if detail.IsDisqualified {
		t.Fatal("did not expect a disqualified lead")
	}
}

func TestRecordOutcomePublishesEvent(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, bus)
	customerID := uuid.New()

	if _, err := svc.Score(context.Background(), customerID, cashLead("crm-3001")); err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	resp, err := svc.RecordOutcome(context.Background(), customerID, "crm-3001", "api", "converted")
	if err != nil {
		t.Fatalf("RecordOutcome returned error: %v", err)
	}
	if resp.Outcome != "converted" {
		t.Fatalf("expected converted, got %s", resp.Outcome)
	}
	if resp.DaysToOutcome != 0 {
		t.Fatalf("expected 0 days for an immediate outcome, got %d", resp.DaysToOutcome)
	}

	published := bus.published()
	if len(published) != 2 {
		t.Fatalf("expected 2 events (scored + outcome), got %d", len(published))
	}
	outcome, ok := published[1].(events.LeadOutcomeRecorded)
	if !ok {
		t.Fatalf("expected LeadOutcomeRecorded, got %T", published[1])
	}
	if outcome.Outcome != "converted" || outcome.ExternalID != "crm-3001" {
		t.Fatalf("unexpected event payload: %+v", outcome)
	}
}

func TestRecordOutcomeUnknownLead(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeBus{})

	_, err := svc.RecordOutcome(context.Background(), uuid.New(), "missing", "api", "lost")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if appErr.Code != apperr.CodeLeadNotFound {
		t.Fatalf("expected code %s, got %s", apperr.CodeLeadNotFound, appErr.Code)
	}
}
