package scheduler

import (
	"context"
	"fmt"

	"leadscore_backend/internal/events"
	"leadscore_backend/internal/leads/repository"
	"leadscore_backend/platform/config"
	"leadscore_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultConcurrency = 10

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: defaultConcurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.NewRepository(pool),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskLeadsSweepStale, w.handleSweepStale)

	return w, nil
}

// handleSweepStale closes out leads that never received an outcome within
// the retention window and publishes an outcome event per lead.
func (w *Worker) handleSweepStale(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSweepStalePayload(task)
	if err != nil {
		return err
	}

	stale, err := w.repo.MarkStale(ctx, payload.Cutoff)
	if err != nil {
		return err
	}

	for _, lead := range stale {
		days := 0
		if lead.DaysToOutcome != nil {
			days = *lead.DaysToOutcome
		}
		w.bus.Publish(ctx, events.LeadOutcomeRecorded{
			BaseEvent:     events.NewBaseEvent(),
			LeadID:        lead.ID,
			CustomerID:    lead.CustomerID,
			ExternalID:    lead.ExternalID,
			Outcome:       "stale",
			DaysToOutcome: days,
		})
	}

	w.log.Info("stale sweep completed",
		"cutoff", payload.Cutoff,
		"marked", len(stale),
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
