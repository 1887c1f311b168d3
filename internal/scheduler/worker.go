package scheduler

import (
	"context"
	"fmt"

	"membercare_backend/platform/config"
	"membercare_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// SavedSearchRefresher re-executes dynamic saved searches and records
// fresh result counts.
type SavedSearchRefresher interface {
	RefreshDynamic(ctx context.Context) (int, error)
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	refresher SavedSearchRefresher
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, refresher SavedSearchRefresher, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		refresher: refresher,
		log:       log,
	}

	mux.HandleFunc(TaskSavedSearchRefresh, w.handleSavedSearchRefresh)

	return w, nil
}

func (w *Worker) handleSavedSearchRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSavedSearchRefreshPayload(task)
	if err != nil {
		return err
	}

	refreshed, err := w.refresher.RefreshDynamic(ctx)
	if err != nil {
		return err
	}

	w.log.Info("saved search refresh completed",
		"reason", payload.Reason,
		"refreshed", refreshed,
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
