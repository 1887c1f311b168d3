package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"membercare_backend/internal/adapters"
	"membercare_backend/internal/events"
	memberrepo "membercare_backend/internal/members/repository"
	memberservice "membercare_backend/internal/members/service"
	savedsearchrepo "membercare_backend/internal/savedsearch/repository"
	savedsearchservice "membercare_backend/internal/savedsearch/service"
	"membercare_backend/internal/scheduler"
	"membercare_backend/platform/config"
	"membercare_backend/platform/db"
	"membercare_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// The worker executes searches but never mutates members, so it runs
	// without photo storage and with a bus nobody subscribes to.
	eventBus := events.NewInMemoryBus(log)
	memberSvc := memberservice.New(memberrepo.New(pool), nil, eventBus, cfg, log)
	executor := adapters.NewMemberSearchExecutor(memberSvc)
	savedSearchSvc := savedsearchservice.New(savedsearchrepo.New(pool), executor, log)

	worker, err := scheduler.NewWorker(cfg, savedSearchSvc, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	log.Info("scheduler worker listening", "queue", cfg.GetAsynqQueueName())
	worker.Run(ctx)
	log.Info("scheduler worker stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
