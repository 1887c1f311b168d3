package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"membercare_backend/internal/adapters"
	"membercare_backend/internal/auth"
	"membercare_backend/internal/churches"
	churchrepo "membercare_backend/internal/churches/repository"
	"membercare_backend/internal/donations"
	"membercare_backend/internal/email"
	"membercare_backend/internal/events"
	"membercare_backend/internal/fellowships"
	apphttp "membercare_backend/internal/http"
	"membercare_backend/internal/http/router"
	"membercare_backend/internal/members"
	"membercare_backend/internal/notification"
	"membercare_backend/internal/savedsearch"
	"membercare_backend/internal/scheduler"
	"membercare_backend/internal/storage"
	"membercare_backend/migrations"
	"membercare_backend/platform/config"
	"membercare_backend/platform/db"
	"membercare_backend/platform/logger"
	"membercare_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	sender := email.NewSender(cfg)

	// Photo storage (MinIO); members run without photos when disabled
	var photoStore storage.PhotoStore
	if cfg.IsMinIOEnabled() {
		var store *storage.MinIOStore
		if err := withRetry(ctx, log, "photo storage", 5, 2*time.Second, func() error {
			s, err := storage.NewMinIOStore(ctx, cfg)
			if err != nil {
				return err
			}
			store = s
			return nil
		}); err != nil {
			log.Error("failed to initialize photo storage", "error", err)
			panic("failed to initialize photo storage: " + err.Error())
		}
		photoStore = store
		log.Info("photo storage initialized", "bucket", cfg.GetMinioBucketProfilePhotos())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; profile photos disabled")
	}

	// Saved-search refresh scheduling (optional, requires redis)
	refreshScheduler, closeScheduler := initRefreshScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(sender, adapters.NewChurchNameReader(churchrepo.New(pool)), log)
	notificationModule.RegisterHandlers(eventBus)

	if refreshScheduler != nil {
		refreshSubscriber := scheduler.NewRefreshSubscriber(refreshScheduler, log)
		refreshSubscriber.RegisterHandlers(eventBus)
	}

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)
	churchesModule := churches.NewModule(pool, val)
	membersModule := members.NewModule(pool, photoStore, eventBus, val, cfg, log)
	searchExecutor := adapters.NewMemberSearchExecutor(membersModule.Service())
	savedSearchModule := savedsearch.NewModule(pool, searchExecutor, val, log)
	fellowshipsModule := fellowships.NewModule(pool, val, log)
	donationsModule := donations.NewModule(pool, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			churchesModule,
			membersModule,
			savedSearchModule,
			fellowshipsModule,
			donationsModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRefreshScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.RefreshScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; saved-search refresh disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize saved-search refresh client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
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
