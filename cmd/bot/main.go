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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"nutribot_backend/internal/ai"
	"nutribot_backend/internal/conversation"
	"nutribot_backend/internal/dispatch"
	apphttp "nutribot_backend/internal/http"
	"nutribot_backend/internal/identity"
	"nutribot_backend/internal/records"
	"nutribot_backend/internal/scheduler"
	"nutribot_backend/internal/stats"
	"nutribot_backend/internal/wizard"
	"nutribot_backend/platform/config"
	"nutribot_backend/platform/db"
	"nutribot_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting bot backend", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
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

	store, redisReady := newStateStore(cfg, log)

	aiClient, err := ai.NewClient(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize ai client", "error", err)
		panic("failed to initialize ai client: " + err.Error())
	}
	if aiClient == nil {
		log.Warn("GEMINI_API_KEY not configured; collaborator adapters degraded")
	}

	repo := records.NewRepo(pool)
	committer := records.NewCommitter(pool, log)
	resolver := identity.NewResolver(repo, cfg.GetDefaultLanguage())
	registry := wizard.NewRegistry()
	statsService := stats.New(repo)

	dispatcher := dispatch.New(
		resolver,
		store,
		registry,
		committer,
		repo,
		statsService,
		ai.NewNutrition(aiClient),
		ai.NewDietitian(aiClient),
		ai.NewDocumentParser(aiClient),
		log,
	)

	handler := apphttp.NewHandler(dispatcher, db.NewPoolAdapter(pool), log)
	engine := apphttp.NewRouter(cfg, handler, log)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if redisReady {
		worker, err := scheduler.NewWorker(cfg, store, log)
		if err != nil {
			log.Error("failed to initialize scheduler worker", "error", err)
			panic("failed to initialize scheduler worker: " + err.Error())
		}
		g.Go(func() error {
			worker.Run(gctx)
			return nil
		})

		periodic, err := scheduler.NewPeriodic(cfg, cfg.GetConversationTTL())
		if err != nil {
			log.Error("failed to initialize periodic scheduler", "error", err)
			panic("failed to initialize periodic scheduler: " + err.Error())
		}
		g.Go(func() error {
			go func() {
				<-gctx.Done()
				periodic.Shutdown()
			}()
			return periodic.Run()
		})
	} else {
		log.Warn("REDIS_URL not configured; using in-memory state, reaper disabled")
	}

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("shutdown complete")
}

// newStateStore picks the Redis-backed conversation store when Redis is
// configured, the in-memory store otherwise.
func newStateStore(cfg *config.Config, log *logger.Logger) (conversation.Store, bool) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return conversation.NewMemoryStore(), false
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error("invalid redis url", "error", err)
		panic("invalid redis url: " + err.Error())
	}
	client := redis.NewClient(opt)
	return conversation.NewRedisStore(client, cfg.GetConversationTTL()), true
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
	return fmt.Errorf("%s: %w", name, lastErr)
}
