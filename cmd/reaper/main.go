package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"nutribot_backend/internal/conversation"
	"nutribot_backend/internal/scheduler"
	"nutribot_backend/platform/config"
	"nutribot_backend/platform/logger"
)

// The reaper runs the periodic task scheduler and its worker as a
// standalone process, expiring stale conversation state from Redis.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting conversation reaper", "env", cfg.Env)

	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		log.Error("REDIS_URL is required for the reaper")
		panic("REDIS_URL is required for the reaper")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error("invalid redis url", "error", err)
		panic("invalid redis url: " + err.Error())
	}
	store := conversation.NewRedisStore(redis.NewClient(opt), cfg.GetConversationTTL())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := scheduler.NewWorker(cfg, store, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	periodic, err := scheduler.NewPeriodic(cfg, cfg.GetConversationTTL())
	if err != nil {
		log.Error("failed to initialize periodic scheduler", "error", err)
		panic("failed to initialize periodic scheduler: " + err.Error())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})
	g.Go(func() error {
		go func() {
			<-gctx.Done()
			periodic.Shutdown()
		}()
		return periodic.Run()
	})

	if err := g.Wait(); err != nil {
		log.Error("reaper error", "error", err)
		panic("reaper error: " + err.Error())
	}
	log.Info("shutdown complete")
}
