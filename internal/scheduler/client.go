// Package scheduler runs the background maintenance tasks over asynq:
// currently the periodic reap of abandoned conversation states.
package scheduler

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"nutribot_backend/platform/config"
)

// Periodic registers the recurring tasks with asynq's scheduler.
type Periodic struct {
	scheduler *asynq.Scheduler
}

// NewPeriodic builds the scheduler with the conversation reap task
// registered at the configured interval.
func NewPeriodic(cfg config.SchedulerConfig, ttl time.Duration) (*Periodic, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(opt, nil)

	task, err := NewConversationReapTask(ConversationReapPayload{TTL: ttl})
	if err != nil {
		return nil, err
	}

	interval := cfg.GetReapInterval()
	if interval <= 0 {
		interval = time.Hour
	}
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := scheduler.Register(spec, task, asynq.Queue(queueName(cfg))); err != nil {
		return nil, fmt.Errorf("register reap task: %w", err)
	}

	return &Periodic{scheduler: scheduler}, nil
}

// Run blocks until the scheduler stops.
func (p *Periodic) Run() error {
	return p.scheduler.Run()
}

// Shutdown stops the scheduler.
func (p *Periodic) Shutdown() {
	p.scheduler.Shutdown()
}

func queueName(cfg config.SchedulerConfig) string {
	if q := cfg.GetAsynqQueueName(); q != "" {
		return q
	}
	return "default"
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	if redisURL == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis url not configured")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}
	return asynq.RedisClientOpt{
		Network:   opt.Network,
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
