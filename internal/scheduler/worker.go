package scheduler

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"nutribot_backend/internal/conversation"
	"nutribot_backend/platform/config"
	"nutribot_backend/platform/logger"
)

// Worker consumes the maintenance queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	store  conversation.Store
	log    *logger.Logger
	now    func() time.Time
}

// NewWorker builds the asynq server with the reap handler mounted.
func NewWorker(cfg config.SchedulerConfig, store conversation.Store, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		store:  store,
		log:    log,
		now:    time.Now,
	}
	w.mux.HandleFunc(TaskConversationReap, w.handleConversationReap)
	return w, nil
}

// Run serves the queue until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleConversationReap(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseConversationReapPayload(task)
	if err != nil {
		return err
	}
	ttl := payload.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	cutoff := w.now().Add(-ttl)
	reaped, err := w.store.ReapOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if reaped > 0 {
		w.log.Info("reaped stale conversation states", "count", reaped, "cutoff", cutoff)
	}
	return nil
}
