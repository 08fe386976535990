package asynqserver

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/roadassist/backend/internal/cache"
	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/queue/processor"
	"github.com/roadassist/backend/internal/queue/task"
	"github.com/roadassist/backend/internal/service"
)

func New(cfg config.Cache, services *service.Services) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(services)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 2,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

// NewScheduler registers the periodic verification-code sweep.
func NewScheduler(cfg config.Cache, interval time.Duration) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(RedisOptions(cfg), nil)

	if _, err := scheduler.Register(
		fmt.Sprintf("@every %s", interval),
		task.NewCleanupCodesTask(),
	); err != nil {
		return nil, fmt.Errorf("register cleanup task failed: %w", err)
	}

	return scheduler, nil
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{
			Addrs:    cfg.RedisCluster.Addresses,
			Password: cfg.RedisCluster.Password,
		}
	} else {
		opts = asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		}
	}
	return opts
}

func getQueues(services *service.Services) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.CleanupCodesTaskName, processor.NewCleanupCodesProcessor(services))
	queues := map[string]int{
		task.CleanupCodesQueueName: 1,
	}
	return mux, queues
}
