package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"atlas/internal/tasks/rate"
	"atlas/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TaskClient handles task enqueuing with context support and a per-actor
// rate limit on seed imports.
type TaskClient struct {
	client      *asynq.Client
	logger      *logger.Logger
	redisClient *redis.Client
	seedLimiter *rate.QueueRateLimiter
}

func (c *TaskClient) GetClient() *asynq.Client {
	return c.client
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	})

	return &TaskClient{
		client:      asynq.NewClient(redisOpt),
		redisClient: redisClient,
		seedLimiter: rate.NewQueueRateLimiter(redisClient, rate.SeedImportLimit()),
		logger:      logger.New("TASKS"),
	}
}

// EnqueueSeedImport queues a stored seed-data bundle for background import.
// actorID keys the rate-limit window so one editor cannot starve the queue.
func (c *TaskClient) EnqueueSeedImport(ctx context.Context, importID, actorID string) error {
	allowed, err := c.seedLimiter.Allow(ctx, actorID)
	if err != nil {
		return fmt.Errorf("seed import rate check: %w", err)
	}
	if !allowed {
		return fmt.Errorf("seed import rate limit exceeded")
	}

	payload, err := json.Marshal(SeedImportPayload{ImportID: importID})
	if err != nil {
		return fmt.Errorf("marshal seed import payload: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx,
		asynq.NewTask(TaskTypeSeedImport, payload),
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutLong),
	)
	if err != nil {
		return fmt.Errorf("enqueue seed import: %w", err)
	}

	c.logger.Info("enqueued %s id=%s queue=%s", TaskTypeSeedImport, info.ID, info.Queue)
	return nil
}

// EnqueueContentPurge queues an immediate purge of stale soft-deleted rows.
// The nightly purge goes through the scheduler; this is the manual trigger.
func (c *TaskClient) EnqueueContentPurge(ctx context.Context) error {
	info, err := c.client.EnqueueContext(ctx,
		asynq.NewTask(TaskTypeContentPurge, nil),
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryMin),
		asynq.Timeout(TimeoutMedium),
	)
	if err != nil {
		return fmt.Errorf("enqueue content purge: %w", err)
	}

	c.logger.Info("enqueued %s id=%s queue=%s", TaskTypeContentPurge, info.ID, info.Queue)
	return nil
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}
