package messagequeue

import (
	"context"

	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/message_queue/asynq"
	mq_types "atmsecurity.io/infrastructure/message_queue/types"
)

var TaskQueue mq_types.TaskQueueBroker

func SetUpQueue(cfg *env.Config) {
	TaskQueue = asynq.NewAsynqBroker(cfg.RedisAddr, cfg.RedisPassword, cfg.QueueConcurrency)
}

// StartQueue runs the task workers until ctx is cancelled.
func StartQueue(ctx context.Context) error {
	return TaskQueue.Start(ctx)
}
