package asynq

import (
	"context"
	"fmt"
	"time"

	"atmsecurity.io/infrastructure/logger"
	queue_tasks "atmsecurity.io/infrastructure/message_queue/tasks"
	mq_types "atmsecurity.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

type AsynqBroker struct {
	Client      *asynq.Client
	redisOpt    asynq.RedisClientOpt
	concurrency int
}

func NewAsynqBroker(addr string, password string, concurrency int) *AsynqBroker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &AsynqBroker{
		Client:      asynq.NewClient(redisOpt),
		redisOpt:    redisOpt,
		concurrency: concurrency,
	}
}

func (aq *AsynqBroker) Start(ctx context.Context) error {
	srv := asynq.NewServer(
		aq.redisOpt,
		asynq.Config{
			// descriptor refreshes are cpu bound so this stays close to the core count
			Concurrency: aq.concurrency,
			Queues: map[string]int{
				string(mq_types.High):   7,
				string(mq_types.Medium): 2,
				string(mq_types.Low):    1,
			},
			Logger: zapLogger{},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(string(queue_tasks.HandleDescriptorRefreshTaskName), queue_tasks.HandleDescriptorRefreshTask)

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("could not start task queue: %w", err)
	}
	logger.Info("task queue started", logger.LoggerOptions{
		Key:  "concurrency",
		Data: aq.concurrency,
	})
	<-ctx.Done()
	srv.Shutdown()
	if err := aq.Client.Close(); err != nil {
		logger.Warning("error closing task queue client", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	return nil
}

func (aq *AsynqBroker) Enqueue(task mq_types.QueueTask) error {
	if task.TimeOut == 0 {
		task.TimeOut = 60
	}
	if task.MaxRetry == 0 {
		task.MaxRetry = 10
	}
	if task.Priority == "" {
		task.Priority = mq_types.Medium
	}
	info, err := aq.Client.Enqueue(asynq.NewTask(string(task.Name), task.Payload),
		asynq.ProcessIn(task.ProcessIn*time.Second),
		asynq.MaxRetry(task.MaxRetry),
		asynq.Timeout(time.Second*task.TimeOut),
		asynq.Queue(string(task.Priority)))
	if err != nil {
		logger.Error("could not enqueue task", logger.LoggerOptions{
			Key:  "task",
			Data: task.Name,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	logger.Debug("task enqueued", logger.LoggerOptions{
		Key:  "id",
		Data: info.ID,
	}, logger.LoggerOptions{
		Key:  "task",
		Data: task.Name,
	})
	return nil
}

// zapLogger sends asynq's internal logs through the service logger.
type zapLogger struct{}

func (zapLogger) Debug(args ...interface{}) { logger.Debug(fmt.Sprint(args...)) }
func (zapLogger) Info(args ...interface{})  { logger.Info(fmt.Sprint(args...)) }
func (zapLogger) Warn(args ...interface{})  { logger.Warning(fmt.Sprint(args...)) }
func (zapLogger) Error(args ...interface{}) { logger.Error(fmt.Sprint(args...)) }
func (zapLogger) Fatal(args ...interface{}) { logger.Error(fmt.Sprint(args...)) }
