package user_usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"atmsecurity.io/application/constants"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/repository"
	"atmsecurity.io/infrastructure/database/repository/cache"
	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
	messagequeue "atmsecurity.io/infrastructure/message_queue"
	queue_tasks "atmsecurity.io/infrastructure/message_queue/tasks"
	mq_types "atmsecurity.io/infrastructure/message_queue/types"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrBackfillInProgress = errors.New("a descriptor backfill is already running")

const backfillLockTTL = 10 * time.Minute

type backfillLocker interface {
	AcquireLock(ctx context.Context, key string, owner string, ttl time.Duration) (bool, error)
	DeleteOne(ctx context.Context, key string) bool
}

var backfillLock backfillLocker = cache.Cache

// BackfillDescriptorsUseCase queues a descriptor refresh for every user with
// a stored reference image. Run it after switching face models so existing
// descriptors are recomputed by the new backend.
func BackfillDescriptorsUseCase(ctx context.Context) (int, error) {
	runID := uuid.NewString()
	locked, err := backfillLock.AcquireLock(ctx, constants.BACKFILL_LOCK_KEY, runID, backfillLockTTL)
	if err != nil {
		return 0, fmt.Errorf("acquiring backfill lock: %w", err)
	}
	if !locked {
		return 0, ErrBackfillInProgress
	}
	defer backfillLock.DeleteOne(context.Background(), constants.BACKFILL_LOCK_KEY)

	batchSize := int64(env.Settings.BackfillBatchSize)
	if batchSize <= 0 {
		batchSize = 100
	}
	userRepo := repository.UserRepo()
	lastID := ""
	enqueued := 0
	for {
		filter := bson.M{"registeredFace": bson.M{"$nin": bson.A{nil, ""}}}
		if lastID != "" {
			filter["_id"] = bson.M{"$gt": lastID}
		}
		users, err := userRepo.FindMany(ctx, filter, options.Find().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetLimit(batchSize).
			SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return enqueued, err
		}
		for _, user := range *users {
			payload, _ := json.Marshal(queue_tasks.DescriptorRefreshPayload{UserID: user.ID, RunID: runID})
			if err := messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
				Name:     queue_tasks.HandleDescriptorRefreshTaskName,
				Payload:  payload,
				Priority: mq_types.Low,
				TimeOut:  120,
				MaxRetry: 3,
			}); err != nil {
				return enqueued, err
			}
			enqueued++
			lastID = user.ID
		}
		if int64(len(*users)) < batchSize {
			break
		}
	}

	status, _ := json.Marshal(dto.BackfillStatus{
		RunID:    runID,
		Enqueued: enqueued,
		QueuedAt: time.Now().UTC(),
	})
	cache.Cache.CreateEntry(ctx, constants.BACKFILL_STATUS_KEY, status, constants.BACKFILL_STATUS_TTL)

	logger.Info("descriptor backfill queued", logger.LoggerOptions{
		Key:  "enqueued",
		Data: enqueued,
	}, logger.LoggerOptions{
		Key:  "runID",
		Data: runID,
	})
	return enqueued, nil
}

// BackfillStatusUseCase reports the progress of the most recent backfill run.
// It returns nil when no run has been queued within the status retention window.
func BackfillStatusUseCase(ctx context.Context) *dto.BackfillStatus {
	raw := cache.Cache.FindOne(ctx, constants.BACKFILL_STATUS_KEY)
	if raw == nil {
		return nil
	}
	var status dto.BackfillStatus
	if err := json.Unmarshal([]byte(*raw), &status); err != nil {
		logger.Error("stored backfill status is malformed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	status.Refreshed = backfillCounter(ctx, status.RunID, queue_tasks.RefreshResultRefreshed)
	status.Skipped = backfillCounter(ctx, status.RunID, queue_tasks.RefreshResultSkipped)
	status.Failed = backfillCounter(ctx, status.RunID, queue_tasks.RefreshResultFailed)
	status.Running = cache.Cache.FindOne(ctx, constants.BACKFILL_LOCK_KEY) != nil ||
		status.Refreshed+status.Skipped+status.Failed < status.Enqueued
	return &status
}

func backfillCounter(ctx context.Context, runID string, result string) int {
	raw := cache.Cache.FindOne(ctx, constants.BackfillCounterKey(runID, result))
	if raw == nil {
		return 0
	}
	count, err := strconv.Atoi(*raw)
	if err != nil {
		return 0
	}
	return count
}
