package queue_tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"atmsecurity.io/application/constants"
	"atmsecurity.io/application/services/recognition"
	"atmsecurity.io/infrastructure/biometric"
	"atmsecurity.io/infrastructure/database/repository/cache"
	"atmsecurity.io/infrastructure/logger"
	mq_types "atmsecurity.io/infrastructure/message_queue/types"
	"atmsecurity.io/infrastructure/metrics"
	"github.com/hibiken/asynq"
)

var HandleDescriptorRefreshTaskName mq_types.Queues = "refresh_face_descriptor"

const (
	RefreshResultRefreshed = "refreshed"
	RefreshResultSkipped   = "skipped"
	RefreshResultFailed    = "failed"
)

type DescriptorRefreshPayload struct {
	UserID string
	// RunID is set when the task was queued by a backfill run.
	RunID string
}

type refreshCounterStore interface {
	IncrementField(ctx context.Context, key string, amount int64, ttl time.Duration) int64
}

var refreshCounters refreshCounterStore = cache.Cache

// isFinalAttempt reports whether asynq will not retry the task after a
// failure of the current attempt. Outside a worker it is always final.
var isFinalAttempt = func(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return true
	}
	return retried >= maxRetry
}

// recordRefresh counts the outcome of a task once. Callers only record a
// failure on the last attempt so a retried task is not counted twice.
func recordRefresh(ctx context.Context, payload DescriptorRefreshPayload, result string) {
	metrics.DescriptorRefreshes.WithLabelValues(result).Inc()
	if payload.RunID != "" {
		refreshCounters.IncrementField(ctx, constants.BackfillCounterKey(payload.RunID, result), 1, constants.BACKFILL_STATUS_TTL)
	}
}

// HandleDescriptorRefreshTask recomputes one user's descriptor from the stored
// reference image. Failures caused by the image itself will fail the same way
// on every attempt so they are not retried.
func HandleDescriptorRefreshTask(ctx context.Context, t *asynq.Task) error {
	var payload DescriptorRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("an error occured while unmarshalling descriptor refresh payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	err := recognition.RecognitionService.RefreshDescriptor(ctx, payload.UserID)
	switch {
	case err == nil:
		recordRefresh(ctx, payload, RefreshResultRefreshed)
		return nil
	case biometric.IsClientError(err), errors.Is(err, recognition.ErrUserNotFound), errors.Is(err, recognition.ErrNoReferenceImage),
		errors.Is(err, recognition.ErrReferenceImageChanged):
		recordRefresh(ctx, payload, RefreshResultSkipped)
		logger.Warning("descriptor refresh skipped", logger.LoggerOptions{
			Key:  "userID",
			Data: payload.UserID,
		}, logger.LoggerOptions{
			Key:  "reason",
			Data: err.Error(),
		})
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	default:
		if isFinalAttempt(ctx) {
			recordRefresh(ctx, payload, RefreshResultFailed)
		}
		logger.Error("descriptor refresh failed", logger.LoggerOptions{
			Key:  "userID",
			Data: payload.UserID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
}
