package user_usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"atmsecurity.io/infrastructure/database/repository/cache"
	"github.com/stretchr/testify/assert"
)

type stubLock struct {
	locked   bool
	err      error
	released bool
}

func (l *stubLock) AcquireLock(ctx context.Context, key string, owner string, ttl time.Duration) (bool, error) {
	return l.locked, l.err
}

func (l *stubLock) DeleteOne(ctx context.Context, key string) bool {
	l.released = true
	return true
}

func TestBackfillDescriptorsLockErrors(t *testing.T) {
	tests := []struct {
		name           string
		lock           *stubLock
		wantErr        error
		wantInProgress bool
	}{
		{name: "another run holds the lock", lock: &stubLock{}, wantErr: ErrBackfillInProgress, wantInProgress: true},
		{name: "redis unreachable", lock: &stubLock{err: cache.ErrCacheUnavailable}, wantErr: cache.ErrCacheUnavailable},
		{name: "redis command fails", lock: &stubLock{err: errors.New("READONLY replica")}},
	}

	previous := backfillLock
	t.Cleanup(func() { backfillLock = previous })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backfillLock = tt.lock

			enqueued, err := BackfillDescriptorsUseCase(context.Background())
			assert.Zero(t, enqueued)
			assert.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantInProgress, errors.Is(err, ErrBackfillInProgress))
			assert.False(t, tt.lock.released, "a lock that was not acquired must not be released")
		})
	}
}
