package locker

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/exceptions"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type heldLock struct {
	value     string
	expiresAt time.Time
}

type memoryLockService struct {
	mu    sync.Mutex
	locks map[string]heldLock
	now   func() time.Time
	Log   *zap.Logger
}

// NewMemoryLockService returns a process local LockerService, used when
// Redis is disabled.
func NewMemoryLockService(logger *zap.Logger) contracts.LockerService {
	return &memoryLockService{
		locks: make(map[string]heldLock),
		now:   time.Now,
		Log:   logger,
	}
}

func (s *memoryLockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if held, ok := s.locks[key]; ok && (held.expiresAt.IsZero() || now.Before(held.expiresAt)) {
		s.Log.Info("memoryLockService.TryLock not acquired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	lock := heldLock{value: uuid.NewString()}
	if expiration > 0 {
		lock.expiresAt = now.Add(expiration)
	}
	s.locks[key] = lock
	return true, lock.value, nil
}

func (s *memoryLockService) Unlock(ctx context.Context, key, lockValue string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.locks[key]
	if !ok {
		return nil
	}
	if held.value != lockValue {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock not owned by this client"))
		s.Log.Error("memoryLockService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	delete(s.locks, key)
	return nil
}
