package contracts

import (
	"context"
	"time"
)

type LockerService interface {
	// TryLock reports false without error when the key is already held.
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
