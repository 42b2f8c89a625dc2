package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by DistributedLocker.Lock. It is safe to call
// with a context other than the one used to lock, e.g. after a seed run was cancelled.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes seed runs that share a backend.
// Replicas seeding the same file on start wait for each other instead of
// interleaving batches of the same chord roots.
type DistributedLocker interface {
	// Lock takes the lock named key ("seed:<file>"), waiting while another holder
	// has it. The lock expires after ttl even if the holder never unlocks.
	// A done ctx aborts the wait with its error.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
