package ledger

import (
	"context"

	"github.com/mauv0809/footle/internal/daily"
)

// Store is a dumb persistent counter: it never enforces the attempt cap or
// terminal states, it only guarantees that counts grow and solved never resets.
type Store interface {
	LoadOrInit(ctx context.Context, key Key) (Entry, error)
	RecordAttempt(ctx context.Context, key Key, solved bool) (Entry, error)
	Summarize(ctx context.Context, game Game, day daily.Day, maxAttempts int) (Summary, error)
}

// Locker serialises work on a single Key. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key Key) (func(), error)
}
