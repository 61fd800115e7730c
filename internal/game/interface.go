package game

import (
	"context"

	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/ledger"
)

// Resolver hands out daily targets.
type Resolver interface {
	ResolvePlayer(ctx context.Context, userID string, day daily.Day) (*catalog.Player, error)
	ResolveTransfer(ctx context.Context, day daily.Day) (*catalog.Transfer, error)
	TransferForDay(ctx context.Context, day daily.Day) (*catalog.Transfer, error)
}

// Ledger is the per-user attempt counter.
type Ledger interface {
	LoadOrInit(ctx context.Context, key ledger.Key) (ledger.Entry, error)
	// RecordAttempt spends one attempt and, with solved set, marks the day
	// solved in the same write.
	RecordAttempt(ctx context.Context, key ledger.Key, solved bool) (ledger.Entry, error)
}

// Catalog is the name lookup surface used for guesses and suggestions.
type Catalog interface {
	PlayerByName(ctx context.Context, name string) (*catalog.Player, error)
	SearchPlayerNames(ctx context.Context, prefix string, limit int) ([]string, error)
	RandomPlayerNames(ctx context.Context, limit int) ([]string, error)
}

// SummaryLedger aggregates ledger rows for reporting.
type SummaryLedger interface {
	Summarize(ctx context.Context, game ledger.Game, day daily.Day, maxAttempts int) (ledger.Summary, error)
}
