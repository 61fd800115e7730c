package game_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/footle/internal/assignment"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/database"
	"github.com/mauv0809/footle/internal/game"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
	"github.com/stretchr/testify/require"
)

const (
	target      = "Robert Lewandowski"
	transferWho = "Robert Lewandowski"
)

// wrongGuesses are catalog players that are not the target.
var wrongGuesses = []string{
	"Wojciech Szczęsny",
	"Piotr Zieliński",
	"Kylian Mbappé",
	"Jude Bellingham",
	"Erling Haaland",
	"Harry Kane",
}

type testGame struct {
	players   *game.PlayerGame
	transfers *game.TransferGame
	reporter  *game.Reporter
	ledger    *ledger.SQLStore
	clock     *daily.FixedClock
	metrics   *metrics.Mock
	deps      game.Deps
}

func (tg *testGame) today() daily.Day {
	return daily.Today(tg.clock)
}

func (tg *testGame) entry(t *testing.T, g ledger.Game, user string) ledger.Entry {
	t.Helper()
	e, err := tg.ledger.LoadOrInit(context.Background(), ledger.Key{Game: g, UserID: user, Day: tg.today()})
	require.NoError(t, err)
	return e
}

// setupGame wires both games over an in-memory database. With seed set the
// sample catalog is loaded and every draw picks its first entry.
func setupGame(t *testing.T, seed bool) (*testGame, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(database.MemoryPath, "", "")
	require.NoError(t, err)

	cat := catalog.New(db)
	if seed {
		require.NoError(t, cat.Import(context.Background(), catalog.SampleSnapshot()))
	}

	m := metrics.NewMock()
	store := ledger.NewStore(db)
	resolver := assignment.NewResolver(assignment.NewStore(db), cat, m,
		assignment.WithPicker(func(int) int { return 0 }))
	clock := daily.NewFixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	deps := game.Deps{
		Resolver: resolver,
		Ledger:   store,
		Catalog:  cat,
		Locker:   ledger.NewLocalLocker(),
		Clock:    clock,
		Metrics:  m,
	}
	return &testGame{
		players:   game.NewPlayerGame(deps),
		transfers: game.NewTransferGame(deps),
		reporter:  game.NewReporter(store, resolver),
		ledger:    store,
		clock:     clock,
		metrics:   m,
		deps:      deps,
	}, teardown
}

// flakyLedger fails the next `failures` attempt writes before passing through.
type flakyLedger struct {
	game.Ledger
	failures int
}

func (f *flakyLedger) RecordAttempt(ctx context.Context, key ledger.Key, solved bool) (ledger.Entry, error) {
	if f.failures > 0 {
		f.failures--
		return ledger.Entry{}, errors.New("disk I/O error")
	}
	return f.Ledger.RecordAttempt(ctx, key, solved)
}

// withFlakyLedger rebuilds both games over a ledger whose next write fails.
func (tg *testGame) withFlakyLedger(failures int) (*game.PlayerGame, *game.TransferGame) {
	deps := tg.deps
	deps.Ledger = &flakyLedger{Ledger: tg.ledger, failures: failures}
	return game.NewPlayerGame(deps), game.NewTransferGame(deps)
}
