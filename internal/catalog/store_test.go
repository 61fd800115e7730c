package catalog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory database seeded with the sample catalog.
func setupTestDB(t *testing.T) (*catalog.Store, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(database.MemoryPath, "", "")
	require.NoError(t, err)

	store := catalog.New(db)
	require.NoError(t, store.Import(context.Background(), catalog.SampleSnapshot()))
	return store, dbTeardown
}

func TestPlayerByName(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	t.Run("exact name", func(t *testing.T) {
		p, err := store.PlayerByName(ctx, "Robert Lewandowski")
		require.NoError(t, err)
		assert.Equal(t, "Poland", p.Country.Name)
		assert.Equal(t, "La Liga", p.League.Name)
		assert.Equal(t, "FC Barcelona", p.Club.Name)
		assert.Equal(t, "Forward", p.Position.Name)
		assert.Equal(t, 36, p.Age)
		assert.Equal(t, 9, p.ShirtNumber)
	})

	t.Run("ignores case and extra whitespace", func(t *testing.T) {
		p, err := store.PlayerByName(ctx, "  robert   LEWANDOWSKI ")
		require.NoError(t, err)
		assert.Equal(t, "Robert Lewandowski", p.Name)
	})

	t.Run("folds non-ascii letters", func(t *testing.T) {
		p, err := store.PlayerByName(ctx, "WOJCIECH SZCZĘSNY")
		require.NoError(t, err)
		assert.Equal(t, "Wojciech Szczęsny", p.Name)
	})

	t.Run("prefix is not an exact match", func(t *testing.T) {
		_, err := store.PlayerByName(ctx, "Robert")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestSearchPlayerNames(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	names, err := store.SearchPlayerNames(ctx, "rob", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Robert Gumny", "Robert Lewandowski", "Roberto Firmino"}, names)

	names, err = store.SearchPlayerNames(ctx, "rob", 2)
	require.NoError(t, err)
	assert.Len(t, names, 2)

	names, err = store.SearchPlayerNames(ctx, "%", 10)
	require.NoError(t, err)
	assert.Empty(t, names, "LIKE wildcards in the query are literal")

	names, err = store.SearchPlayerNames(ctx, "zzz", 10)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestRandomPlayerNames(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	names, err := store.RandomPlayerNames(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, names, 10)

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate name %s", n)
		seen[n] = true
	}
}

func TestIDsAndLookups(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	playerIDs, err := store.PlayerIDs(ctx)
	require.NoError(t, err)
	require.Len(t, playerIDs, len(catalog.SampleSnapshot().Players))

	first, err := store.PlayerByID(ctx, playerIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "Robert Lewandowski", first.Name)

	_, err = store.PlayerByID(ctx, 9999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	transferIDs, err := store.TransferIDs(ctx)
	require.NoError(t, err)
	require.Len(t, transferIDs, len(catalog.SampleSnapshot().Transfers))

	transfer, err := store.TransferByID(ctx, transferIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "Robert Lewandowski", transfer.Player.Name)
	assert.Equal(t, "Bayern Munich", transfer.FromClub.Name)
	assert.Equal(t, "FC Barcelona", transfer.ToClub.Name)
	assert.Equal(t, "45000000", transfer.Amount.String())
	assert.Equal(t, "2022-07-19", transfer.Date.Format("2006-01-02"))
}

func TestAddPlayerValidationAndUpdate(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := store.AddPlayer(ctx, catalog.PlayerInput{Name: "  "})
	assert.Error(t, err)

	_, err = store.AddPlayer(ctx, catalog.PlayerInput{Name: "Nobody", Country: "Poland", League: "Ekstraklasa", Club: "Legia", Position: "Forward", Age: -1})
	assert.Error(t, err)

	updated, err := store.AddPlayer(ctx, catalog.PlayerInput{
		Name: "robert lewandowski", Country: "Poland", League: "La Liga", Club: "FC Barcelona", Position: "Forward", Age: 37, ShirtNumber: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, 37, updated.Age)

	ids, err := store.PlayerIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, len(catalog.SampleSnapshot().Players), "upsert by folded name must not add a row")
}

func TestAddTransferRequiresKnownPlayer(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.AddTransfer(context.Background(), catalog.TransferInput{
		PlayerName: "Unknown Player", FromClub: "A", ToClub: "B", Amount: "1000", Date: "2020-01-01",
	})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = store.AddTransfer(context.Background(), catalog.TransferInput{
		PlayerName: "Harry Kane", FromClub: "A", ToClub: "B", Amount: "lots", Date: "2020-01-01",
	})
	assert.Error(t, err)
}

func TestSnapshotExportImport(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	snap, err := store.Export(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, catalog.WriteSnapshot(&buf, snap))
	decoded, err := catalog.ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, decoded)

	db, dbTeardown, err := database.InitDB(database.MemoryPath, "", "")
	require.NoError(t, err)
	defer dbTeardown()

	fresh := catalog.New(db)
	require.NoError(t, fresh.Import(ctx, decoded))

	transferIDs, err := fresh.TransferIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, transferIDs, len(snap.Transfers))

	p, err := fresh.PlayerByName(ctx, "Kylian Mbappé")
	require.NoError(t, err)
	assert.Equal(t, "Real Madrid", p.Club.Name)
}
