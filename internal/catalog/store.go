package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

const playerSelect = `
	SELECT p.id, p.name,
		c.id, c.name, l.id, l.name, cl.id, cl.name, pos.id, pos.name,
		p.age, p.shirt_number
	FROM players p
	JOIN countries c ON c.id = p.country_id
	JOIN leagues l ON l.id = p.league_id
	JOIN clubs cl ON cl.id = p.club_id
	JOIN positions pos ON pos.id = p.position_id`

const transferSelect = `
	SELECT t.id, t.player_id, fc.id, fc.name, tc.id, tc.name, t.amount, t.transfer_date
	FROM transfers t
	JOIN clubs fc ON fc.id = t.from_club_id
	JOIN clubs tc ON tc.id = t.to_club_id`

var _ Repository = (*Store)(nil)

// Store is the SQL-backed catalog.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new catalog Store.
func New(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) PlayerByID(ctx context.Context, id int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, playerSelect+` WHERE p.id = ?`, id)
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player %d: %w", id, err)
	}
	return player, nil
}

// PlayerByName is a case-insensitive exact match on the player's name.
func (s *Store) PlayerByName(ctx context.Context, name string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, playerSelect+` WHERE p.name_key = ?`, NameKey(name))
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up player %q: %w", name, err)
	}
	return player, nil
}

// SearchPlayerNames returns up to limit names starting with prefix, ignoring case.
func (s *Store) SearchPlayerNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := escapeLike(NameKey(prefix)) + "%"
	return s.queryNames(ctx, `SELECT name FROM players WHERE name_key LIKE ? ESCAPE '\' ORDER BY name LIMIT ?`, pattern, limit)
}

func (s *Store) RandomPlayerNames(ctx context.Context, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryNames(ctx, `SELECT name FROM players ORDER BY RANDOM() LIMIT ?`, limit)
}

func (s *Store) PlayerIDs(ctx context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryIDs(ctx, `SELECT id FROM players ORDER BY id`)
}

func (s *Store) TransferIDs(ctx context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryIDs(ctx, `SELECT id FROM transfers ORDER BY id`)
}

func (s *Store) TransferByID(ctx context.Context, id int64) (*Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transfer, playerID, err := scanTransfer(s.db.QueryRowContext(ctx, transferSelect+` WHERE t.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transfer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer %d: %w", id, err)
	}

	player, err := scanPlayer(s.db.QueryRowContext(ctx, playerSelect+` WHERE p.id = ?`, playerID))
	if err != nil {
		return nil, fmt.Errorf("failed to load player %d of transfer %d: %w", playerID, id, err)
	}
	transfer.Player = *player
	return transfer, nil
}

// AddPlayer creates or updates a player keyed by its folded name. Reference
// entities are created on first use.
func (s *Store) AddPlayer(ctx context.Context, in PlayerInput) (*Player, error) {
	if err := validatePlayer(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	id, err := upsertPlayer(ctx, tx, in)
	if err != nil {
		tx.Rollback()
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to add player %q: %w", in.Name, err)
	}
	err = tx.Commit()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.PlayerByID(ctx, id)
}

// AddTransfer records a transfer of an existing player.
func (s *Store) AddTransfer(ctx context.Context, in TransferInput) (*Transfer, error) {
	amount, date, err := parseTransfer(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	id, err := upsertTransfer(ctx, tx, in, amount, date)
	if err != nil {
		tx.Rollback()
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to add transfer of %q: %w", in.PlayerName, err)
	}
	err = tx.Commit()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.TransferByID(ctx, id)
}

// Export reads the whole catalog into a Snapshot.
func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{Version: 1}

	rows, err := s.db.QueryContext(ctx, playerSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		names[p.ID] = p.Name
		snap.Players = append(snap.Players, PlayerInput{
			Name:        p.Name,
			Country:     p.Country.Name,
			League:      p.League.Name,
			Club:        p.Club.Name,
			Position:    p.Position.Name,
			Age:         p.Age,
			ShirtNumber: p.ShirtNumber,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, transferSelect+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, playerID, err := scanTransfer(rows)
		if err != nil {
			log.Error("Failed to scan transfer row", "error", err)
			continue
		}
		snap.Transfers = append(snap.Transfers, TransferInput{
			PlayerName: names[playerID],
			FromClub:   t.FromClub.Name,
			ToClub:     t.ToClub.Name,
			Amount:     t.Amount.String(),
			Date:       t.Date.Format(dateLayout),
		})
	}
	return snap, rows.Err()
}

// Import loads a Snapshot in a single transaction. Existing players are updated.
func (s *Store) Import(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return errors.New("snapshot is nil")
	}
	for i, in := range snap.Players {
		if err := validatePlayer(in); err != nil {
			return fmt.Errorf("player %d: %w", i, err)
		}
	}
	amounts := make([]decimal.Decimal, len(snap.Transfers))
	dates := make([]time.Time, len(snap.Transfers))
	for i, in := range snap.Transfers {
		amount, date, err := parseTransfer(in)
		if err != nil {
			return fmt.Errorf("transfer %d: %w", i, err)
		}
		amounts[i], dates[i] = amount, date
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, in := range snap.Players {
		if _, err := upsertPlayer(ctx, tx, in); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to import player %q: %w", in.Name, err)
		}
	}
	for i, in := range snap.Transfers {
		if _, err := upsertTransfer(ctx, tx, in, amounts[i], dates[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to import transfer of %q: %w", in.PlayerName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Catalog imported", "players", len(snap.Players), "transfers", len(snap.Transfers))
	return nil
}

func (s *Store) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query player names: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Error("Failed to scan player name", "error", err)
			continue
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) queryIDs(ctx context.Context, query string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func upsertPlayer(ctx context.Context, tx *sql.Tx, in PlayerInput) (int64, error) {
	countryID, err := upsertRef(ctx, tx, "countries", in.Country)
	if err != nil {
		return 0, err
	}
	leagueID, err := upsertRef(ctx, tx, "leagues", in.League)
	if err != nil {
		return 0, err
	}
	clubID, err := upsertRef(ctx, tx, "clubs", in.Club)
	if err != nil {
		return 0, err
	}
	positionID, err := upsertRef(ctx, tx, "positions", in.Position)
	if err != nil {
		return 0, err
	}

	key := NameKey(in.Name)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO players (name, name_key, country_id, league_id, club_id, position_id, age, shirt_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name_key) DO UPDATE SET
			name = excluded.name,
			country_id = excluded.country_id,
			league_id = excluded.league_id,
			club_id = excluded.club_id,
			position_id = excluded.position_id,
			age = excluded.age,
			shirt_number = excluded.shirt_number`,
		strings.TrimSpace(in.Name), key, countryID, leagueID, clubID, positionID, in.Age, in.ShirtNumber)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM players WHERE name_key = ?`, key).Scan(&id)
	return id, err
}

func upsertTransfer(ctx context.Context, tx *sql.Tx, in TransferInput, amount decimal.Decimal, date time.Time) (int64, error) {
	var playerID int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM players WHERE name_key = ?`, NameKey(in.PlayerName)).Scan(&playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("player %q: %w", in.PlayerName, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	fromID, err := upsertRef(ctx, tx, "clubs", in.FromClub)
	if err != nil {
		return 0, err
	}
	toID, err := upsertRef(ctx, tx, "clubs", in.ToClub)
	if err != nil {
		return 0, err
	}

	day := date.Format(dateLayout)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO transfers (player_id, from_club_id, to_club_id, amount, transfer_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id, from_club_id, to_club_id, transfer_date) DO UPDATE SET amount = excluded.amount`,
		playerID, fromID, toID, amount.String(), day)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM transfers
		WHERE player_id = ? AND from_club_id = ? AND to_club_id = ? AND transfer_date = ?`,
		playerID, fromID, toID, day).Scan(&id)
	return id, err
}

// upsertRef returns the id of the named row in table, creating it if needed.
// table is always one of the fixed reference tables.
func upsertRef(ctx context.Context, tx *sql.Tx, table, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if _, err := tx.ExecContext(ctx, `INSERT INTO `+table+` (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return 0, fmt.Errorf("failed to upsert %s %q: %w", table, name, err)
	}
	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read %s %q: %w", table, name, err)
	}
	return id, nil
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	err := scanner.Scan(
		&p.ID, &p.Name,
		&p.Country.ID, &p.Country.Name,
		&p.League.ID, &p.League.Name,
		&p.Club.ID, &p.Club.Name,
		&p.Position.ID, &p.Position.Name,
		&p.Age, &p.ShirtNumber,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanTransfer(scanner interface{ Scan(...any) error }) (*Transfer, int64, error) {
	var (
		t        Transfer
		playerID int64
		amount   string
		day      string
	)
	err := scanner.Scan(&t.ID, &playerID, &t.FromClub.ID, &t.FromClub.Name, &t.ToClub.ID, &t.ToClub.Name, &amount, &day)
	if err != nil {
		return nil, 0, err
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, 0, fmt.Errorf("transfer %d has invalid amount %q: %w", t.ID, amount, err)
	}
	if t.Date, err = time.Parse(dateLayout, day); err != nil {
		return nil, 0, fmt.Errorf("transfer %d has invalid date %q: %w", t.ID, day, err)
	}
	return &t, playerID, nil
}

func validatePlayer(in PlayerInput) error {
	switch {
	case NameKey(in.Name) == "":
		return errors.New("player name is required")
	case strings.TrimSpace(in.Country) == "", strings.TrimSpace(in.League) == "",
		strings.TrimSpace(in.Club) == "", strings.TrimSpace(in.Position) == "":
		return fmt.Errorf("player %q: country, league, club and position are required", in.Name)
	case in.Age < 0 || in.ShirtNumber < 0:
		return fmt.Errorf("player %q: age and shirt number must not be negative", in.Name)
	}
	return nil
}

func parseTransfer(in TransferInput) (decimal.Decimal, time.Time, error) {
	if NameKey(in.PlayerName) == "" || strings.TrimSpace(in.FromClub) == "" || strings.TrimSpace(in.ToClub) == "" {
		return decimal.Decimal{}, time.Time{}, errors.New("transfer needs a player and both clubs")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("invalid transfer amount %q: %w", in.Amount, err)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("transfer amount %s is negative", amount)
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("invalid transfer date %q: %w", in.Date, err)
	}
	return amount, date, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
