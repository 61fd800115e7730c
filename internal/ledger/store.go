package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/mauv0809/footle/internal/daily"
)

var _ Store = (*SQLStore)(nil)

// SQLStore keeps ledger rows in the per-game ledger tables.
type SQLStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates a new SQL-backed ledger.
func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:  db,
		now: time.Now,
	}
}

// LoadOrInit returns the row for key, creating it with zero attempts if absent.
func (s *SQLStore) LoadOrInit(ctx context.Context, key Key) (Entry, error) {
	return s.apply(ctx, key, `
		INSERT INTO %[1]s (user_id, day, updated_at, attempt_count, solved)
		VALUES (?, ?, ?, 0, 0)
		ON CONFLICT(user_id, day) DO NOTHING`)
}

// RecordAttempt increments the attempt count by exactly one and, when solved
// is true, sets the solved flag in the same statement. Solved never resets.
func (s *SQLStore) RecordAttempt(ctx context.Context, key Key, solved bool) (Entry, error) {
	flag := 0
	if solved {
		flag = 1
	}
	return s.apply(ctx, key, `
		INSERT INTO %[1]s (user_id, day, updated_at, attempt_count, solved)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			attempt_count = %[1]s.attempt_count + 1,
			solved = MAX(%[1]s.solved, excluded.solved),
			updated_at = excluded.updated_at`, flag)
}

// Summarize counts players, solvers and exhausted users of a game on day.
func (s *SQLStore) Summarize(ctx context.Context, game Game, day daily.Day, maxAttempts int) (Summary, error) {
	table, err := game.table()
	if err != nil {
		return Summary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{Game: game, Day: day}
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(solved), 0),
			COALESCE(SUM(CASE WHEN solved = 0 AND attempt_count >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(attempt_count), 0),
			COALESCE(SUM(CASE WHEN solved = 1 THEN attempt_count ELSE 0 END), 0)
		FROM %s
		WHERE day = ?`, table), maxAttempts, string(day)).Scan(
		&sum.Players, &sum.Solved, &sum.Exhausted, &sum.TotalAttempts, &sum.SolvedAttempts,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to summarize %s ledger for %s: %w", game, day, err)
	}
	return sum, nil
}

// apply runs one upsert and reads the row back inside a single transaction.
// The upsert binds user_id, day and updated_at first, then args.
func (s *SQLStore) apply(ctx context.Context, key Key, upsert string, args ...any) (Entry, error) {
	table, err := key.Game.table()
	if err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, err
	}

	bind := append([]any{key.UserID, string(key.Day), s.now().Unix()}, args...)
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(upsert, table), bind...); err != nil {
		tx.Rollback()
		return Entry{}, fmt.Errorf("failed to write ledger %s: %w", key, err)
	}

	entry := Entry{Key: key}
	var solved int
	var updatedAt int64
	err = tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT attempt_count, solved, updated_at FROM %s WHERE user_id = ? AND day = ?`, table),
		key.UserID, string(key.Day)).Scan(&entry.AttemptCount, &solved, &updatedAt)
	if err != nil {
		tx.Rollback()
		return Entry{}, fmt.Errorf("failed to read ledger %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, err
	}

	entry.Solved = solved != 0
	entry.UpdatedAt = time.Unix(updatedAt, 0)
	return entry, nil
}
