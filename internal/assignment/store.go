package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mauv0809/footle/internal/daily"
)

var _ Store = (*SQLStore)(nil)

// SQLStore keeps daily targets in daily_player_assignments and daily_transfer_questions.
type SQLStore struct {
	db *sql.DB
	mu sync.Mutex
}

func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PlayerAssignment(ctx context.Context, userID string, day daily.Day) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT player_id FROM daily_player_assignments WHERE user_id = ? AND day = ?`,
		userID, string(day)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotAssigned
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read player assignment for %s on %s: %w", userID, day, err)
	}
	return id, nil
}

func (s *SQLStore) AssignPlayer(ctx context.Context, userID string, day daily.Day, playerID int64) (int64, bool, error) {
	return s.insertOrIgnore(ctx,
		`INSERT INTO daily_player_assignments (user_id, day, player_id, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO NOTHING`,
		[]any{userID, string(day), playerID, time.Now().Unix()},
		`SELECT player_id FROM daily_player_assignments WHERE user_id = ? AND day = ?`,
		[]any{userID, string(day)},
	)
}

func (s *SQLStore) TransferQuestion(ctx context.Context, day daily.Day) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT transfer_id FROM daily_transfer_questions WHERE day = ?`, string(day)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotAssigned
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read transfer question for %s: %w", day, err)
	}
	return id, nil
}

func (s *SQLStore) AssignTransfer(ctx context.Context, day daily.Day, transferID int64) (int64, bool, error) {
	return s.insertOrIgnore(ctx,
		`INSERT INTO daily_transfer_questions (day, transfer_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT(day) DO NOTHING`,
		[]any{string(day), transferID, time.Now().Unix()},
		`SELECT transfer_id FROM daily_transfer_questions WHERE day = ?`,
		[]any{string(day)},
	)
}

// insertOrIgnore runs the insert and reads back the stored id in one
// transaction, so a caller that lost a race sees the winner's row.
func (s *SQLStore) insertOrIgnore(ctx context.Context, insert string, insertArgs []any, read string, readArgs []any) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}

	res, err := tx.ExecContext(ctx, insert, insertArgs...)
	if err != nil {
		tx.Rollback()
		return 0, false, fmt.Errorf("failed to store assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, false, err
	}

	var id int64
	if err := tx.QueryRowContext(ctx, read, readArgs...).Scan(&id); err != nil {
		tx.Rollback()
		return 0, false, fmt.Errorf("failed to read back assignment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return id, affected == 1, nil
}
