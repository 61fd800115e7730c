package ledger

import (
	"fmt"
	"time"

	"github.com/mauv0809/footle/internal/daily"
)

// Game identifies which daily game a ledger row belongs to.
type Game string

const (
	PlayerGame   Game = "player"
	TransferGame Game = "transfer"
)

func (g Game) table() (string, error) {
	switch g {
	case PlayerGame:
		return "player_guess_ledger", nil
	case TransferGame:
		return "transfer_guess_ledger", nil
	}
	return "", fmt.Errorf("unknown game %q", g)
}

// Key addresses one user's ledger row for one game and day.
type Key struct {
	Game   Game
	UserID string
	Day    daily.Day
}

func (k Key) String() string {
	return string(k.Game) + "|" + k.UserID + "|" + string(k.Day)
}

// Entry is the persisted attempt counter for a Key.
type Entry struct {
	Key          Key
	AttemptCount int
	Solved       bool
	UpdatedAt    time.Time
}

// Summary aggregates every ledger row of a game for one day.
type Summary struct {
	Game           Game
	Day            daily.Day
	Players        int
	Solved         int
	Exhausted      int
	TotalAttempts  int
	SolvedAttempts int
}

// AverageSolveAttempts is the mean attempt count among users who solved the day.
func (s Summary) AverageSolveAttempts() float64 {
	if s.Solved == 0 {
		return 0
	}
	return float64(s.SolvedAttempts) / float64(s.Solved)
}
