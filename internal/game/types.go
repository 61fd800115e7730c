package game

import (
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
)

const (
	// MaxAttempts is the daily attempt cap of both games.
	MaxAttempts = 5
	// MaxSuggestions caps the player-name search.
	MaxSuggestions = 10
)

// Deps are the collaborators shared by both game controllers.
type Deps struct {
	Resolver Resolver
	Ledger   Ledger
	Catalog  Catalog
	Locker   ledger.Locker
	Clock    daily.Clock
	Metrics  metrics.Metrics
}

// PlayerData is the guessed player as shown back to the user.
type PlayerData struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	League   string `json:"league"`
	Club     string `json:"club"`
	Position string `json:"position"`
	Age      int    `json:"age"`
	Number   int    `json:"number"`
}

func playerData(p *catalog.Player) PlayerData {
	return PlayerData{
		Name:     p.Name,
		Country:  p.Country.Name,
		League:   p.League.Name,
		Club:     p.Club.Name,
		Position: p.Position.Name,
		Age:      p.Age,
		Number:   p.ShirtNumber,
	}
}

// GuessResult answers an accepted player-game guess.
type GuessResult struct {
	Correct           bool        `json:"correct"`
	RemainingAttempts int         `json:"remaining_attempts"`
	PlayerData        PlayerData  `json:"player_data"`
	Matches           MatchResult `json:"matches"`
	Message           string      `json:"message"`
	GameOver          bool        `json:"game_over"`
	TargetPlayerName  string      `json:"target_player_name,omitempty"`
}

// Status is the player-game state of a user for today.
type Status struct {
	RemainingAttempts     int    `json:"remaining_attempts"`
	GuessedCorrectly      bool   `json:"guessed_correctly"`
	GameOverDueToAttempts bool   `json:"game_over_due_to_attempts"`
	GameOver              bool   `json:"game_over"`
	TargetPlayerName      string `json:"target_player_name,omitempty"`
}

// TransferStart is today's transfer question without the answer.
type TransferStart struct {
	FromClub          string  `json:"from_club"`
	ToClub            string  `json:"to_club"`
	Amount            float64 `json:"amount"`
	Date              string  `json:"date"`
	RemainingAttempts int     `json:"remaining_attempts"`
	GuessedCorrectly  bool    `json:"guessed_correctly"`
	GameOver          bool    `json:"game_over"`
	Message           string  `json:"message"`
	CorrectPlayer     string  `json:"correct_player,omitempty"`
}

// TransferGuessResult answers an accepted transfer-game guess. The transfer
// details are only filled in once the game is over.
type TransferGuessResult struct {
	Correct           bool     `json:"correct"`
	RemainingAttempts int      `json:"remaining_attempts"`
	GameOver          bool     `json:"game_over"`
	Message           string   `json:"message"`
	CorrectPlayer     string   `json:"correct_player,omitempty"`
	FromClub          string   `json:"from_club,omitempty"`
	ToClub            string   `json:"to_club,omitempty"`
	Amount            *float64 `json:"amount,omitempty"`
}

func remainingAttempts(entry ledger.Entry) int {
	return max(0, MaxAttempts-entry.AttemptCount)
}
