package game

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/footle/internal/assignment"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
)

const playerGame = string(ledger.PlayerGame)

// PlayerGame runs the guess-the-player daily game.
type PlayerGame struct {
	Deps
}

func NewPlayerGame(deps Deps) *PlayerGame {
	return &PlayerGame{Deps: deps}
}

// SubmitGuess evaluates one guess of userID for today's player.
//
// A guess naming an unknown player still spends an attempt and is reported as
// a TARGET_NOT_FOUND error. Guesses after the game is over are rejected
// without touching the ledger.
func (g *PlayerGame) SubmitGuess(ctx context.Context, userID, candidateName string) (*GuessResult, error) {
	start := time.Now()
	defer func() {
		g.Metrics.ObserveGuessDuration(playerGame, time.Since(start).Seconds())
	}()

	name := strings.TrimSpace(candidateName)
	if name == "" {
		g.Metrics.IncGuesses(playerGame, metrics.OutcomeRejected)
		return nil, &Error{Code: CodeInvalidInput, Message: msgNameRequired}
	}

	day := daily.Today(g.Clock)
	target, err := g.Resolver.ResolvePlayer(ctx, userID, day)
	if err != nil {
		return nil, resolveError(err)
	}

	key := ledger.Key{Game: ledger.PlayerGame, UserID: userID, Day: day}
	unlock, err := g.Locker.Lock(ctx, key)
	if err != nil {
		return nil, internalError(err)
	}
	defer unlock()

	entry, err := g.Ledger.LoadOrInit(ctx, key)
	if err != nil {
		return nil, internalError(err)
	}
	if err := closedError(entry, target.Name); err != nil {
		g.Metrics.IncGuesses(playerGame, metrics.OutcomeRejected)
		return nil, err
	}

	candidate, err := g.Catalog.PlayerByName(ctx, name)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, g.notFound(ctx, key, target)
	}
	if err != nil {
		return nil, internalError(err)
	}

	matches := Evaluate(*candidate, *target)
	entry, err = g.Ledger.RecordAttempt(ctx, key, matches.Solved())
	if err != nil {
		return nil, internalError(err)
	}

	remaining := remainingAttempts(entry)
	result := &GuessResult{
		Correct:           entry.Solved,
		RemainingAttempts: remaining,
		PlayerData:        playerData(candidate),
		Matches:           matches,
		GameOver:          entry.Solved || remaining == 0,
	}
	switch {
	case entry.Solved:
		result.Message = msgSolved(target.Name)
		g.Metrics.IncGuesses(playerGame, metrics.OutcomeCorrect)
		g.finished(key, metrics.ResultSolved, entry)
	case remaining == 0:
		result.Message = msgExhausted(target.Name)
		g.Metrics.IncGuesses(playerGame, metrics.OutcomeIncorrect)
		g.finished(key, metrics.ResultExhausted, entry)
	default:
		result.Message = msgTryAgain
		g.Metrics.IncGuesses(playerGame, metrics.OutcomeIncorrect)
	}
	if result.GameOver {
		result.TargetPlayerName = target.Name
	}
	return result, nil
}

// notFound spends an attempt on a name the catalog does not know.
func (g *PlayerGame) notFound(ctx context.Context, key ledger.Key, target *catalog.Player) error {
	entry, err := g.Ledger.RecordAttempt(ctx, key, false)
	if err != nil {
		return internalError(err)
	}
	g.Metrics.IncGuesses(playerGame, metrics.OutcomeNotFound)

	remaining := remainingAttempts(entry)
	nf := &Error{
		Code:              CodeTargetNotFound,
		Message:           msgNotFound,
		RemainingAttempts: remaining,
	}
	if remaining == 0 {
		nf.Message = msgExhausted(target.Name)
		nf.TargetName = target.Name
		nf.GameOver = true
		g.finished(key, metrics.ResultExhausted, entry)
	}
	return nf
}

// Status reports today's state for userID without spending an attempt.
func (g *PlayerGame) Status(ctx context.Context, userID string) (*Status, error) {
	day := daily.Today(g.Clock)
	target, err := g.Resolver.ResolvePlayer(ctx, userID, day)
	if err != nil {
		return nil, resolveError(err)
	}

	entry, err := g.Ledger.LoadOrInit(ctx, ledger.Key{Game: ledger.PlayerGame, UserID: userID, Day: day})
	if err != nil {
		return nil, internalError(err)
	}

	remaining := remainingAttempts(entry)
	status := &Status{
		RemainingAttempts:     remaining,
		GuessedCorrectly:      entry.Solved,
		GameOverDueToAttempts: remaining == 0 && !entry.Solved,
		GameOver:              entry.Solved || remaining == 0,
	}
	if status.GameOver {
		status.TargetPlayerName = target.Name
	}
	return status, nil
}

// PlayerNames suggests up to MaxSuggestions names starting with query, or
// random names when query is blank.
func (g *PlayerGame) PlayerNames(ctx context.Context, query string) ([]string, error) {
	var (
		names []string
		err   error
	)
	if strings.TrimSpace(query) == "" {
		names, err = g.Catalog.RandomPlayerNames(ctx, MaxSuggestions)
	} else {
		names, err = g.Catalog.SearchPlayerNames(ctx, query, MaxSuggestions)
	}
	if err != nil {
		return nil, internalError(err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (d Deps) finished(key ledger.Key, result string, entry ledger.Entry) {
	d.Metrics.IncGamesFinished(string(key.Game), result)
	log.Info("Daily game finished", "game", key.Game, "user", key.UserID, "day", key.Day, "result", result, "attempts", entry.AttemptCount)
}

// closedError rejects guesses once the day is solved or out of attempts.
func closedError(entry ledger.Entry, targetName string) error {
	switch {
	case entry.Solved:
		return &Error{
			Code:              CodeAlreadyGuessedCorrectly,
			Message:           msgAlreadySolved(targetName),
			TargetName:        targetName,
			RemainingAttempts: remainingAttempts(entry),
			GameOver:          true,
		}
	case entry.AttemptCount >= MaxAttempts:
		return &Error{
			Code:       CodeNoAttemptsRemaining,
			Message:    msgExhausted(targetName),
			TargetName: targetName,
			GameOver:   true,
		}
	}
	return nil
}

func resolveError(err error) error {
	if errors.Is(err, assignment.ErrCatalogEmpty) {
		log.Error("Cannot assign a daily target", "error", err)
		return &Error{Code: CodeCatalogEmpty, Message: msgCatalogEmpty, Cause: err}
	}
	return internalError(err)
}
