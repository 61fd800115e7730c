package game

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mauv0809/footle/internal/assignment"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
)

const transferGame = string(ledger.TransferGame)

// TransferGame runs the daily "who made this transfer" game. The question is
// shared by every user; attempts are counted per user.
type TransferGame struct {
	Deps
}

func NewTransferGame(deps Deps) *TransferGame {
	return &TransferGame{Deps: deps}
}

// Start returns today's question, drawing it if nobody has asked yet. It never
// spends an attempt.
func (g *TransferGame) Start(ctx context.Context, userID string) (*TransferStart, error) {
	day := daily.Today(g.Clock)
	transfer, err := g.Resolver.ResolveTransfer(ctx, day)
	if err != nil {
		return nil, resolveError(err)
	}

	entry, err := g.Ledger.LoadOrInit(ctx, ledger.Key{Game: ledger.TransferGame, UserID: userID, Day: day})
	if err != nil {
		return nil, internalError(err)
	}

	remaining := remainingAttempts(entry)
	start := &TransferStart{
		FromClub:          transfer.FromClub.Name,
		ToClub:            transfer.ToClub.Name,
		Amount:            transfer.Amount.InexactFloat64(),
		Date:              transfer.Date.Format(daily.Layout),
		RemainingAttempts: remaining,
		GuessedCorrectly:  entry.Solved,
		GameOver:          entry.Solved || remaining == 0,
		Message:           msgTransferPending,
	}
	switch {
	case entry.Solved:
		start.Message = msgAlreadySolved(transfer.Player.Name)
	case remaining == 0:
		start.Message = msgExhausted(transfer.Player.Name)
	}
	if start.GameOver {
		start.CorrectPlayer = transfer.Player.Name
	}
	return start, nil
}

// SubmitGuess checks a player name against today's transfer. The question
// must already exist; Start creates it.
func (g *TransferGame) SubmitGuess(ctx context.Context, userID, candidateName string) (*TransferGuessResult, error) {
	begin := time.Now()
	defer func() {
		g.Metrics.ObserveGuessDuration(transferGame, time.Since(begin).Seconds())
	}()

	name := strings.TrimSpace(candidateName)
	if name == "" {
		g.Metrics.IncGuesses(transferGame, metrics.OutcomeRejected)
		return nil, &Error{Code: CodeInvalidInput, Message: msgNameRequired}
	}

	day := daily.Today(g.Clock)
	transfer, err := g.Resolver.TransferForDay(ctx, day)
	if errors.Is(err, assignment.ErrNotAssigned) {
		g.Metrics.IncGuesses(transferGame, metrics.OutcomeRejected)
		return nil, &Error{Code: CodeGameNotStarted, Message: msgNotStarted}
	}
	if err != nil {
		return nil, internalError(err)
	}

	key := ledger.Key{Game: ledger.TransferGame, UserID: userID, Day: day}
	unlock, err := g.Locker.Lock(ctx, key)
	if err != nil {
		return nil, internalError(err)
	}
	defer unlock()

	entry, err := g.Ledger.LoadOrInit(ctx, key)
	if err != nil {
		return nil, internalError(err)
	}
	if err := closedError(entry, transfer.Player.Name); err != nil {
		g.Metrics.IncGuesses(transferGame, metrics.OutcomeRejected)
		return nil, err
	}

	correct := EvaluateTransfer(name, transfer.Player.Name)
	entry, err = g.Ledger.RecordAttempt(ctx, key, correct)
	if err != nil {
		return nil, internalError(err)
	}

	remaining := remainingAttempts(entry)
	result := &TransferGuessResult{
		Correct:           entry.Solved,
		RemainingAttempts: remaining,
		GameOver:          entry.Solved || remaining == 0,
	}
	switch {
	case entry.Solved:
		result.Message = msgSolved(transfer.Player.Name)
		g.Metrics.IncGuesses(transferGame, metrics.OutcomeCorrect)
		g.finished(key, metrics.ResultSolved, entry)
	case remaining == 0:
		result.Message = msgExhausted(transfer.Player.Name)
		g.Metrics.IncGuesses(transferGame, metrics.OutcomeIncorrect)
		g.finished(key, metrics.ResultExhausted, entry)
	default:
		result.Message = msgTryAgain
		g.Metrics.IncGuesses(transferGame, metrics.OutcomeIncorrect)
	}
	if result.GameOver {
		reveal(result, transfer)
	}
	return result, nil
}

func reveal(result *TransferGuessResult, transfer *catalog.Transfer) {
	amount := transfer.Amount.InexactFloat64()
	result.CorrectPlayer = transfer.Player.Name
	result.FromClub = transfer.FromClub.Name
	result.ToClub = transfer.ToClub.Name
	result.Amount = &amount
}
