package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/mauv0809/footle/internal/assignment"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/ledger"
)

// Report is the end-of-day summary of both games.
type Report struct {
	Day      daily.Day
	Player   ledger.Summary
	Transfer ledger.Summary
	// TransferAnswer is nil when nobody started the transfer game that day.
	TransferAnswer *catalog.Transfer
}

// Reporter builds daily reports from the ledgers.
type Reporter struct {
	ledger   SummaryLedger
	resolver Resolver
}

func NewReporter(summaries SummaryLedger, resolver Resolver) *Reporter {
	return &Reporter{ledger: summaries, resolver: resolver}
}

func (r *Reporter) Report(ctx context.Context, day daily.Day) (*Report, error) {
	player, err := r.ledger.Summarize(ctx, ledger.PlayerGame, day, MaxAttempts)
	if err != nil {
		return nil, err
	}
	transfer, err := r.ledger.Summarize(ctx, ledger.TransferGame, day, MaxAttempts)
	if err != nil {
		return nil, err
	}

	report := &Report{Day: day, Player: player, Transfer: transfer}
	answer, err := r.resolver.TransferForDay(ctx, day)
	switch {
	case errors.Is(err, assignment.ErrNotAssigned):
	case err != nil:
		return nil, fmt.Errorf("failed to load transfer question of %s: %w", day, err)
	default:
		report.TransferAnswer = answer
	}
	return report, nil
}
