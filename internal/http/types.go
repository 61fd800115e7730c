package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/footle/internal/auth"
	"github.com/mauv0809/footle/internal/config"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/game"
	"github.com/mauv0809/footle/internal/metrics"
	"github.com/mauv0809/footle/internal/notifier"
)

// PlayerGame is the guess-the-player surface used by the handlers.
type PlayerGame interface {
	SubmitGuess(ctx context.Context, userID, candidateName string) (*game.GuessResult, error)
	Status(ctx context.Context, userID string) (*game.Status, error)
	PlayerNames(ctx context.Context, query string) ([]string, error)
}

// TransferGame is the guess-the-transfer surface used by the handlers.
type TransferGame interface {
	Start(ctx context.Context, userID string) (*game.TransferStart, error)
	SubmitGuess(ctx context.Context, userID, candidateName string) (*game.TransferGuessResult, error)
}

type Reporter interface {
	Report(ctx context.Context, day daily.Day) (*game.Report, error)
}

type Server struct {
	Players        PlayerGame
	Transfers      TransferGame
	Reporter       Reporter
	Notifier       notifier.Notifier
	Verifier       auth.Verifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Clock          daily.Clock
	Cfg            config.Config
	Router         *chi.Mux
}

type guessRequest struct {
	PlayerName string `json:"player_name"`
}

type namesResponse struct {
	Players []string `json:"players"`
}

type summaryResponse struct {
	Day      daily.Day      `json:"day"`
	DryRun   bool           `json:"dry_run"`
	Player   summaryPayload `json:"player"`
	Transfer summaryPayload `json:"transfer"`
	Answer   string         `json:"transfer_answer,omitempty"`
}

type summaryPayload struct {
	Players              int     `json:"players"`
	Solved               int     `json:"solved"`
	Exhausted            int     `json:"exhausted"`
	TotalAttempts        int     `json:"total_attempts"`
	AverageSolveAttempts float64 `json:"average_solve_attempts"`
}
