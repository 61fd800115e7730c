package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/game"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
)

const (
	revealPlayer   = "target_player_name"
	revealTransfer = "correct_player"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) GuessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeGuess(w, r)
		if !ok {
			return
		}
		id := identityFromContext(r)
		result, err := s.Players.SubmitGuess(r.Context(), id.UserID, req.PlayerName)
		if err != nil {
			writeGameError(w, err, revealPlayer)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) GameStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := s.Players.Status(r.Context(), identityFromContext(r).UserID)
		if err != nil {
			writeGameError(w, err, revealPlayer)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func (s *Server) PlayerNamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := s.Players.PlayerNames(r.Context(), r.URL.Query().Get("query"))
		if err != nil {
			writeGameError(w, err, revealPlayer)
			return
		}
		writeJSON(w, http.StatusOK, namesResponse{Players: names})
	}
}

func (s *Server) TransferStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := s.Transfers.Start(r.Context(), identityFromContext(r).UserID)
		if err != nil {
			writeGameError(w, err, revealTransfer)
			return
		}
		writeJSON(w, http.StatusOK, start)
	}
}

func (s *Server) TransferGuessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeGuess(w, r)
		if !ok {
			return
		}
		result, err := s.Transfers.SubmitGuess(r.Context(), identityFromContext(r).UserID, req.PlayerName)
		if err != nil {
			writeGameError(w, err, revealTransfer)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// DailySummaryHandler posts the report of ?date= (default yesterday) to the
// notifier. It is meant to be called by a scheduler once a day. Only finished
// days are accepted since the report reveals the transfer answer.
func (s *Server) DailySummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		today := daily.Today(s.Clock)
		day := today.AddDays(-1)
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := daily.ParseDay(raw)
			if err != nil {
				s.Metrics.IncDailySummaries(metrics.SummaryRejected)
				writeGameError(w, &game.Error{Code: game.CodeInvalidInput, Message: "date must be YYYY-MM-DD"}, "")
				return
			}
			day = parsed
		}
		if day >= today {
			s.Metrics.IncDailySummaries(metrics.SummaryRejected)
			writeGameError(w, &game.Error{Code: game.CodeInvalidInput, Message: "date must be before " + today.String()}, "")
			return
		}

		log.Info("Building daily summary", "day", day, "dry_run", isDryRun)
		report, err := s.Reporter.Report(r.Context(), day)
		if err != nil {
			log.Error("Failed to build daily summary", "day", day, "error", err)
			s.Metrics.IncDailySummaries(metrics.SummaryFailed)
			http.Error(w, "Failed to build daily summary", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendDailySummary(report, isDryRun); err != nil {
			log.Error("Failed to send daily summary", "day", day, "error", err)
			s.Metrics.IncDailySummaries(metrics.SummaryFailed)
			http.Error(w, "Failed to send daily summary", http.StatusInternalServerError)
			return
		}
		if isDryRun {
			s.Metrics.IncDailySummaries(metrics.SummaryDryRun)
		} else {
			s.Metrics.IncDailySummaries(metrics.SummarySent)
		}

		resp := summaryResponse{
			Day:      day,
			DryRun:   isDryRun,
			Player:   toSummaryPayload(report.Player),
			Transfer: toSummaryPayload(report.Transfer),
		}
		if report.TransferAnswer != nil {
			resp.Answer = report.TransferAnswer.Player.Name
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func toSummaryPayload(sum ledger.Summary) summaryPayload {
	return summaryPayload{
		Players:              sum.Players,
		Solved:               sum.Solved,
		Exhausted:            sum.Exhausted,
		TotalAttempts:        sum.TotalAttempts,
		AverageSolveAttempts: sum.AverageSolveAttempts(),
	}
}

func decodeGuess(w http.ResponseWriter, r *http.Request) (guessRequest, bool) {
	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug("Invalid guess body", "error", err)
		writeGameError(w, &game.Error{Code: game.CodeInvalidInput, Message: "Invalid request body"}, "")
		return req, false
	}
	return req, true
}

// writeGameError renders err as {"error","code","status"} plus the game
// state it carries. reveal names the field holding the answer.
func writeGameError(w http.ResponseWriter, err error, reveal string) {
	e := game.AsError(err)
	status := e.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error("Game request failed", "code", e.Code, "error", err)
	}

	body := map[string]any{
		"error":  e.Message,
		"code":   e.Code,
		"status": status,
	}
	if e.Code == game.CodeTargetNotFound || e.Code.Terminal() {
		body["remaining_attempts"] = e.RemainingAttempts
		body["game_over"] = e.GameOver
	}
	if e.TargetName != "" && reveal != "" {
		body[reveal] = e.TargetName
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
