package metrics

import "github.com/prometheus/client_golang/prometheus"

// Guess outcomes used as the "outcome" label.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeNotFound  = "not_found"
	OutcomeRejected  = "rejected"
)

// Terminal results used as the "result" label.
const (
	ResultSolved    = "solved"
	ResultExhausted = "exhausted"
)

// Daily summary results.
const (
	SummarySent     = "sent"
	SummaryDryRun   = "dry_run"
	SummaryFailed   = "failed"
	SummaryRejected = "rejected"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	Guesses            *prometheus.CounterVec
	GamesFinished      *prometheus.CounterVec
	AssignmentsCreated *prometheus.CounterVec
	GuessDuration      *prometheus.HistogramVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	DailySummaries     *prometheus.CounterVec
	StartupTimeSeconds prometheus.Gauge
}
