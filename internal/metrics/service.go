package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "footle_guesses_total",
			Help: "The total number of guesses submitted, by game and outcome.",
		}, []string{"game", "outcome"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "footle_games_finished_total",
			Help: "The total number of daily games that reached a terminal state.",
		}, []string{"game", "result"}),
		AssignmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "footle_assignments_created_total",
			Help: "The total number of daily targets drawn from the catalog.",
		}, []string{"game"}),
		GuessDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "footle_guess_duration_seconds",
			Help:    "The duration of guess handling.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"game"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "footle_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "footle_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		DailySummaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "footle_daily_summaries_total",
			Help: "The total number of daily summary requests, by result.",
		}, []string{"result"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "footle_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Guesses,
		s.GamesFinished,
		s.AssignmentsCreated,
		s.GuessDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.DailySummaries,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncGuesses(game, outcome string) {
	s.Guesses.WithLabelValues(game, outcome).Inc()
}

func (s *Service) IncGamesFinished(game, result string) {
	s.GamesFinished.WithLabelValues(game, result).Inc()
}

func (s *Service) IncAssignmentsCreated(game string) {
	s.AssignmentsCreated.WithLabelValues(game).Inc()
}

func (s *Service) ObserveGuessDuration(game string, duration float64) {
	s.GuessDuration.WithLabelValues(game).Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncDailySummaries(result string) {
	s.DailySummaries.WithLabelValues(result).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
