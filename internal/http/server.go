package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/footle/internal/auth"
	"github.com/mauv0809/footle/internal/config"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/metrics"
	"github.com/mauv0809/footle/internal/notifier"
	"github.com/rs/cors"
)

func NewServer(players PlayerGame, transfers TransferGame, reporter Reporter, notifier notifier.Notifier, verifier auth.Verifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, clock daily.Clock, cfg config.Config) *Server {
	server := &Server{
		Players:        players,
		Transfers:      transfers,
		Reporter:       reporter,
		Notifier:       notifier,
		Verifier:       verifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Clock:          clock,
		Cfg:            cfg,
		Router:         chi.NewRouter(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins:   s.Cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)

	// Handlers are wrapped with Chain; game routes add requireAuth and the
	// summary trigger also requireAdmin.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Method(http.MethodGet, "/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Method(http.MethodPost, "/guess", Chain(s.GuessHandler(), paramsMiddleware, s.requireAuth))
	s.Router.Method(http.MethodGet, "/game-status", Chain(s.GameStatusHandler(), paramsMiddleware, s.requireAuth))
	s.Router.Method(http.MethodGet, "/player-names", Chain(s.PlayerNamesHandler(), paramsMiddleware, s.requireAuth))
	s.Router.Method(http.MethodGet, "/transfer/start", Chain(s.TransferStartHandler(), paramsMiddleware, s.requireAuth))
	s.Router.Method(http.MethodPost, "/transfer/guess", Chain(s.TransferGuessHandler(), paramsMiddleware, s.requireAuth))
	s.Router.Method(http.MethodPost, "/daily-summary", Chain(s.DailySummaryHandler(), paramsMiddleware, s.requireAuth, s.requireAdmin))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
