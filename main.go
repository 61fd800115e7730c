package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/footle/internal/assignment"
	"github.com/mauv0809/footle/internal/auth"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/config"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/database"
	"github.com/mauv0809/footle/internal/game"
	server "github.com/mauv0809/footle/internal/http"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
	"github.com/mauv0809/footle/internal/notifier"
	"github.com/mauv0809/footle/internal/notifier/slack"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	log.SetLevel(cfg.Level())

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid game time zone", "error", err)
	}
	clock := daily.SystemClock{Location: loc}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	locker, closeLocker := newLocker(cfg.Redis)
	defer closeLocker()

	catalogStore := catalog.New(db)
	ledgerStore := ledger.NewStore(db)
	resolver := assignment.NewResolver(assignment.NewStore(db), catalogStore, metricsSvc)
	deps := game.Deps{
		Resolver: resolver,
		Ledger:   ledgerStore,
		Catalog:  catalogStore,
		Locker:   locker,
		Clock:    clock,
		Metrics:  metricsSvc,
	}

	var notif notifier.Notifier = notifier.LogNotifier{}
	if cfg.Slack.Enabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack is not configured, daily summaries go to the log")
	}

	s := server.NewServer(
		game.NewPlayerGame(deps),
		game.NewTransferGame(deps),
		game.NewReporter(ledgerStore, resolver),
		notif,
		auth.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL),
		metricsSvc,
		metricsHandler,
		clock,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port, "timezone", loc.String())
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// newLocker picks Redis locking when REDIS_URL is set and an in-process
// locker otherwise.
func newLocker(cfg config.RedisConfig) (ledger.Locker, func()) {
	if cfg.URL == "" {
		log.Info("Using in-process guess locking")
		return ledger.NewLocalLocker(), func() {}
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Fatal("Invalid REDIS_URL", "error", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	log.Info("Using Redis guess locking", "addr", opts.Addr)

	return ledger.NewRedisLocker(client, cfg.LockTTL, cfg.Retries, cfg.Backoff), func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close Redis client", "error", err)
		}
	}
}
