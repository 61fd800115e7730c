package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/footle/internal/assignment"
	"github.com/mauv0809/footle/internal/auth"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/config"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/database"
	"github.com/mauv0809/footle/internal/game"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
	"github.com/mauv0809/footle/internal/notifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	adminUser  = "scheduler"
)

type testServer struct {
	*Server
	notifier *notifier.Mock
	jwt      *auth.JWT
	clock    *daily.FixedClock
}

func (ts *testServer) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := ts.jwt.Issue(userID, userID)
	require.NoError(t, err)
	return tok
}

// do sends a request through the router. body is JSON-encoded unless it is
// already a string.
func (ts *testServer) do(t *testing.T, method, target, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.Router.ServeHTTP(rr, req)

	var decoded map[string]any
	if rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	}
	return rr, decoded
}

// setupTestServer wires the real games over an in-memory database seeded with
// the sample catalog. Every draw picks the first entry, Robert Lewandowski.
func setupTestServer(t *testing.T) (*testServer, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(database.MemoryPath, "", "")
	require.NoError(t, err)

	cat := catalog.New(db)
	require.NoError(t, cat.Import(context.Background(), catalog.SampleSnapshot()))

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	store := ledger.NewStore(db)
	resolver := assignment.NewResolver(assignment.NewStore(db), cat, metricsSvc,
		assignment.WithPicker(func(int) int { return 0 }))
	clock := daily.NewFixedClock(time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC))
	deps := game.Deps{
		Resolver: resolver,
		Ledger:   store,
		Catalog:  cat,
		Locker:   ledger.NewLocalLocker(),
		Clock:    clock,
		Metrics:  metricsSvc,
	}

	jwt := auth.NewJWT(testSecret, "footle", time.Hour)
	notif := notifier.NewMock()
	cfg := config.Config{
		CORSOrigins: []string{"http://localhost:5173"},
		AdminUsers:  []string{adminUser},
	}

	server := NewServer(
		game.NewPlayerGame(deps),
		game.NewTransferGame(deps),
		game.NewReporter(store, resolver),
		notif,
		jwt,
		metricsSvc,
		metricsHandler,
		clock,
		cfg,
	)
	return &testServer{Server: server, notifier: notif, jwt: jwt, clock: clock}, dbTeardown
}

func TestHealthCheckHandler(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()

	rr, _ := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestRequestParamsLeaveLogLevelAlone(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()

	original := log.GetLevel()
	defer log.SetLevel(original)
	log.SetLevel(log.WarnLevel)

	rr, _ := ts.do(t, http.MethodGet, "/health?verbose=true", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}

func TestMetricsEndpoint(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()

	ts.do(t, http.MethodPost, "/guess", ts.token(t, "u1"), guessRequest{PlayerName: "Harry Kane"})

	rr, _ := ts.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `footle_guesses_total{game="player",outcome="incorrect"} 1`)
}

func TestRequireAuth(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()

	t.Run("missing token", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodGet, "/game-status", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Unauthorized", body["error"])
	})

	t.Run("foreign token", func(t *testing.T) {
		other, err := auth.NewJWT("other-secret", "footle", time.Hour).Issue("u1", "")
		require.NoError(t, err)
		rr, _ := ts.do(t, http.MethodPost, "/guess", other, guessRequest{PlayerName: "Harry Kane"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/game-status", nil)
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: ts.token(t, "u1")})
		rr := httptest.NewRecorder()
		ts.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestGuessHandler(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()
	token := ts.token(t, "u1")

	t.Run("bad json", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodPost, "/guess", token, "{not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, string(game.CodeInvalidInput), body["code"])
	})

	t.Run("empty name", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodPost, "/guess", token, guessRequest{PlayerName: "  "})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	})

	t.Run("unknown player", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodPost, "/guess", token, guessRequest{PlayerName: "Nobody Special"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, string(game.CodeTargetNotFound), body["code"])
		assert.Equal(t, float64(4), body["remaining_attempts"])
		assert.Equal(t, false, body["game_over"])
		assert.NotContains(t, body, revealPlayer)
	})

	t.Run("wrong player", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodPost, "/guess", token, guessRequest{PlayerName: "Wojciech Szczęsny"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, false, body["correct"])
		assert.Equal(t, float64(3), body["remaining_attempts"])
		matches := body["matches"].(map[string]any)
		assert.Equal(t, "up", matches["age_comparison"])
		assert.Equal(t, "down", matches["shirt_number_comparison"])
		assert.NotContains(t, body, revealPlayer)
	})

	t.Run("correct player", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodPost, "/guess", token, guessRequest{PlayerName: "Robert Lewandowski"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["correct"])
		assert.Equal(t, true, body["game_over"])
		assert.Equal(t, "Robert Lewandowski", body[revealPlayer])
	})

	t.Run("after solving", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodPost, "/guess", token, guessRequest{PlayerName: "Harry Kane"})
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, string(game.CodeAlreadyGuessedCorrectly), body["code"])
		assert.Equal(t, "Robert Lewandowski", body[revealPlayer])
	})

	t.Run("status", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodGet, "/game-status", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["guessed_correctly"])
		assert.Equal(t, false, body["game_over_due_to_attempts"])
		assert.Equal(t, float64(2), body["remaining_attempts"])
	})
}

func TestGuessHandlerExhausted(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()
	token := ts.token(t, "u2")

	for _, name := range []string{"Harry Kane", "Piotr Zieliński", "Kylian Mbappé", "Jude Bellingham", "Erling Haaland"} {
		rr, _ := ts.do(t, http.MethodPost, "/guess", token, guessRequest{PlayerName: name})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr, body := ts.do(t, http.MethodPost, "/guess", token, guessRequest{PlayerName: "Robert Lewandowski"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, string(game.CodeNoAttemptsRemaining), body["code"])
	assert.Equal(t, "Robert Lewandowski", body[revealPlayer])
	assert.Equal(t, true, body["game_over"])
}

func TestPlayerNamesHandler(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()
	token := ts.token(t, "u1")

	rr, body := ts.do(t, http.MethodGet, "/player-names?query=rob", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{"Robert Gumny", "Robert Lewandowski", "Roberto Firmino"}, body["players"])

	rr, body = ts.do(t, http.MethodGet, "/player-names?query=zzz", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{}, body["players"])
}

func TestTransferHandlers(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()
	token := ts.token(t, "u1")

	rr, body := ts.do(t, http.MethodPost, "/transfer/guess", token, guessRequest{PlayerName: "Robert Lewandowski"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, string(game.CodeGameNotStarted), body["code"])

	rr, body = ts.do(t, http.MethodGet, "/transfer/start", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bayern Munich", body["from_club"])
	assert.Equal(t, "FC Barcelona", body["to_club"])
	assert.Equal(t, float64(45000000), body["amount"])
	assert.NotContains(t, body, revealTransfer)

	rr, body = ts.do(t, http.MethodPost, "/transfer/guess", token, guessRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, string(game.CodeInvalidInput), body["code"])

	rr, body = ts.do(t, http.MethodPost, "/transfer/guess", token, guessRequest{PlayerName: "robert lewandowski"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, "Robert Lewandowski", body[revealTransfer])

	rr, body = ts.do(t, http.MethodPost, "/transfer/guess", token, guessRequest{PlayerName: "Harry Kane"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Robert Lewandowski", body[revealTransfer])
}

func TestDailySummaryHandler(t *testing.T) {
	ts, teardown := setupTestServer(t)
	defer teardown()
	token := ts.token(t, "u1")
	admin := ts.token(t, adminUser)

	t.Run("defaults to yesterday", func(t *testing.T) {
		rr, body := ts.do(t, http.MethodPost, "/daily-summary?dry_run=true", admin, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "2024-05-01", body["day"])
		assert.Equal(t, true, body["dry_run"])

		require.Equal(t, 1, ts.notifier.Calls())
		call := ts.notifier.SendDailySummaryCalls[0]
		assert.True(t, call.DryRun)
		assert.Equal(t, daily.Day("2024-05-01"), call.Report.Day)
	})

	t.Run("players cannot trigger it", func(t *testing.T) {
		ts.notifier.Reset()
		rr, body := ts.do(t, http.MethodPost, "/daily-summary?date=2024-05-01&dry_run=true", token, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Forbidden", body["error"])
		assert.Equal(t, 0, ts.notifier.Calls())
	})

	t.Run("today is not revealed", func(t *testing.T) {
		ts.notifier.Reset()
		rr, _ := ts.do(t, http.MethodGet, "/transfer/start", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		for _, date := range []string{"2024-05-02", "2024-05-03"} {
			rr, body := ts.do(t, http.MethodPost, "/daily-summary?dry_run=true&date="+date, admin, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, string(game.CodeInvalidInput), body["code"])
			assert.NotContains(t, body, "transfer_answer")
		}
		assert.Equal(t, 0, ts.notifier.Calls())

		rr, body := ts.do(t, http.MethodPost, "/transfer/guess", token, guessRequest{PlayerName: "Harry Kane"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, float64(4), body["remaining_attempts"])
	})

	t.Run("finished day", func(t *testing.T) {
		ts.notifier.Reset()
		ts.do(t, http.MethodPost, "/guess", token, guessRequest{PlayerName: "Robert Lewandowski"})
		ts.clock.Advance(24 * time.Hour)
		defer ts.clock.Advance(-24 * time.Hour)

		rr, body := ts.do(t, http.MethodPost, "/daily-summary?date=2024-05-02", admin, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Robert Lewandowski", body["transfer_answer"])
		player := body["player"].(map[string]any)
		assert.Equal(t, float64(1), player["solved"])
		assert.Equal(t, float64(1), player["average_solve_attempts"])

		require.Equal(t, 1, ts.notifier.Calls())
		assert.False(t, ts.notifier.SendDailySummaryCalls[0].DryRun)
	})

	t.Run("bad date", func(t *testing.T) {
		rr, _ := ts.do(t, http.MethodPost, "/daily-summary?date=yesterday", admin, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("notifier failure", func(t *testing.T) {
		ts.notifier.SendDailySummaryFunc = func(*game.Report, bool) error { return assert.AnError }
		defer func() { ts.notifier.SendDailySummaryFunc = nil }()
		rr, _ := ts.do(t, http.MethodPost, "/daily-summary", admin, nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("counted", func(t *testing.T) {
		rr, _ := ts.do(t, http.MethodGet, "/metrics", "", nil)
		out := rr.Body.String()
		assert.Contains(t, out, `footle_daily_summaries_total{result="dry_run"} 1`)
		assert.Contains(t, out, `footle_daily_summaries_total{result="sent"} 1`)
		assert.Contains(t, out, `footle_daily_summaries_total{result="rejected"} 3`)
		assert.Contains(t, out, `footle_daily_summaries_total{result="failed"} 1`)
	})
}
