package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/game"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
	"github.com/mauv0809/footle/internal/notifier"
	"github.com/shopspring/decimal"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

var million = decimal.NewFromInt(1_000_000)

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) SendDailySummary(report *game.Report, dryRun bool) error {
	_, err := s.sendMessage(formatDailySummary(report), dryRun)
	return err
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return timestamp, nil
}

// formatDailySummary renders a report as header, one section per game and a
// context line with the transfer answer.
func formatDailySummary(report *game.Report) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("⚽ Footle results for %s ⚽", report.Day), true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", formatSummary("Guess the player", report.Player), true, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", formatSummary("Guess the transfer", report.Transfer), true, false), nil, nil),
	}

	answer := "Nobody started the transfer game."
	if report.TransferAnswer != nil {
		answer = "Transfer answer: " + formatTransfer(report.TransferAnswer)
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", answer, true, false)))

	return slack.NewBlockMessage(blocks...)
}

func formatSummary(title string, sum ledger.Summary) string {
	if sum.Players == 0 {
		return title + "\nNo one played."
	}
	return fmt.Sprintf("%s\n• Players: %d\n• Solved: %d\n• Out of attempts: %d\n• Average attempts to solve: %.1f",
		title,
		sum.Players,
		sum.Solved,
		sum.Exhausted,
		sum.AverageSolveAttempts(),
	)
}

func formatTransfer(t *catalog.Transfer) string {
	fee := "free"
	if !t.Amount.IsZero() {
		fee = "€" + t.Amount.Div(million).StringFixed(1) + "m"
	}
	return fmt.Sprintf("%s, %s → %s (%s, %s)", t.Player.Name, t.FromClub.Name, t.ToClub.Name, fee, t.Date.Format("2 Jan 2006"))
}
