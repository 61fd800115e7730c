package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/game"
	"github.com/mauv0809/footle/internal/ledger"
	"github.com/mauv0809/footle/internal/metrics"
	"github.com/shopspring/decimal"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sampleReport() *game.Report {
	return &game.Report{
		Day:      "2024-05-01",
		Player:   ledger.Summary{Game: ledger.PlayerGame, Players: 4, Solved: 2, Exhausted: 1, TotalAttempts: 12, SolvedAttempts: 5},
		Transfer: ledger.Summary{Game: ledger.TransferGame},
		TransferAnswer: &catalog.Transfer{
			Player:   catalog.Player{Name: "Robert Lewandowski"},
			FromClub: catalog.Ref{Name: "Bayern Munich"},
			ToClub:   catalog.Ref{Name: "FC Barcelona"},
			Amount:   decimal.NewFromInt(45_000_000),
			Date:     time.Date(2022, 7, 19, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	ts, err := notifier.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, "dry-run-ts", ts)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	ts, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)
	require.NoError(t, err)
	assert.Equal(t, "ts123", ts)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendDailySummary_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())
	require.NoError(t, notifier.SendDailySummary(sampleReport(), false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendDailySummary")
}

func TestFormatDailySummary(t *testing.T) {
	msg := formatDailySummary(sampleReport())
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "⚽ Footle results for 2024-05-01 ⚽", header.Text.Text)

	players, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Guess the player\n• Players: 4\n• Solved: 2\n• Out of attempts: 1\n• Average attempts to solve: 2.5", players.Text.Text)

	transfers, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Guess the transfer\nNo one played.", transfers.Text.Text)

	contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	answer, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Transfer answer: Robert Lewandowski, Bayern Munich → FC Barcelona (€45.0m, 19 Jul 2022)", answer.Text)
}

func TestFormatDailySummary_NoTransferQuestion(t *testing.T) {
	report := sampleReport()
	report.TransferAnswer = nil

	msg := formatDailySummary(report)
	contextBlock := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	answer := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	assert.Equal(t, "Nobody started the transfer game.", answer.Text)
}

func TestFormatTransfer_FreeTransfer(t *testing.T) {
	tr := sampleReport().TransferAnswer
	tr.Amount = decimal.Zero
	assert.Equal(t, "Robert Lewandowski, Bayern Munich → FC Barcelona (free, 19 Jul 2022)", formatTransfer(tr))
}
