package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/footle/internal/game"
)

var _ Notifier = LogNotifier{}

// LogNotifier writes reports to the application log. It is used when no chat
// provider is configured.
type LogNotifier struct{}

func (LogNotifier) SendDailySummary(report *game.Report, dryRun bool) error {
	fields := []any{
		"day", report.Day,
		"dry_run", dryRun,
		"player_players", report.Player.Players,
		"player_solved", report.Player.Solved,
		"player_exhausted", report.Player.Exhausted,
		"transfer_players", report.Transfer.Players,
		"transfer_solved", report.Transfer.Solved,
		"transfer_exhausted", report.Transfer.Exhausted,
	}
	if report.TransferAnswer != nil {
		fields = append(fields, "transfer_answer", report.TransferAnswer.Player.Name)
	}
	log.Info("Daily summary", fields...)
	return nil
}
