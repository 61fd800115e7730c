package notifier

import "github.com/mauv0809/footle/internal/game"

// Notifier publishes game events to a chat channel. This decouples the games
// from the provider (e.g., Slack).
type Notifier interface {
	// SendDailySummary posts the end-of-day report of both games.
	SendDailySummary(report *game.Report, dryRun bool) error
}
