package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the game logic from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncGuesses(game, outcome string)
	IncGamesFinished(game, result string)
	IncAssignmentsCreated(game string)
	ObserveGuessDuration(game string, duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncDailySummaries(result string)
	SetStartupTime(duration float64)
}
