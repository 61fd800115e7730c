package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	guesses            map[string]int
	gamesFinished      map[string]int
	assignmentsCreated map[string]int
	guessDurations     []float64
	slackNotifSent     int
	slackNotifFailed   int
	dailySummaries     map[string]int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		guesses:            make(map[string]int),
		gamesFinished:      make(map[string]int),
		assignmentsCreated: make(map[string]int),
		dailySummaries:     make(map[string]int),
	}
}

func (m *Mock) IncGuesses(game, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guesses[game+"/"+outcome]++
}

func (m *Mock) IncGamesFinished(game, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesFinished[game+"/"+result]++
}

func (m *Mock) IncAssignmentsCreated(game string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignmentsCreated[game]++
}

func (m *Mock) ObserveGuessDuration(game string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guessDurations = append(m.guessDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncDailySummaries(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dailySummaries[result]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Guesses returns how often IncGuesses was called for game and outcome.
func (m *Mock) Guesses(game, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guesses[game+"/"+outcome]
}

// GamesFinished returns how often IncGamesFinished was called for game and result.
func (m *Mock) GamesFinished(game, result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesFinished[game+"/"+result]
}

// AssignmentsCreated returns how often IncAssignmentsCreated was called for game.
func (m *Mock) AssignmentsCreated(game string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assignmentsCreated[game]
}

// GuessDurations returns a copy of the observed guess durations.
func (m *Mock) GuessDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.guessDurations))
	copy(out, m.guessDurations)
	return out
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// DailySummaries returns how often IncDailySummaries was called with result.
func (m *Mock) DailySummaries(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dailySummaries[result]
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
