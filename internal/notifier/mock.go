package notifier

import (
	"sync"

	"github.com/mauv0809/footle/internal/game"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendDailySummaryFunc  func(report *game.Report, dryRun bool) error
	SendDailySummaryCalls []struct {
		Report *game.Report
		DryRun bool
	}
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendDailySummary(report *game.Report, dryRun bool) error {
	m.mu.Lock()
	m.SendDailySummaryCalls = append(m.SendDailySummaryCalls, struct {
		Report *game.Report
		DryRun bool
	}{report, dryRun})
	fn := m.SendDailySummaryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(report, dryRun)
	}
	return nil
}

// Calls returns the number of SendDailySummary calls so far.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendDailySummaryCalls)
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDailySummaryCalls = nil
}
