package catalog

import (
	"context"
	"sync"
)

var _ Repository = (*MockRepository)(nil)

// MockRepository is a mock implementation of the Repository interface for testing.
// Unset funcs return zero values. It is safe for concurrent use.
type MockRepository struct {
	mu sync.Mutex

	PlayerByIDFunc        func(ctx context.Context, id int64) (*Player, error)
	PlayerByNameFunc      func(ctx context.Context, name string) (*Player, error)
	SearchPlayerNamesFunc func(ctx context.Context, prefix string, limit int) ([]string, error)
	RandomPlayerNamesFunc func(ctx context.Context, limit int) ([]string, error)
	PlayerIDsFunc         func(ctx context.Context) ([]int64, error)
	TransferByIDFunc      func(ctx context.Context, id int64) (*Transfer, error)
	TransferIDsFunc       func(ctx context.Context) ([]int64, error)
	AddPlayerFunc         func(ctx context.Context, in PlayerInput) (*Player, error)
	AddTransferFunc       func(ctx context.Context, in TransferInput) (*Transfer, error)
	ExportFunc            func(ctx context.Context) (*Snapshot, error)
	ImportFunc            func(ctx context.Context, snap *Snapshot) error

	// Call records
	PlayerByNameCalls      []string
	SearchPlayerNamesCalls []string
	RandomPlayerNamesCalls []int
	PlayerIDsCalls         int
	TransferIDsCalls       int
}

// NewMockRepository creates a new mock instance.
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// Reset clears all call records.
func (m *MockRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerByNameCalls = nil
	m.SearchPlayerNamesCalls = nil
	m.RandomPlayerNamesCalls = nil
	m.PlayerIDsCalls = 0
	m.TransferIDsCalls = 0
}

func (m *MockRepository) PlayerByID(ctx context.Context, id int64) (*Player, error) {
	if m.PlayerByIDFunc != nil {
		return m.PlayerByIDFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) PlayerByName(ctx context.Context, name string) (*Player, error) {
	m.mu.Lock()
	m.PlayerByNameCalls = append(m.PlayerByNameCalls, name)
	m.mu.Unlock()
	if m.PlayerByNameFunc != nil {
		return m.PlayerByNameFunc(ctx, name)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) SearchPlayerNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	m.mu.Lock()
	m.SearchPlayerNamesCalls = append(m.SearchPlayerNamesCalls, prefix)
	m.mu.Unlock()
	if m.SearchPlayerNamesFunc != nil {
		return m.SearchPlayerNamesFunc(ctx, prefix, limit)
	}
	return []string{}, nil
}

func (m *MockRepository) RandomPlayerNames(ctx context.Context, limit int) ([]string, error) {
	m.mu.Lock()
	m.RandomPlayerNamesCalls = append(m.RandomPlayerNamesCalls, limit)
	m.mu.Unlock()
	if m.RandomPlayerNamesFunc != nil {
		return m.RandomPlayerNamesFunc(ctx, limit)
	}
	return []string{}, nil
}

func (m *MockRepository) PlayerIDs(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	m.PlayerIDsCalls++
	m.mu.Unlock()
	if m.PlayerIDsFunc != nil {
		return m.PlayerIDsFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) TransferByID(ctx context.Context, id int64) (*Transfer, error) {
	if m.TransferByIDFunc != nil {
		return m.TransferByIDFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) TransferIDs(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	m.TransferIDsCalls++
	m.mu.Unlock()
	if m.TransferIDsFunc != nil {
		return m.TransferIDsFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) AddPlayer(ctx context.Context, in PlayerInput) (*Player, error) {
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(ctx, in)
	}
	return &Player{Name: in.Name}, nil
}

func (m *MockRepository) AddTransfer(ctx context.Context, in TransferInput) (*Transfer, error) {
	if m.AddTransferFunc != nil {
		return m.AddTransferFunc(ctx, in)
	}
	return &Transfer{}, nil
}

func (m *MockRepository) Export(ctx context.Context) (*Snapshot, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx)
	}
	return &Snapshot{Version: 1}, nil
}

func (m *MockRepository) Import(ctx context.Context, snap *Snapshot) error {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, snap)
	}
	return nil
}
