package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("catalog: not found")

// Repository is the read and seed surface of the entity catalog.
type Repository interface {
	PlayerByID(ctx context.Context, id int64) (*Player, error)
	PlayerByName(ctx context.Context, name string) (*Player, error)
	SearchPlayerNames(ctx context.Context, prefix string, limit int) ([]string, error)
	RandomPlayerNames(ctx context.Context, limit int) ([]string, error)
	PlayerIDs(ctx context.Context) ([]int64, error)
	TransferByID(ctx context.Context, id int64) (*Transfer, error)
	TransferIDs(ctx context.Context) ([]int64, error)
	AddPlayer(ctx context.Context, in PlayerInput) (*Player, error)
	AddTransfer(ctx context.Context, in TransferInput) (*Transfer, error)
	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, snap *Snapshot) error
}
