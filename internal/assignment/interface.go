package assignment

import (
	"context"
	"errors"

	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/daily"
)

var (
	// ErrCatalogEmpty means there is nothing to draw a daily target from.
	ErrCatalogEmpty = errors.New("assignment: catalog is empty")
	// ErrNotAssigned means no target has been drawn for the key yet.
	ErrNotAssigned = errors.New("assignment: not assigned")
)

// Store persists daily targets. Assign* are insert-or-ignore: they return the
// id that ended up stored and whether this call created it.
type Store interface {
	PlayerAssignment(ctx context.Context, userID string, day daily.Day) (int64, error)
	AssignPlayer(ctx context.Context, userID string, day daily.Day, playerID int64) (int64, bool, error)
	TransferQuestion(ctx context.Context, day daily.Day) (int64, error)
	AssignTransfer(ctx context.Context, day daily.Day, transferID int64) (int64, bool, error)
}

// Catalog is the part of the entity catalog the resolver draws from.
type Catalog interface {
	PlayerIDs(ctx context.Context) ([]int64, error)
	PlayerByID(ctx context.Context, id int64) (*catalog.Player, error)
	TransferIDs(ctx context.Context) ([]int64, error)
	TransferByID(ctx context.Context, id int64) (*catalog.Transfer, error)
}
