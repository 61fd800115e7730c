package assignment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/daily"
	"github.com/mauv0809/footle/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// Picker returns a uniformly random index in [0, n).
type Picker func(n int) int

// Option configures a Resolver.
type Option func(*Resolver)

// WithPicker replaces the random index source, mainly for deterministic tests.
func WithPicker(p Picker) Option {
	return func(r *Resolver) {
		r.pick = p
	}
}

// Resolver hands out the target of the day, drawing it on first access.
type Resolver struct {
	store   Store
	catalog Catalog
	metrics metrics.Metrics
	pick    Picker
	group   singleflight.Group
}

func NewResolver(store Store, cat Catalog, metricsSvc metrics.Metrics, opts ...Option) *Resolver {
	r := &Resolver{
		store:   store,
		catalog: cat,
		metrics: metricsSvc,
		pick:    rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolvePlayer returns the player assigned to userID on day, assigning one if needed.
func (r *Resolver) ResolvePlayer(ctx context.Context, userID string, day daily.Day) (*catalog.Player, error) {
	id, err := r.store.PlayerAssignment(ctx, userID, day)
	if errors.Is(err, ErrNotAssigned) {
		id, err = r.assignPlayer(ctx, userID, day)
	}
	if err != nil {
		return nil, err
	}
	return r.catalog.PlayerByID(ctx, id)
}

func (r *Resolver) assignPlayer(ctx context.Context, userID string, day daily.Day) (int64, error) {
	ids, err := r.catalog.PlayerIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list players: %w", err)
	}
	drawn, err := r.draw(ids)
	if err != nil {
		return 0, err
	}

	id, created, err := r.store.AssignPlayer(ctx, userID, day, drawn)
	if err != nil {
		return 0, err
	}
	if created {
		r.metrics.IncAssignmentsCreated("player")
		log.Debug("Assigned daily player", "user", userID, "day", day)
	}
	return id, nil
}

// ResolveTransfer returns the transfer question of day, drawing it if needed.
// Concurrent first calls in this process share one draw. The draw outlives a
// cancelled caller so the others still get their answer.
func (r *Resolver) ResolveTransfer(ctx context.Context, day daily.Day) (*catalog.Transfer, error) {
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(string(day), func() (any, error) {
		id, err := r.store.TransferQuestion(shared, day)
		if errors.Is(err, ErrNotAssigned) {
			id, err = r.assignTransfer(shared, day)
		}
		if err != nil {
			return nil, err
		}
		return r.catalog.TransferByID(shared, id)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*catalog.Transfer), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TransferForDay returns the transfer question of day without creating one.
func (r *Resolver) TransferForDay(ctx context.Context, day daily.Day) (*catalog.Transfer, error) {
	id, err := r.store.TransferQuestion(ctx, day)
	if err != nil {
		return nil, err
	}
	return r.catalog.TransferByID(ctx, id)
}

func (r *Resolver) assignTransfer(ctx context.Context, day daily.Day) (int64, error) {
	ids, err := r.catalog.TransferIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list transfers: %w", err)
	}
	drawn, err := r.draw(ids)
	if err != nil {
		return 0, err
	}

	id, created, err := r.store.AssignTransfer(ctx, day, drawn)
	if err != nil {
		return 0, err
	}
	if created {
		r.metrics.IncAssignmentsCreated("transfer")
		log.Info("Drew transfer question of the day", "day", day, "transfer_id", id)
	}
	return id, nil
}

func (r *Resolver) draw(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrCatalogEmpty
	}
	return ids[r.pick(len(ids))], nil
}
