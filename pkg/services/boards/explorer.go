// Package boards is the facade between the HTTP layer and the raw Monday.com
// store: it fetches board items and hands back normalized domain records.
package boards

import (
	"context"

	"github.com/bi-tools/board-pulse/pkg/models/domain"
	"github.com/bi-tools/board-pulse/pkg/services/normalize"
	"github.com/bi-tools/board-pulse/pkg/store/monday"
	"github.com/rs/zerolog"
)

// Explorer exposes normalized board data.
type Explorer interface {
	GetDeals(ctx context.Context, forceRefresh bool) ([]domain.DealRecord, error)
	GetWorkOrders(ctx context.Context, forceRefresh bool) ([]domain.WorkOrderRecord, error)
	InvalidateCache()
	CacheAgeMinutes() map[string]float64
}

type explorer struct {
	store monday.Store
}

// NewExplorer builds an Explorer over the given store.
func NewExplorer(store monday.Store) Explorer {
	return &explorer{store: store}
}

func (e *explorer) GetDeals(ctx context.Context, forceRefresh bool) ([]domain.DealRecord, error) {
	items, err := e.store.GetDeals(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	deals := normalize.Deals(items)
	zerolog.Ctx(ctx).Info().
		Int("raw", len(items)).
		Int("normalized", len(deals)).
		Msg("normalized deals")
	return deals, nil
}

func (e *explorer) GetWorkOrders(ctx context.Context, forceRefresh bool) ([]domain.WorkOrderRecord, error) {
	items, err := e.store.GetWorkOrders(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	wos := normalize.WorkOrders(items)
	zerolog.Ctx(ctx).Info().
		Int("raw", len(items)).
		Int("normalized", len(wos)).
		Msg("normalized work orders")
	return wos, nil
}

func (e *explorer) InvalidateCache() {
	e.store.InvalidateCache()
}

func (e *explorer) CacheAgeMinutes() map[string]float64 {
	return e.store.CacheAgeMinutes()
}
