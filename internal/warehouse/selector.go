package warehouse

import (
	"context"
	"sort"

	"github.com/navidnahidi/canals/internal/geo"
)

type StockLookup interface {
	ListStockForProducts(ctx context.Context, productIDs []string) ([]StockEntry, error)
}

type WarehouseLookup interface {
	ListByIDs(ctx context.Context, ids []string) ([]Warehouse, error)
}

// Selector is the advisory phase of fulfillment: it reads stock without
// locks, so its answer can be stale by the time the reservation runs. The
// reservation transaction re-checks under lock.
type Selector struct {
	Stock      StockLookup
	Warehouses WarehouseLookup
	Unit       geo.Unit
}

// Eligible returns the ids of warehouses whose recorded stock covers every
// requested product at the required quantity. Empty result is a valid
// outcome, not an error. Ids come back sorted.
func (s *Selector) Eligible(ctx context.Context, required map[string]int) ([]string, error) {
	productIDs := make([]string, 0, len(required))
	for id := range required {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	entries, err := s.Stock.ListStockForProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	// group quantities per warehouse; warehouses with no matching rows
	// never show up and are implicitly out
	byWarehouse := map[string]map[string]int{}
	for _, e := range entries {
		m, ok := byWarehouse[e.WarehouseID]
		if !ok {
			m = map[string]int{}
			byWarehouse[e.WarehouseID] = m
		}
		m[e.ProductID] = e.Quantity
	}

	var eligible []string
	for warehouseID, stock := range byWarehouse {
		ok := true
		for productID, qty := range required {
			if stock[productID] < qty {
				ok = false
				break
			}
		}
		if ok {
			eligible = append(eligible, warehouseID)
		}
	}
	sort.Strings(eligible)
	return eligible, nil
}

// Closest returns the eligible warehouse nearest to dest, or nil when none
// of the candidates has coordinates. Ties resolve to the smallest warehouse
// id: ListByIDs orders by id and only a strictly smaller distance replaces
// the current best.
func (s *Selector) Closest(ctx context.Context, ids []string, dest geo.Coordinates) (*Warehouse, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	warehouses, err := s.Warehouses.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var best *Warehouse
	var bestDistance float64
	for i := range warehouses {
		coords, ok := warehouses[i].Coordinates()
		if !ok {
			continue
		}
		d := dest.DistanceTo(coords, s.Unit)
		if best == nil || d < bestDistance {
			best = &warehouses[i]
			bestDistance = d
		}
	}
	return best, nil
}

// Pick finds the closest warehouse that can satisfy the whole requirement
// map. Returns nil when no warehouse qualifies.
func (s *Selector) Pick(ctx context.Context, required map[string]int, dest geo.Coordinates) (*Warehouse, error) {
	eligible, err := s.Eligible(ctx, required)
	if err != nil {
		return nil, err
	}
	return s.Closest(ctx, eligible, dest)
}
