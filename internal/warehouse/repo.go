package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// ListStockForProducts returns every stock entry with quantity > 0 for the
// requested products, across all warehouses. Advisory read: no locks.
func (r *Repo) ListStockForProducts(ctx context.Context, productIDs []string) ([]StockEntry, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT warehouse_id, product_id, quantity
		FROM warehouse_inventory
		WHERE product_id = ANY($1) AND quantity > 0`, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StockEntry
	for rows.Next() {
		var e StockEntry
		if err := rows.Scan(&e.WarehouseID, &e.ProductID, &e.Quantity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListByIDs fetches warehouse records ordered by id, so distance ties
// resolve the same way on every run.
func (r *Repo) ListByIDs(ctx context.Context, ids []string) ([]Warehouse, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, address, city, state, zip_code, country,
		       latitude, longitude, created_at, updated_at
		FROM warehouses
		WHERE id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Warehouse
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.City, &w.State, &w.ZipCode,
			&w.Country, &w.Latitude, &w.Longitude, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
