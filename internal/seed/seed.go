// Package seed loads the demo catalog, warehouse network, and starting
// inventory. It wipes existing rows first, so it is for local development
// only.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type product struct {
	id, name, sku, description string
	priceCents                 int64
}

type warehouseRow struct {
	id, name, address, city, state, zip, country string
	lat, lon                                     float64
}

type stockRow struct {
	warehouseID, productID string
	quantity               int
}

const (
	productLaptop = "550e8400-e29b-41d4-a716-446655440001"
	productMouse  = "550e8400-e29b-41d4-a716-446655440002"
	productCable  = "550e8400-e29b-41d4-a716-446655440003"

	warehouseSF      = "660e8400-e29b-41d4-a716-446655440001"
	warehouseLA      = "660e8400-e29b-41d4-a716-446655440002"
	warehouseSeattle = "660e8400-e29b-41d4-a716-446655440003"
)

var products = []product{
	{productLaptop, "Laptop", "LAP-001", "High-performance laptop", 129999},
	{productMouse, "Wireless Mouse", "MSE-001", "Ergonomic wireless mouse", 2999},
	{productCable, "USB-C Cable", "CBL-001", "2m USB-C charging cable", 1999},
}

var warehouses = []warehouseRow{
	{warehouseSF, "San Francisco Warehouse", "123 Market St", "San Francisco", "CA", "94105", "USA", 37.7749, -122.4194},
	{warehouseLA, "Los Angeles Warehouse", "456 Spring St", "Los Angeles", "CA", "90013", "USA", 34.0522, -118.2437},
	{warehouseSeattle, "Seattle Warehouse", "789 Pine St", "Seattle", "WA", "98101", "USA", 47.6062, -122.3321},
}

var inventory = []stockRow{
	{warehouseSF, productLaptop, 50},
	{warehouseSF, productMouse, 100},
	{warehouseSF, productCable, 200},
	{warehouseLA, productLaptop, 30},
	{warehouseLA, productMouse, 75},
	{warehouseSeattle, productMouse, 150},
	{warehouseSeattle, productCable, 300},
}

// Run replaces all catalog, warehouse, and inventory data in one
// transaction. Orders and customers are cleared too, since their foreign
// keys point at the rows being replaced.
func Run(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, table := range []string{"order_items", "orders", "warehouse_inventory", "warehouses", "products", "customers"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertProducts(ctx, tx); err != nil {
		return err
	}
	if err := insertWarehouses(ctx, tx); err != nil {
		return err
	}
	if err := insertInventory(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertProducts(ctx context.Context, tx pgx.Tx) error {
	for _, p := range products {
		_, err := tx.Exec(ctx, `
            INSERT INTO products (id, name, sku, description, price_cents)
            VALUES ($1, $2, $3, $4, $5)`,
			p.id, p.name, p.sku, p.description, p.priceCents)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.sku, err)
		}
	}
	return nil
}

func insertWarehouses(ctx context.Context, tx pgx.Tx) error {
	for _, w := range warehouses {
		_, err := tx.Exec(ctx, `
            INSERT INTO warehouses (id, name, address, city, state, zip_code, country, latitude, longitude)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			w.id, w.name, w.address, w.city, w.state, w.zip, w.country, w.lat, w.lon)
		if err != nil {
			return fmt.Errorf("insert warehouse %s: %w", w.name, err)
		}
	}
	return nil
}

func insertInventory(ctx context.Context, tx pgx.Tx) error {
	for _, s := range inventory {
		_, err := tx.Exec(ctx, `
            INSERT INTO warehouse_inventory (warehouse_id, product_id, quantity)
            VALUES ($1, $2, $3)`,
			s.warehouseID, s.productID, s.quantity)
		if err != nil {
			return fmt.Errorf("insert inventory %s/%s: %w", s.warehouseID, s.productID, err)
		}
	}
	return nil
}
