package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/navidnahidi/canals/internal/geo"
	"github.com/navidnahidi/canals/internal/geocode"
)

// DraftItem carries the catalog snapshot the orchestrator priced outside
// any lock.
type DraftItem struct {
	ProductID      string
	ProductName    string
	ProductSKU     string
	Quantity       int
	UnitPriceCents int64
}

func (d DraftItem) TotalPriceCents() int64 {
	return d.UnitPriceCents * int64(d.Quantity)
}

type OrderDraft struct {
	Shipping      geocode.Address
	Coordinates   geo.Coordinates
	WarehouseID   string
	TotalCents    int64
	TransactionID string
	Items         []DraftItem
}

type ReservationRepo struct{ DB *pgxpool.Pool }

// Reserve runs the authoritative phase in one transaction: lock the chosen
// warehouse's stock rows (FOR UPDATE, acquired in product-id order to avoid
// circular waits) -> re-check sufficiency -> decrement -> resolve customer
// -> insert order + items -> commit. Any error rolls everything back, so no
// partial decrement or orphan order is ever visible.
func (r *ReservationRepo) Reserve(ctx context.Context, cust CustomerInput, draft OrderDraft) (*Order, error) {
	items := make([]DraftItem, len(draft.Items))
	copy(items, draft.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	productIDs := make([]string, len(items))
	for i, it := range items {
		productIDs[i] = it.ProductID
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// 1) exclusive row locks on every (warehouse, product) stock row
	rows, err := tx.Query(ctx, `
		SELECT product_id, quantity
		FROM warehouse_inventory
		WHERE warehouse_id = $1 AND product_id = ANY($2)
		ORDER BY product_id
		FOR UPDATE`, draft.WarehouseID, productIDs)
	if err != nil {
		return nil, err
	}
	locked := map[string]int{}
	for rows.Next() {
		var productID string
		var qty int
		if err := rows.Scan(&productID, &qty); err != nil {
			rows.Close()
			return nil, err
		}
		locked[productID] = qty
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 2) re-check under lock; selection ran without locks and may be stale
	for _, it := range items {
		if locked[it.ProductID] < it.Quantity {
			return nil, &InsufficientInventoryError{
				ProductID:   it.ProductID,
				WarehouseID: draft.WarehouseID,
				Required:    it.Quantity,
				Available:   locked[it.ProductID],
			}
		}
	}

	// 3) decrement
	for _, it := range items {
		ct, err := tx.Exec(ctx, `
			UPDATE warehouse_inventory
			SET quantity = quantity - $3, updated_at = now()
			WHERE warehouse_id = $1 AND product_id = $2`,
			draft.WarehouseID, it.ProductID, it.Quantity)
		if err != nil {
			return nil, err
		}
		if ct.RowsAffected() != 1 {
			return nil, fmt.Errorf("stock row vanished for product %s in warehouse %s", it.ProductID, draft.WarehouseID)
		}
	}

	// 4) resolve customer
	customerID, err := resolveCustomer(ctx, tx, cust)
	if err != nil {
		return nil, err
	}

	// 5) order row
	order := &Order{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		Shipping:      draft.Shipping,
		ShippingLat:   draft.Coordinates.Latitude,
		ShippingLon:   draft.Coordinates.Longitude,
		WarehouseID:   draft.WarehouseID,
		Status:        StatusProcessing,
		TotalCents:    draft.TotalCents,
		TransactionID: draft.TransactionID,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			id, customer_id, customer_name, customer_email,
			shipping_street, shipping_city, shipping_state, shipping_zip_code, shipping_country,
			shipping_latitude, shipping_longitude,
			warehouse_id, status, total_cents, transaction_id
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING created_at, updated_at`,
		order.ID, order.CustomerID, order.CustomerName, order.CustomerEmail,
		order.Shipping.Street, order.Shipping.City, order.Shipping.State,
		order.Shipping.ZipCode, order.Shipping.Country,
		order.ShippingLat, order.ShippingLon,
		order.WarehouseID, order.Status, order.TotalCents, order.TransactionID,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// 6) items with denormalized snapshot
	order.Items = make([]OrderItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		item := OrderItem{
			ID:              uuid.NewString(),
			OrderID:         order.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			ProductName:     it.ProductName,
			ProductSKU:      it.ProductSKU,
			UnitPriceCents:  it.UnitPriceCents,
			TotalPriceCents: it.TotalPriceCents(),
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, quantity,
				product_name, product_sku, unit_price_cents, total_price_cents
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity,
			item.ProductName, item.ProductSKU, item.UnitPriceCents, item.TotalPriceCents,
		); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// resolveCustomer looks up by id when supplied, otherwise upserts on email.
// The ON CONFLICT no-op update makes concurrent first orders for the same
// email converge on one row instead of racing lookup-then-create.
func resolveCustomer(ctx context.Context, tx pgx.Tx, cust CustomerInput) (string, error) {
	if cust.ID != "" {
		var id string
		err := tx.QueryRow(ctx, `SELECT id FROM customers WHERE id = $1`, cust.ID).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", err
		}
		// unknown id falls through to email resolution
	}

	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO customers (id, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id`,
		uuid.NewString(), cust.Name, cust.Email,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
