package orders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// GetOrder loads an order with its items.
func (r *Repo) GetOrder(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, COALESCE(customer_id::text, ''), customer_name, customer_email,
		       shipping_street, shipping_city, shipping_state, shipping_zip_code, shipping_country,
		       COALESCE(shipping_latitude, 0), COALESCE(shipping_longitude, 0),
		       COALESCE(warehouse_id::text, ''), status, total_cents, COALESCE(transaction_id, ''),
		       created_at, updated_at
		FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
		&o.Shipping.Street, &o.Shipping.City, &o.Shipping.State, &o.Shipping.ZipCode, &o.Shipping.Country,
		&o.ShippingLat, &o.ShippingLon,
		&o.WarehouseID, &o.Status, &o.TotalCents, &o.TransactionID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, order_id, product_id, quantity,
		       product_name, product_sku, unit_price_cents, total_price_cents
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_sku`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.ProductName, &it.ProductSKU, &it.UnitPriceCents, &it.TotalPriceCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}
