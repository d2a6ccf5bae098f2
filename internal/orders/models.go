package orders

import (
	"time"

	"github.com/navidnahidi/canals/internal/geocode"
)

type Product struct {
	ID          string
	Name        string
	SKU         string
	Description string
	PriceCents  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID            string
	CustomerID    string
	CustomerName  string // denormalized snapshot
	CustomerEmail string
	Shipping      geocode.Address
	ShippingLat   float64
	ShippingLon   float64
	WarehouseID   string
	Status        Status
	TotalCents    int64
	TransactionID string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem snapshots product name/sku/price at order creation so later
// catalog edits never rewrite history.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Quantity        int
	ProductName     string
	ProductSKU      string
	UnitPriceCents  int64
	TotalPriceCents int64
}

// LineItem is one (product, quantity) pairing of an incoming order.
type LineItem struct {
	ProductID string
	Quantity  int
}

type CustomerInput struct {
	ID    string
	Name  string
	Email string
}
