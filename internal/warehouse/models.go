package warehouse

import (
	"time"

	"github.com/navidnahidi/canals/internal/geo"
)

type Warehouse struct {
	ID        string
	Name      string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Coordinates reports the warehouse position; ok=false means the warehouse
// has no coordinates and is never selectable.
func (w Warehouse) Coordinates() (geo.Coordinates, bool) {
	if w.Latitude == nil || w.Longitude == nil {
		return geo.Coordinates{}, false
	}
	return geo.Coordinates{Latitude: *w.Latitude, Longitude: *w.Longitude}, true
}

// StockEntry is the per (warehouse, product) quantity record. Unique per
// pair; the reservation transaction is the only fulfillment path that
// decrements it.
type StockEntry struct {
	WarehouseID string
	ProductID   string
	Quantity    int
}
