package geocode

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/navidnahidi/canals/internal/geo"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a Address) Formatted() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.ZipCode, a.Country)
}

type Result struct {
	Coordinates      geo.Coordinates
	FormattedAddress string
}

// Geocoder resolves a shipping address to coordinates. Production would wrap
// a real provider; tests substitute doubles.
type Geocoder interface {
	Geocode(ctx context.Context, addr Address) (Result, error)
}

// Static is a provider stand-in: identical input always yields identical
// coordinates (hash of city/state/zip mapped into a rough US range).
type Static struct{}

func NewStatic() *Static { return &Static{} }

func (s *Static) Geocode(ctx context.Context, addr Address) (Result, error) {
	h := hashAddress(fmt.Sprintf("%s-%s-%s", addr.City, addr.State, addr.ZipCode))

	lat := 37.7749 + float64(h%2000)/1000 - 10
	lon := -122.4194 + float64(h%3000)/1000 - 15

	return Result{
		Coordinates: geo.Coordinates{
			Latitude:  round4(lat),
			Longitude: round4(lon),
		},
		FormattedAddress: addr.Formatted(),
	}, nil
}

func hashAddress(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
