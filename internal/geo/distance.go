package geo

import (
	"fmt"
	"math"
)

type Unit string

const (
	UnitKilometers Unit = "km"
	UnitMiles      Unit = "miles"
)

// Earth radius per unit (Haversine).
const (
	earthRadiusKm = 6371.0
	earthRadiusMi = 3959.0
)

func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitKilometers, UnitMiles:
		return Unit(s), nil
	}
	return "", fmt.Errorf("unknown distance unit: %q", s)
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance returns the great-circle distance between two points using the
// Haversine formula. Inputs are decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64, unit Unit) float64 {
	r := earthRadiusKm
	if unit == UnitMiles {
		r = earthRadiusMi
	}

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return r * c
}

func (c Coordinates) DistanceTo(other Coordinates, unit Unit) float64 {
	return Distance(c.Latitude, c.Longitude, other.Latitude, other.Longitude, unit)
}
