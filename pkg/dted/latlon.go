package dted

import (
	"github.com/bbonenfant/dted/internal/parser"
)

// LatLon is a latitude-longitude coordinate in decimal degrees.
// It is an immutable value type; always pass it by value.
type LatLon struct {
	Latitude  float64
	Longitude float64
}

// NewLatLon validates and constructs a LatLon coordinate.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewLatLon(latitude, longitude float64) (LatLon, error) {
	latlon, err := parser.NewLatLon(latitude, longitude)
	if err != nil {
		return LatLon{}, err
	}
	return LatLon(latlon), nil
}

// Format renders the coordinate as "(LAT{N|S},LON{E|W})" with the given
// decimal precision, e.g. LatLon{41.26, -70}.Format(1) == "(41.3N,70.0W)".
func (l LatLon) Format(precision int) (string, error) {
	return parser.LatLon(l).Format(precision)
}

// VoidDataValue is the sentinel elevation marking missing data, typically
// over bodies of water.
const VoidDataValue = parser.VoidDataValue
