package parser

import (
	"fmt"
	"math"
	"strconv"
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
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return LatLon{}, &ErrInvalidCoordinate{Lat: latitude, Lon: longitude}
	}
	return LatLon{Latitude: latitude, Longitude: longitude}, nil
}

// ParseDTEDLatLon constructs a LatLon from DTED record coordinate strings in
// the format [D]DDMMSS[.S]H where
//
//	D: degree value
//	M: minute value
//	S: second value (optionally with one fractional digit)
//	H: hemisphere (N/S for latitude, E/W for longitude)
//
// A hemisphere of S or W negates the coordinate.
func ParseDTEDLatLon(latitudeStr, longitudeStr string) (LatLon, error) {
	latitude, err := parseDTEDCoordinate(latitudeStr, "S")
	if err != nil {
		return LatLon{}, fmt.Errorf("parse latitude %q: %w", latitudeStr, err)
	}
	longitude, err := parseDTEDCoordinate(longitudeStr, "W")
	if err != nil {
		return LatLon{}, fmt.Errorf("parse longitude %q: %w", longitudeStr, err)
	}
	return NewLatLon(latitude, longitude)
}

// Format renders the coordinate as "(LAT{N|S},LON{E|W})" with the given
// decimal precision, e.g. LatLon{41.26, -70}.Format(1) == "(41.3N,70.0W)".
func (l LatLon) Format(precision int) (string, error) {
	if precision < 0 {
		return "", &ErrInvalidPrecision{Precision: precision}
	}
	latHemisphere := "N"
	if l.Latitude < 0 {
		latHemisphere = "S"
	}
	lonHemisphere := "E"
	if l.Longitude < 0 {
		lonHemisphere = "W"
	}
	return fmt.Sprintf("(%.*f%s,%.*f%s)",
		precision, math.Abs(l.Latitude), latHemisphere,
		precision, math.Abs(l.Longitude), lonHemisphere), nil
}

// parseDTEDCoordinate parses a single DTED coordinate string, negating the
// value when the trailing hemisphere character equals negative.
func parseDTEDCoordinate(coordinate, negative string) (float64, error) {
	if len(coordinate) < 2 {
		return 0, fmt.Errorf("coordinate too short")
	}
	sign := 1.0
	if coordinate[len(coordinate)-1:] == negative {
		sign = -1
	}
	degrees, minutes, seconds, err := parseDMS(coordinate[:len(coordinate)-1])
	if err != nil {
		return 0, err
	}
	return sign * dmsToDecimal(degrees, minutes, seconds), nil
}

// parseDMS splits a DTED [D]DDMMSS[.S] numeric field into its
// degree-minute-second components. Seconds carry a fractional digit when a
// decimal point sits two characters from the end.
func parseDMS(coordinate string) (degrees, minutes int, seconds float64, err error) {
	secondsIndex := len(coordinate) - 2
	if secondsIndex >= 2 && coordinate[secondsIndex] == '.' {
		secondsIndex = len(coordinate) - 4
	}
	minutesIndex := secondsIndex - 2
	if minutesIndex < 1 {
		return 0, 0, 0, fmt.Errorf("coordinate %q is too short", coordinate)
	}
	degrees, err = strconv.Atoi(coordinate[:minutesIndex])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("degrees: %w", err)
	}
	minutes, err = strconv.Atoi(coordinate[minutesIndex:secondsIndex])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("minutes: %w", err)
	}
	seconds, err = strconv.ParseFloat(coordinate[secondsIndex:], 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("seconds: %w", err)
	}
	return degrees, minutes, seconds, nil
}

// dmsToDecimal converts a degree-minute-second coordinate to decimal degrees.
func dmsToDecimal(degrees, minutes int, seconds float64) float64 {
	return float64(degrees) + (float64(minutes)+seconds/60)/60
}
