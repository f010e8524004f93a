package parser

import (
	"strconv"
	"strings"
)

const uhlSentinel = "UHL1"

// UserHeaderLabel holds the contents of the 80-byte User Header Label (UHL)
// record at the start of every DTED file.
//
// Intervals are in tenths of arc seconds as stored, divided by ten, so a
// one-arc-second tile reports an interval of 1.0.
type UserHeaderLabel struct {
	Origin            LatLon  // Lower-left corner of the tile.
	LongitudeInterval float64 // Longitude data interval in seconds.
	LatitudeInterval  float64 // Latitude data interval in seconds.
	VerticalAccuracy  *int    // Absolute vertical accuracy in meters, if available.
	SecurityCode      string
	Reference         string
	Shape             GridShape
	MultipleAccuracy  bool
}

// ParseUHL parses the User Header Label from the leading bytes of a DTED
// file. The record is exactly 80 bytes; data must contain at least that.
//
// Field layout (all ASCII, fixed width):
//
//	sentinel "UHL1"       (4 bytes)
//	longitude of origin   (8 bytes, DDDMMSSH)
//	latitude of origin    (8 bytes, DDDMMSSH)
//	longitude interval    (4 bytes, tenths of seconds)
//	latitude interval     (4 bytes, tenths of seconds)
//	vertical accuracy     (4 bytes, "NA" when unavailable)
//	security code         (3 bytes)
//	unique reference      (12 bytes)
//	longitude line count  (4 bytes)
//	latitude point count  (4 bytes)
//	multiple accuracy     (1 byte, '0' = false)
func ParseUHL(data []byte) (*UserHeaderLabel, error) {
	if len(data) < UHLSize {
		return nil, &ErrTruncatedRecord{Record: "User Header Label", Expected: UHLSize, Actual: len(data)}
	}

	r := newFieldReader(data)
	if sentinel := r.readString(4); sentinel != uhlSentinel {
		return nil, &ErrBadSentinel{Record: "User Header Label", Expected: uhlSentinel, Found: sentinel}
	}

	longitudeStr := r.readString(8)
	latitudeStr := r.readString(8)
	origin, err := ParseDTEDLatLon(latitudeStr, longitudeStr)
	if err != nil {
		return nil, err
	}

	longitudeInterval, err := r.readInt(4)
	if err != nil {
		return nil, err
	}
	latitudeInterval, err := r.readInt(4)
	if err != nil {
		return nil, err
	}

	verticalAccuracyField := r.readString(4)
	var verticalAccuracy *int
	if !strings.Contains(verticalAccuracyField, "NA") {
		value, err := strconv.Atoi(strings.TrimSpace(verticalAccuracyField))
		if err != nil {
			return nil, err
		}
		verticalAccuracy = &value
	}

	securityCode := r.readString(3)
	reference := r.readString(12)
	longitudeCount, err := r.readInt(4)
	if err != nil {
		return nil, err
	}
	latitudeCount, err := r.readInt(4)
	if err != nil {
		return nil, err
	}
	multipleAccuracy := r.read(1)[0] != '0'

	return &UserHeaderLabel{
		Origin:            origin,
		LongitudeInterval: float64(longitudeInterval) / 10,
		LatitudeInterval:  float64(latitudeInterval) / 10,
		VerticalAccuracy:  verticalAccuracy,
		SecurityCode:      securityCode,
		Reference:         reference,
		Shape:             GridShape{Longitude: longitudeCount, Latitude: latitudeCount},
		MultipleAccuracy:  multipleAccuracy,
	}, nil
}
