package parser

import (
	"fmt"
	"strconv"
	"time"
)

const dsiSentinel = "DSI"

// DataSetIdentification holds the contents of the 648-byte Data Set
// Identification (DSI) record of a DTED file.
type DataSetIdentification struct {
	SecurityCode         string
	ReleaseMarkings      string
	HandlingDescription  string
	ProductLevel         string // DMA series designator, e.g. "DTED1" or "DTED2".
	Reference            string
	Edition              int
	MergeVersion         string
	MaintenanceDate      *time.Time // Year-month granularity; nil when unset.
	MergeDate            *time.Time
	MaintenanceCode      string
	ProducerCode         string
	ProductSpecification string
	SpecificationDate    *time.Time
	VerticalDatum        string
	HorizontalDatum      string
	CollectionSystem     string
	CompilationDate      *time.Time

	Origin            LatLon
	SouthWestCorner   LatLon
	NorthWestCorner   LatLon
	NorthEastCorner   LatLon
	SouthEastCorner   LatLon
	Orientation       float64 // Clockwise angle from true north, usually 0.
	LatitudeInterval  float64
	LongitudeInterval float64
	Shape             GridShape
	Coverage          float64 // Raw coverage figure; 0 in the file means full coverage (1.0).
}

// ParseDSI parses the Data Set Identification record. The record is exactly
// 648 bytes; data must contain at least that.
func ParseDSI(data []byte) (*DataSetIdentification, error) {
	if len(data) < DSISize {
		return nil, &ErrTruncatedRecord{Record: "Data Set Identification", Expected: DSISize, Actual: len(data)}
	}

	r := newFieldReader(data)
	if sentinel := r.readString(3); sentinel != dsiSentinel {
		return nil, &ErrBadSentinel{Record: "Data Set Identification", Expected: dsiSentinel, Found: sentinel}
	}

	dsi := &DataSetIdentification{}
	dsi.SecurityCode = r.readString(1)
	dsi.ReleaseMarkings = r.readString(2)
	dsi.HandlingDescription = r.readString(27)
	r.skip(26) // reserved
	dsi.ProductLevel = r.readString(5)
	dsi.Reference = r.readString(15)
	r.skip(8) // reserved

	var err error
	if dsi.Edition, err = r.readInt(2); err != nil {
		return nil, err
	}
	dsi.MergeVersion = r.readString(1)
	if dsi.MaintenanceDate, err = parseMonthDate(r.readString(4)); err != nil {
		return nil, err
	}
	if dsi.MergeDate, err = parseMonthDate(r.readString(4)); err != nil {
		return nil, err
	}
	dsi.MaintenanceCode = r.readString(4)
	dsi.ProducerCode = r.readString(8)
	r.skip(16) // reserved
	dsi.ProductSpecification = r.readString(11)
	if dsi.SpecificationDate, err = parseMonthDate(r.readString(4)); err != nil {
		return nil, err
	}
	dsi.VerticalDatum = r.readString(3)
	dsi.HorizontalDatum = r.readString(5)
	dsi.CollectionSystem = r.readString(10)
	if dsi.CompilationDate, err = parseMonthDate(r.readString(4)); err != nil {
		return nil, err
	}
	r.skip(22) // reserved

	// The origin carries one decimal of seconds precision; the corners do not.
	if dsi.Origin, err = ParseDTEDLatLon(r.readString(9), r.readString(10)); err != nil {
		return nil, err
	}
	if dsi.SouthWestCorner, err = ParseDTEDLatLon(r.readString(7), r.readString(8)); err != nil {
		return nil, err
	}
	if dsi.NorthWestCorner, err = ParseDTEDLatLon(r.readString(7), r.readString(8)); err != nil {
		return nil, err
	}
	if dsi.NorthEastCorner, err = ParseDTEDLatLon(r.readString(7), r.readString(8)); err != nil {
		return nil, err
	}
	if dsi.SouthEastCorner, err = ParseDTEDLatLon(r.readString(7), r.readString(8)); err != nil {
		return nil, err
	}

	if dsi.Orientation, err = r.readFloat(9); err != nil {
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
	dsi.LongitudeInterval = float64(longitudeInterval) / 10
	dsi.LatitudeInterval = float64(latitudeInterval) / 10

	// The DSI stores the grid counts in (latitude, longitude) order; swap so
	// Shape always reads (longitude, latitude) like the UHL.
	latitudeCount, err := r.readInt(4)
	if err != nil {
		return nil, err
	}
	longitudeCount, err := r.readInt(4)
	if err != nil {
		return nil, err
	}
	dsi.Shape = GridShape{Longitude: longitudeCount, Latitude: latitudeCount}

	if dsi.Coverage, err = r.readFloat(2); err != nil {
		return nil, err
	}
	if dsi.Coverage == 0 {
		dsi.Coverage = 1
	}

	return dsi, nil
}

// DataBlockLength returns the length in bytes of one block of the data
// record of the DTED file described by this DSI: an 8-byte block header,
// one 2-byte sample per latitude point, and a 4-byte checksum.
func (d *DataSetIdentification) DataBlockLength() int {
	return 12 + 2*d.Shape.Latitude
}

// parseMonthDate parses a nullable DTED YYMM date field. A month of "00"
// denotes no date. Two-digit years 69-99 map to the 1900s, 00-68 to the
// 2000s. The returned date is pinned to the first day of the month.
func parseMonthDate(field string) (*time.Time, error) {
	if len(field) != 4 {
		return nil, fmt.Errorf("date field %q must be 4 characters", field)
	}
	if field[2:] == "00" {
		return nil, nil
	}
	year, err := strconv.Atoi(field[:2])
	if err != nil {
		return nil, fmt.Errorf("date field %q: %w", field, err)
	}
	month, err := strconv.Atoi(field[2:])
	if err != nil {
		return nil, fmt.Errorf("date field %q: %w", field, err)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("date field %q: month out of range", field)
	}
	if year <= 68 {
		year += 2000
	} else {
		year += 1900
	}
	date := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return &date, nil
}
