package parser

import (
	"fmt"
)

// ErrInvalidCoordinate indicates a coordinate out of valid bounds.
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// ErrInvalidPrecision indicates a negative decimal precision was passed to
// LatLon.Format.
type ErrInvalidPrecision struct {
	Precision int
}

func (e *ErrInvalidPrecision) Error() string {
	return fmt.Sprintf("precision must not be negative: %d", e.Precision)
}

// ErrTruncatedRecord indicates a header record buffer is shorter than the
// record's fixed size.
type ErrTruncatedRecord struct {
	Record   string
	Expected int
	Actual   int
}

func (e *ErrTruncatedRecord) Error() string {
	return fmt.Sprintf("%s record is %d bytes but was provided %d bytes",
		e.Record, e.Expected, e.Actual)
}

// ErrBadSentinel indicates a header record does not start with its magic bytes.
type ErrBadSentinel struct {
	Record   string
	Expected string
	Found    string
}

func (e *ErrBadSentinel) Error() string {
	return fmt.Sprintf("%s records must start with %q, found %q",
		e.Record, e.Expected, e.Found)
}

// ErrBadBlockSentinel indicates a data block does not start with the 0xAA
// sentinel byte.
type ErrBadBlockSentinel struct {
	Column int
	Found  byte
}

func (e *ErrBadBlockSentinel) Error() string {
	return fmt.Sprintf("data block %d must begin with 0x%02X, found 0x%02X",
		e.Column, dataSentinel, e.Found)
}

// ErrChecksumMismatch indicates a data block failed its checksum. Block is
// the block's self-reported index, recovered from the block's leading word.
type ErrChecksumMismatch struct {
	Block    int
	Expected int32
	Computed uint32
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("checksum failed for data block %d: expected %d, found %d",
		e.Block, e.Expected, e.Computed)
}

// ErrTruncatedData indicates the data record is shorter than the grid shape
// requires.
type ErrTruncatedData struct {
	Expected int
	Actual   int
}

func (e *ErrTruncatedData) Error() string {
	return fmt.Sprintf("data record is truncated: need %d bytes, found %d",
		e.Expected, e.Actual)
}

// ErrNoElevationData indicates a queried location is not covered by the tile.
type ErrNoElevationData struct {
	Location LatLon
}

func (e *ErrNoElevationData) Error() string {
	loc, err := e.Location.Format(1)
	if err != nil {
		loc = "<invalid>"
	}
	return fmt.Sprintf("location is not contained within the DTED file: %s", loc)
}

// ErrDataNotLoaded indicates the elevation grid was accessed before LoadData.
type ErrDataNotLoaded struct{}

func (e *ErrDataNotLoaded) Error() string {
	return "elevation data not loaded into memory"
}
