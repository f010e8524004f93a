package dted

import (
	"errors"
	"fmt"

	"github.com/bbonenfant/dted/internal/parser"
)

// ErrNoElevationData indicates a queried location is not covered by any
// tile.
type ErrNoElevationData struct {
	Location LatLon
}

func (e *ErrNoElevationData) Error() string {
	loc, err := e.Location.Format(1)
	if err != nil {
		loc = "<invalid>"
	}
	return fmt.Sprintf("no elevation data for location %s", loc)
}

// ErrDataNotLoaded indicates the elevation grid was accessed before
// LoadData.
type ErrDataNotLoaded struct{}

func (e *ErrDataNotLoaded) Error() string {
	return "elevation data not loaded into memory"
}

// IsInvalidFile reports whether err means a file is not a structurally
// valid DTED file: a truncated or mismarked header record, a bad block
// sentinel, a failed checksum, or a short data record. Callers scanning
// directories use this to skip non-DTED files.
func IsInvalidFile(err error) bool {
	return errors.As(err, new(*parser.ErrTruncatedRecord)) ||
		errors.As(err, new(*parser.ErrBadSentinel)) ||
		errors.As(err, new(*parser.ErrBadBlockSentinel)) ||
		errors.As(err, new(*parser.ErrChecksumMismatch)) ||
		errors.As(err, new(*parser.ErrTruncatedData))
}

// translateError converts internal errors that callers are expected to
// match on into their public counterparts.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var noData *parser.ErrNoElevationData
	if errors.As(err, &noData) {
		return &ErrNoElevationData{Location: LatLon(noData.Location)}
	}
	var notLoaded *parser.ErrDataNotLoaded
	if errors.As(err, &notLoaded) {
		return &ErrDataNotLoaded{}
	}
	return err
}
