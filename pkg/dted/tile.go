package dted

import (
	"time"

	"github.com/bbonenfant/dted/internal/parser"
)

// Tile reads data from a single DTED file.
//
// Construction always parses the three header records (UHL, DSI, ACC).
// The elevation grid is loaded eagerly by default; with InMemory disabled,
// Elevation seeks directly to the needed data block in the backing file.
// The file handle is never held open between calls.
//
// A loaded grid is read-only, so concurrent Elevation calls are safe.
// Concurrent LoadData calls on the same Tile must be serialized by the
// caller.
type Tile struct {
	inner *parser.Tile
}

// OpenOptions configures Open behavior.
type OpenOptions struct {
	// InMemory controls whether the elevation grid is loaded eagerly.
	InMemory bool

	// VerifyChecksum controls per-block checksum verification during the
	// eager load. Strongly recommended; disabling accepts the risk of
	// corrupt data.
	VerifyChecksum bool

	// OnVoidData, if set, is called with the number of void samples when a
	// loaded grid contains any.
	OnVoidData func(voidSamples int)
}

// DefaultOpenOptions returns options that load the grid eagerly with
// checksums enabled.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{InMemory: true, VerifyChecksum: true}
}

// LoadOptions configures Tile.LoadData.
type LoadOptions struct {
	VerifyChecksum bool
	OnVoidData     func(voidSamples int)
}

// DefaultLoadOptions returns load options with checksums enabled.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{VerifyChecksum: true}
}

// Open opens a DTED file with default options: headers parsed and the full
// elevation grid loaded with checksum verification.
func Open(path string) (*Tile, error) {
	return OpenWithOptions(path, DefaultOpenOptions())
}

// OpenWithOptions opens a DTED file. File-open failures (including
// fs.ErrNotExist) are returned as-is; structurally invalid files fail with
// errors matched by IsInvalidFile.
func OpenWithOptions(path string, opts OpenOptions) (*Tile, error) {
	inner, err := parser.New(path, parser.TileOptions{
		InMemory: opts.InMemory,
		Load: parser.LoadDataOptions{
			VerifyChecksum: opts.VerifyChecksum,
			OnVoidData:     opts.OnVoidData,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Tile{inner: inner}, nil
}

// Path returns the path to the backing DTED file.
func (t *Tile) Path() string { return t.inner.Path() }

// Origin returns the tile origin (lower-left corner) from the DSI record.
func (t *Tile) Origin() LatLon { return LatLon(t.inner.DSI().Origin) }

// SouthWestCorner returns the south-west corner of the tile's coverage.
func (t *Tile) SouthWestCorner() LatLon { return LatLon(t.inner.DSI().SouthWestCorner) }

// NorthWestCorner returns the north-west corner of the tile's coverage.
func (t *Tile) NorthWestCorner() LatLon { return LatLon(t.inner.DSI().NorthWestCorner) }

// NorthEastCorner returns the north-east corner of the tile's coverage.
func (t *Tile) NorthEastCorner() LatLon { return LatLon(t.inner.DSI().NorthEastCorner) }

// SouthEastCorner returns the south-east corner of the tile's coverage.
func (t *Tile) SouthEastCorner() LatLon { return LatLon(t.inner.DSI().SouthEastCorner) }

// Shape returns the grid dimensions as (longitude lines, latitude points).
func (t *Tile) Shape() (lonCount, latCount int) {
	shape := t.inner.DSI().Shape
	return shape.Longitude, shape.Latitude
}

// LatitudeInterval returns the latitude data interval in seconds.
func (t *Tile) LatitudeInterval() float64 { return t.inner.DSI().LatitudeInterval }

// LongitudeInterval returns the longitude data interval in seconds.
func (t *Tile) LongitudeInterval() float64 { return t.inner.DSI().LongitudeInterval }

// Orientation returns the clockwise orientation angle with respect to true
// north, usually 0 for DTED.
func (t *Tile) Orientation() float64 { return t.inner.DSI().Orientation }

// Coverage returns the coverage figure from the DSI record. A raw value of
// 0 in the file is reported as 1.0 (full coverage); other values pass
// through as stored.
func (t *Tile) Coverage() float64 { return t.inner.DSI().Coverage }

// ProductLevel returns the DMA series designator, e.g. "DTED1" or "DTED2".
func (t *Tile) ProductLevel() string { return t.inner.DSI().ProductLevel }

// Edition returns the data edition number.
func (t *Tile) Edition() int { return t.inner.DSI().Edition }

// SecurityCode returns the security code from the DSI record.
func (t *Tile) SecurityCode() string { return t.inner.DSI().SecurityCode }

// Reference returns the unique reference number from the UHL record.
func (t *Tile) Reference() string { return t.inner.UHL().Reference }

// VerticalDatum returns the name of the vertical datum.
func (t *Tile) VerticalDatum() string { return t.inner.DSI().VerticalDatum }

// HorizontalDatum returns the name of the horizontal datum.
func (t *Tile) HorizontalDatum() string { return t.inner.DSI().HorizontalDatum }

// CollectionSystem returns the name of the digitizing or collection system.
func (t *Tile) CollectionSystem() string { return t.inner.DSI().CollectionSystem }

// CompilationDate returns the compilation date at year-month granularity,
// or nil when the file does not record one.
func (t *Tile) CompilationDate() *time.Time { return t.inner.DSI().CompilationDate }

// VerticalAccuracy returns the absolute vertical accuracy in meters from
// the UHL record, or nil when unavailable.
func (t *Tile) VerticalAccuracy() *int { return t.inner.UHL().VerticalAccuracy }

// Accuracy holds the four accuracy figures of the ACC record, each in
// meters and nil when unavailable.
type Accuracy struct {
	AbsoluteHorizontal *int
	AbsoluteVertical   *int
	RelativeHorizontal *int
	RelativeVertical   *int
}

// Accuracy returns the accuracy figures from the ACC record.
func (t *Tile) Accuracy() Accuracy {
	acc := t.inner.ACC()
	return Accuracy{
		AbsoluteHorizontal: acc.AbsoluteHorizontal,
		AbsoluteVertical:   acc.AbsoluteVertical,
		RelativeHorizontal: acc.RelativeHorizontal,
		RelativeVertical:   acc.RelativeVertical,
	}
}

// Bounds returns the tile's coverage as an axis-aligned bounding box.
func (t *Tile) Bounds() Bounds {
	sw := t.inner.DSI().SouthWestCorner
	ne := t.inner.DSI().NorthEastCorner
	return Bounds{
		MinLon: sw.Longitude,
		MinLat: sw.Latitude,
		MaxLon: ne.Longitude,
		MaxLat: ne.Latitude,
	}
}

// Contains reports whether a location falls within the tile's coverage,
// inclusive on all edges.
func (t *Tile) Contains(location LatLon) bool {
	return t.inner.Contains(parser.LatLon(location))
}

// Elevation returns the elevation in meters of the DTED point nearest to
// location, from memory when the grid is loaded and otherwise by reading a
// single data block from the file. Fails with ErrNoElevationData when the
// location is outside the tile.
func (t *Tile) Elevation(location LatLon) (int16, error) {
	elevation, err := t.inner.Elevation(parser.LatLon(location))
	return elevation, translateError(err)
}

// LoadData reads the full elevation grid into memory, replacing any
// previously loaded grid only on success.
func (t *Tile) LoadData(opts LoadOptions) error {
	return t.inner.LoadData(parser.LoadDataOptions{
		VerifyChecksum: opts.VerifyChecksum,
		OnVoidData:     opts.OnVoidData,
	})
}

// DataLoaded reports whether the elevation grid is resident in memory.
func (t *Tile) DataLoaded() bool { return t.inner.DataLoaded() }

// Data returns the elevation grid indexed [longitude][latitude], or
// ErrDataNotLoaded before LoadData. The returned grid is shared and must
// not be mutated.
func (t *Tile) Data() ([][]int16, error) {
	data, err := t.inner.Data()
	return data, translateError(err)
}
