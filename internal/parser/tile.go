// Package parser implements the binary reader for DTED terrain elevation
// files: the three fixed-size header records (UHL, DSI, ACC), the data
// block codec, and the Tile type that answers point elevation queries.
package parser

import (
	"errors"
	"io"
	"math"
	"os"
)

// Tile reads data from a single DTED file.
//
// Construction always parses the three header records. The elevation grid
// is optionally loaded into memory; when it is not, Elevation still works
// by seeking directly to the needed data block in the file. The file handle
// is opened and closed within each operation, never held across calls.
//
// A loaded grid is read-only from the query path, so concurrent Elevation
// calls on a loaded Tile are safe. Concurrent LoadData calls are not; the
// caller must serialize them.
type Tile struct {
	path string
	uhl  *UserHeaderLabel
	dsi  *DataSetIdentification
	acc  *AccuracyDescription

	// data is the elevation grid indexed [longitude][latitude], in
	// two's-complement form, or nil when not loaded.
	data [][]int16
}

// LoadDataOptions configures LoadData behavior.
type LoadDataOptions struct {
	// VerifyChecksum controls per-block checksum verification. Disabling it
	// speeds up loading but accepts the risk of corrupt data.
	VerifyChecksum bool

	// OnVoidData, if set, is called with the number of void samples when the
	// loaded grid contains any. Void data is common over bodies of water and
	// is advisory, never an error.
	OnVoidData func(voidSamples int)
}

// DefaultLoadDataOptions returns load options with checksums enabled.
func DefaultLoadDataOptions() LoadDataOptions {
	return LoadDataOptions{VerifyChecksum: true}
}

// TileOptions configures tile construction.
type TileOptions struct {
	// InMemory controls whether the elevation grid is loaded eagerly at
	// construction. When false, headers are still parsed and Elevation
	// reads single blocks from the file on demand.
	InMemory bool

	// Load configures the eager load when InMemory is true.
	Load LoadDataOptions
}

// DefaultTileOptions returns tile options that load the grid eagerly with
// checksums enabled.
func DefaultTileOptions() TileOptions {
	return TileOptions{InMemory: true, Load: DefaultLoadDataOptions()}
}

// New opens a DTED file and parses its header records, optionally loading
// the full elevation grid. File-open failures (including fs.ErrNotExist)
// are returned as-is.
func New(path string, opts TileOptions) (*Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	header := make([]byte, headerSize)
	n, err := io.ReadFull(f, header)
	f.Close()
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	header = header[:n]

	t := &Tile{path: path}
	if t.uhl, err = ParseUHL(segment(header, 0, UHLSize)); err != nil {
		return nil, err
	}
	if t.dsi, err = ParseDSI(segment(header, UHLSize, DSISize)); err != nil {
		return nil, err
	}
	if t.acc, err = ParseACC(segment(header, UHLSize+DSISize, ACCSize)); err != nil {
		return nil, err
	}

	if opts.InMemory {
		if err := t.LoadData(opts.Load); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Path returns the path to the backing DTED file.
func (t *Tile) Path() string { return t.path }

// UHL returns the parsed User Header Label record.
func (t *Tile) UHL() *UserHeaderLabel { return t.uhl }

// DSI returns the parsed Data Set Identification record.
func (t *Tile) DSI() *DataSetIdentification { return t.dsi }

// ACC returns the parsed Accuracy Description record.
func (t *Tile) ACC() *AccuracyDescription { return t.acc }

// DataLoaded reports whether the elevation grid is resident in memory.
func (t *Tile) DataLoaded() bool { return t.data != nil }

// Data returns the elevation grid indexed [longitude][latitude], or
// ErrDataNotLoaded if LoadData has not run.
func (t *Tile) Data() ([][]int16, error) {
	if t.data == nil {
		return nil, &ErrDataNotLoaded{}
	}
	return t.data, nil
}

// LoadData reads the full elevation grid from the file. The grid replaces
// any previously loaded data only on success; a block that fails its
// checksum or a short data record aborts the load and leaves the tile's
// previous state intact.
func (t *Tile) LoadData(opts LoadDataOptions) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(headerSize, io.SeekStart); err != nil {
		return err
	}
	dataRecord, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	blockLength := t.dsi.DataBlockLength()
	longitudeCount := t.dsi.Shape.Longitude
	if len(dataRecord) < longitudeCount*blockLength {
		return &ErrTruncatedData{Expected: longitudeCount * blockLength, Actual: len(dataRecord)}
	}

	voidSamples := 0
	grid := make([][]int16, longitudeCount)
	for column := range grid {
		block := dataRecord[column*blockLength : (column+1)*blockLength]
		samples, err := parseDataBlock(block, column, opts.VerifyChecksum)
		if err != nil {
			return err
		}
		// parseDataBlock allocates, so the buffer is exclusively ours and
		// can be converted in place.
		convertSignedMagnitude(samples)
		for _, sample := range samples {
			if sample == VoidDataValue {
				voidSamples++
			}
		}
		grid[column] = samples
	}

	t.data = grid
	if voidSamples > 0 && opts.OnVoidData != nil {
		opts.OnVoidData(voidSamples)
	}
	return nil
}

// Contains reports whether a location falls within the tile's coverage:
// an axis-aligned bounding box between the DSI south-west and north-east
// corners, inclusive on both ends.
func (t *Tile) Contains(latlon LatLon) bool {
	min := t.dsi.SouthWestCorner
	max := t.dsi.NorthEastCorner
	return min.Latitude <= latlon.Latitude && latlon.Latitude <= max.Latitude &&
		min.Longitude <= latlon.Longitude && latlon.Longitude <= max.Longitude
}

// Elevation returns the elevation in meters of the explicitly defined DTED
// point nearest to latlon. Exact midpoints between two points round half
// away from zero.
//
// If the grid is loaded the lookup is served from memory; otherwise the
// single data block containing the point is read from the file with
// checksum verification enabled. Both paths return identical values.
func (t *Tile) Elevation(latlon LatLon) (int16, error) {
	if !t.Contains(latlon) {
		return 0, &ErrNoElevationData{Location: latlon}
	}

	origin := t.dsi.Origin
	latitudeIndex := int(math.Round(
		(latlon.Latitude - origin.Latitude) * float64(t.dsi.Shape.Latitude-1) / t.dsi.LatitudeInterval))
	longitudeIndex := int(math.Round(
		(latlon.Longitude - origin.Longitude) * float64(t.dsi.Shape.Longitude-1) / t.dsi.LongitudeInterval))

	if t.data != nil {
		return t.data[longitudeIndex][latitudeIndex], nil
	}

	f, err := os.Open(t.path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	blockLength := t.dsi.DataBlockLength()
	if _, err := f.Seek(int64(headerSize+longitudeIndex*blockLength), io.SeekStart); err != nil {
		return 0, err
	}
	block := make([]byte, blockLength)
	if n, err := io.ReadFull(f, block); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return 0, &ErrTruncatedData{Expected: blockLength, Actual: n}
		}
		return 0, err
	}
	samples, err := parseDataBlock(block, longitudeIndex, true)
	if err != nil {
		return 0, err
	}
	convertSignedMagnitude(samples)
	return samples[latitudeIndex], nil
}

// segment slices a record out of the header buffer, clipping to the bytes
// actually read so record parsers report truncation precisely.
func segment(header []byte, offset, size int) []byte {
	if offset >= len(header) {
		return nil
	}
	end := offset + size
	if end > len(header) {
		end = len(header)
	}
	return header[offset:end]
}
