package parser

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/bbonenfant/dted/internal/dtedtest"
)

// writeTestTile writes a synthetic cell to a temp directory and returns its
// path.
func writeTestTile(t *testing.T, spec dtedtest.Spec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "n42_w117.dt1")
	if err := dtedtest.WriteFile(path, spec); err != nil {
		t.Fatalf("write test tile: %v", err)
	}
	return path
}

func TestNewTileParsesHeaders(t *testing.T) {
	path := writeTestTile(t, dtedtest.DefaultSpec(42, -117))
	tile, err := New(path, TileOptions{InMemory: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tile.UHL().Shape != tile.DSI().Shape {
		t.Errorf("UHL and DSI shapes disagree: %+v vs %+v", tile.UHL().Shape, tile.DSI().Shape)
	}
	if tile.UHL().LatitudeInterval != tile.DSI().LatitudeInterval {
		t.Errorf("latitude intervals disagree: %v vs %v",
			tile.UHL().LatitudeInterval, tile.DSI().LatitudeInterval)
	}
	if tile.UHL().LongitudeInterval != tile.DSI().LongitudeInterval {
		t.Errorf("longitude intervals disagree: %v vs %v",
			tile.UHL().LongitudeInterval, tile.DSI().LongitudeInterval)
	}
	if got := tile.DSI().DataBlockLength(); got != 12+2*tile.DSI().Shape.Latitude {
		t.Errorf("data block length: expected %d, got %d", 12+2*tile.DSI().Shape.Latitude, got)
	}
	if tile.DataLoaded() {
		t.Error("grid should not be loaded with InMemory disabled")
	}
	if _, err := tile.Data(); !errors.As(err, new(*ErrDataNotLoaded)) {
		t.Errorf("Data before load: expected ErrDataNotLoaded, got %v", err)
	}
}

func TestNewTileNotFound(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.dt1"), DefaultTileOptions())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestNewTileRejectsNonDTEDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.dt1")
	if err := os.WriteFile(path, []byte("this is not a DTED file"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(path, DefaultTileOptions())
	var truncErr *ErrTruncatedRecord
	if !errors.As(err, &truncErr) {
		t.Fatalf("expected ErrTruncatedRecord, got %v", err)
	}
}

func TestTileLoadData(t *testing.T) {
	path := writeTestTile(t, dtedtest.DefaultSpec(42, -117))
	tile, err := New(path, DefaultTileOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := tile.Data()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 5 || len(data[0]) != 5 {
		t.Fatalf("grid shape: expected 5x5, got %dx%d", len(data), len(data[0]))
	}
	for lonIndex := range data {
		for latIndex := range data[lonIndex] {
			expected := dtedtest.DefaultElevation(lonIndex, latIndex)
			if data[lonIndex][latIndex] != expected {
				t.Errorf("data[%d][%d]: expected %d, got %d",
					lonIndex, latIndex, expected, data[lonIndex][latIndex])
			}
		}
	}
}

func TestTileElevationPathsAgree(t *testing.T) {
	spec := dtedtest.DefaultSpec(42, -117)
	path := writeTestTile(t, spec)

	inMemory, err := New(path, DefaultTileOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outOfMemory, err := New(path, TileOptions{InMemory: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sw := inMemory.DSI().SouthWestCorner
	ne := inMemory.DSI().NorthEastCorner
	const pointsToCheck = 25
	for i := 0; i < pointsToCheck; i++ {
		for j := 0; j < pointsToCheck; j++ {
			location := LatLon{
				Latitude:  sw.Latitude + (ne.Latitude-sw.Latitude)*float64(i)/(pointsToCheck-1),
				Longitude: sw.Longitude + (ne.Longitude-sw.Longitude)*float64(j)/(pointsToCheck-1),
			}
			fromMemory, err := inMemory.Elevation(location)
			if err != nil {
				t.Fatalf("in-memory elevation at %+v: %v", location, err)
			}
			fromFile, err := outOfMemory.Elevation(location)
			if err != nil {
				t.Fatalf("seek-based elevation at %+v: %v", location, err)
			}
			if fromMemory != fromFile {
				t.Fatalf("elevation mismatch at %+v: in-memory %d, seek-based %d",
					location, fromMemory, fromFile)
			}
		}
	}
}

func TestTileElevationCorners(t *testing.T) {
	path := writeTestTile(t, dtedtest.DefaultSpec(42, -117))
	tile, err := New(path, DefaultTileOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := tile.Data()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := len(data) - 1

	corners := []struct {
		name     string
		location LatLon
		expected int16
	}{
		{"south west", tile.DSI().SouthWestCorner, data[0][0]},
		{"north west", tile.DSI().NorthWestCorner, data[0][last]},
		{"south east", tile.DSI().SouthEastCorner, data[last][0]},
		{"north east", tile.DSI().NorthEastCorner, data[last][last]},
	}
	for _, corner := range corners {
		elevation, err := tile.Elevation(corner.location)
		if err != nil {
			t.Errorf("%s corner: unexpected error: %v", corner.name, err)
			continue
		}
		if elevation != corner.expected {
			t.Errorf("%s corner: expected %d, got %d", corner.name, corner.expected, elevation)
		}
	}
}

func TestTileContains(t *testing.T) {
	path := writeTestTile(t, dtedtest.DefaultSpec(42, -117))
	tile, err := New(path, TileOptions{InMemory: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inside := []LatLon{
		{Latitude: 42, Longitude: -117},
		{Latitude: 43, Longitude: -116},
		{Latitude: 42.5, Longitude: -116.5},
	}
	for _, location := range inside {
		if !tile.Contains(location) {
			t.Errorf("Contains(%+v): expected true", location)
		}
	}

	outside := []LatLon{
		{Latitude: 41.999, Longitude: -116.5},
		{Latitude: 43.001, Longitude: -116.5},
		{Latitude: 42.5, Longitude: -117.001},
		{Latitude: 42.5, Longitude: -115.999},
		{Latitude: 0, Longitude: 0},
	}
	for _, location := range outside {
		if tile.Contains(location) {
			t.Errorf("Contains(%+v): expected false", location)
		}
		if _, err := tile.Elevation(location); !errors.As(err, new(*ErrNoElevationData)) {
			t.Errorf("Elevation(%+v): expected ErrNoElevationData, got %v", location, err)
		}
	}
}

func TestTileElevationRounding(t *testing.T) {
	path := writeTestTile(t, dtedtest.DefaultSpec(42, -117))
	tile, err := New(path, DefaultTileOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := tile.Data()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Grid posts sit every 0.25 degrees. A midpoint offset of 0.125 degrees
	// is an exact .5 index and rounds half away from zero, up to index 1.
	elevation, err := tile.Elevation(LatLon{Latitude: 42.125, Longitude: -117})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elevation != data[0][1] {
		t.Errorf("midpoint query: expected %d (index 1), got %d", data[0][1], elevation)
	}
	if math.Round(0.5) != 1 {
		t.Error("rounding convention changed: expected math.Round(0.5) == 1")
	}
}

func TestTileVoidDataCallback(t *testing.T) {
	spec := dtedtest.DefaultSpec(0, 6)
	spec.Elevation = func(lonIndex, latIndex int) int16 {
		if lonIndex == 2 && latIndex < 3 {
			return VoidDataValue
		}
		return dtedtest.DefaultElevation(lonIndex, latIndex)
	}
	path := writeTestTile(t, spec)

	tile, err := New(path, TileOptions{InMemory: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var voidSamples int
	opts := DefaultLoadDataOptions()
	opts.OnVoidData = func(count int) { voidSamples = count }
	if err := tile.LoadData(opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if voidSamples != 3 {
		t.Errorf("void samples: expected 3, got %d", voidSamples)
	}

	data, err := tile.Data()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data[2][0] != VoidDataValue {
		t.Errorf("expected void sentinel at [2][0], got %d", data[2][0])
	}
}

func TestTileLoadDataChecksumFailure(t *testing.T) {
	spec := dtedtest.DefaultSpec(42, -117)
	spec.CorruptChecksumColumn = 2
	path := writeTestTile(t, spec)

	tile, err := New(path, TileOptions{InMemory: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = tile.LoadData(DefaultLoadDataOptions())
	var checksumErr *ErrChecksumMismatch
	if !errors.As(err, &checksumErr) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
	if tile.DataLoaded() {
		t.Error("failed load must not leave a partial grid")
	}

	// The caller can accept the risk and skip verification.
	if err := tile.LoadData(LoadDataOptions{VerifyChecksum: false}); err != nil {
		t.Fatalf("unexpected error with checksum disabled: %v", err)
	}
}

func TestTileLoadDataTruncated(t *testing.T) {
	spec := dtedtest.DefaultSpec(42, -117)
	spec.TruncateData = true
	path := writeTestTile(t, spec)

	tile, err := New(path, TileOptions{InMemory: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = tile.LoadData(DefaultLoadDataOptions())
	var truncErr *ErrTruncatedData
	if !errors.As(err, &truncErr) {
		t.Fatalf("expected ErrTruncatedData, got %v", err)
	}
	if tile.DataLoaded() {
		t.Error("failed load must not leave a partial grid")
	}
}
