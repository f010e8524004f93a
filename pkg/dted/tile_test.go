package dted_test

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/bbonenfant/dted/internal/dtedtest"
	"github.com/bbonenfant/dted/pkg/dted"
)

// writeTile writes a synthetic DTED file named after its cell into dir and
// returns its path.
func writeTile(t *testing.T, dir string, spec dtedtest.Spec) string {
	t.Helper()
	name := fmt.Sprintf("n%02dw%03d.dt1", spec.OriginLat, -spec.OriginLon)
	path := filepath.Join(dir, name)
	assert.NoError(t, dtedtest.WriteFile(path, spec))
	return path
}

func TestOpen(t *testing.T) {
	path := writeTile(t, t.TempDir(), dtedtest.DefaultSpec(42, -117))

	tile, err := dted.Open(path)
	assert.NoError(t, err)

	assert.Equal(t, path, tile.Path())
	assert.Equal(t, dted.LatLon{Latitude: 42, Longitude: -117}, tile.Origin())
	assert.Equal(t, dted.LatLon{Latitude: 42, Longitude: -117}, tile.SouthWestCorner())
	assert.Equal(t, dted.LatLon{Latitude: 43, Longitude: -116}, tile.NorthEastCorner())
	assert.Equal(t, dted.LatLon{Latitude: 43, Longitude: -117}, tile.NorthWestCorner())
	assert.Equal(t, dted.LatLon{Latitude: 42, Longitude: -116}, tile.SouthEastCorner())

	lonCount, latCount := tile.Shape()
	assert.Equal(t, 5, lonCount)
	assert.Equal(t, 5, latCount)
	assert.Equal(t, 1.0, tile.LatitudeInterval())
	assert.Equal(t, 1.0, tile.LongitudeInterval())
	assert.Equal(t, 0.0, tile.Orientation())
	assert.Equal(t, 1.0, tile.Coverage())
	assert.Equal(t, "DTED1", tile.ProductLevel())
	assert.Equal(t, 1, tile.Edition())

	assert.Equal(t, 5, *tile.VerticalAccuracy())
	accuracy := tile.Accuracy()
	assert.Equal(t, 5, *accuracy.AbsoluteHorizontal)
	assert.Equal(t, 3, *accuracy.AbsoluteVertical)
	assert.Zero(t, accuracy.RelativeHorizontal)
	assert.Equal(t, 4, *accuracy.RelativeVertical)

	assert.True(t, tile.DataLoaded())
	data, err := tile.Data()
	assert.NoError(t, err)
	assert.Equal(t, 5, len(data))
	for lon := range data {
		for lat, elevation := range data[lon] {
			assert.Equal(t, dtedtest.DefaultElevation(lon, lat), elevation)
		}
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := dted.Open(filepath.Join(t.TempDir(), "missing.dt1"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, dted.IsInvalidFile(err))
}

func TestOpen_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.dt1")
	junk := make([]byte, 4000)
	for i := range junk {
		junk[i] = 'x'
	}
	assert.NoError(t, os.WriteFile(path, junk, 0o644))

	_, err := dted.Open(path)
	assert.Error(t, err)
	assert.True(t, dted.IsInvalidFile(err))
}

func TestTile_Elevation(t *testing.T) {
	path := writeTile(t, t.TempDir(), dtedtest.DefaultSpec(42, -117))

	for _, opts := range []dted.OpenOptions{
		{InMemory: true, VerifyChecksum: true},
		{InMemory: false},
	} {
		tile, err := dted.OpenWithOptions(path, opts)
		assert.NoError(t, err)
		assert.Equal(t, opts.InMemory, tile.DataLoaded())

		elevation, err := tile.Elevation(dted.LatLon{Latitude: 42.5, Longitude: -116.5})
		assert.NoError(t, err)
		assert.Equal(t, dtedtest.DefaultElevation(2, 2), elevation)

		_, err = tile.Elevation(dted.LatLon{Latitude: 10, Longitude: 10})
		var noData *dted.ErrNoElevationData
		assert.True(t, errors.As(err, &noData))
		assert.Equal(t, dted.LatLon{Latitude: 10, Longitude: 10}, noData.Location)
	}
}

func TestTile_DataNotLoaded(t *testing.T) {
	path := writeTile(t, t.TempDir(), dtedtest.DefaultSpec(42, -117))

	tile, err := dted.OpenWithOptions(path, dted.OpenOptions{InMemory: false})
	assert.NoError(t, err)

	_, err = tile.Data()
	var notLoaded *dted.ErrDataNotLoaded
	assert.True(t, errors.As(err, &notLoaded))

	assert.NoError(t, tile.LoadData(dted.DefaultLoadOptions()))
	assert.True(t, tile.DataLoaded())
	_, err = tile.Data()
	assert.NoError(t, err)
}

func TestTile_OnVoidData(t *testing.T) {
	spec := dtedtest.DefaultSpec(42, -117)
	spec.Elevation = func(lonIndex, latIndex int) int16 {
		if lonIndex == 1 {
			return dted.VoidDataValue
		}
		return dtedtest.DefaultElevation(lonIndex, latIndex)
	}
	path := writeTile(t, t.TempDir(), spec)

	var voids int
	_, err := dted.OpenWithOptions(path, dted.OpenOptions{
		InMemory:       true,
		VerifyChecksum: true,
		OnVoidData:     func(voidSamples int) { voids = voidSamples },
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, voids)
}

func TestTile_Bounds(t *testing.T) {
	path := writeTile(t, t.TempDir(), dtedtest.DefaultSpec(42, -117))
	tile, err := dted.OpenWithOptions(path, dted.OpenOptions{InMemory: false})
	assert.NoError(t, err)

	bounds := tile.Bounds()
	assert.Equal(t, dted.Bounds{MinLon: -117, MinLat: 42, MaxLon: -116, MaxLat: 43}, bounds)

	assert.True(t, tile.Contains(dted.LatLon{Latitude: 42, Longitude: -117}))
	assert.True(t, tile.Contains(dted.LatLon{Latitude: 43, Longitude: -116}))
	assert.False(t, tile.Contains(dted.LatLon{Latitude: 43.001, Longitude: -116.5}))
}
