package dted

import (
	"github.com/dhconnelly/rtreego"
)

// Bounds is an axis-aligned geographic bounding box.
type Bounds struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// Contains reports whether a location falls within the bounds, inclusive
// on all edges.
func (b Bounds) Contains(location LatLon) bool {
	return b.MinLat <= location.Latitude && location.Latitude <= b.MaxLat &&
		b.MinLon <= location.Longitude && location.Longitude <= b.MaxLon
}

// TileIndex provides fast point-to-tile lookups over a collection of tiles
// using an R-tree over their coverage boxes. Lookups are O(log N) compared
// to O(N) for a linear scan, which matters for world-scale tile sets.
//
// TileIndex is not safe for concurrent mutation; TileSet guards it with a
// lock.
type TileIndex struct {
	rtree *rtreego.Rtree
	tiles []*Tile
}

// tileEntry wraps a tile for R-tree storage.
type tileEntry struct {
	tile *Tile
	rect rtreego.Rect
}

// Bounds implements the rtreego.Spatial interface.
func (e *tileEntry) Bounds() rtreego.Rect {
	return e.rect
}

// NewTileIndex creates an empty index.
func NewTileIndex() *TileIndex {
	return &TileIndex{rtree: rtreego.NewTree(2, 25, 50)}
}

// Insert adds a tile's coverage box to the index.
func (idx *TileIndex) Insert(tile *Tile) {
	bounds := tile.Bounds()
	point := rtreego.Point{bounds.MinLon, bounds.MinLat}
	lengths := []float64{
		bounds.MaxLon - bounds.MinLon,
		bounds.MaxLat - bounds.MinLat,
	}
	// Degenerate coverage still needs non-zero R-tree dimensions.
	const minLength = 1e-9
	for i, length := range lengths {
		if length < minLength {
			lengths[i] = minLength
		}
	}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return
	}
	idx.rtree.Insert(&tileEntry{tile: tile, rect: rect})
	idx.tiles = append(idx.tiles, tile)
}

// Search returns every tile whose coverage contains the location.
func (idx *TileIndex) Search(location LatLon) []*Tile {
	point := rtreego.Point{location.Longitude, location.Latitude}
	var tiles []*Tile
	for _, spatial := range idx.rtree.SearchIntersect(point.ToRect(1e-9)) {
		entry := spatial.(*tileEntry)
		// The R-tree query is approximate at the edges; confirm with the
		// tile's own inclusive containment test.
		if entry.tile.Contains(location) {
			tiles = append(tiles, entry.tile)
		}
	}
	return tiles
}

// All returns every indexed tile in insertion order.
func (idx *TileIndex) All() []*Tile {
	return idx.tiles
}

// Len returns the number of indexed tiles.
func (idx *TileIndex) Len() int {
	return len(idx.tiles)
}
