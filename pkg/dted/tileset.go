package dted

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TileSet aggregates every DTED file under one or more directories and
// routes point queries to the covering tile.
//
// Scanning parses only header records, so building a TileSet over
// thousands of tiles is cheap; elevation queries then either seek single
// blocks from the backing files or, when a cache is configured, keep
// recently used grids resident.
//
// Queries are safe for concurrent use. Include must not run concurrently
// with itself.
type TileSet struct {
	opts  ScanOptions
	cache *TileCache

	mutex   sync.RWMutex
	index   *TileIndex
	sources []string
}

// NewTileSet scans root recursively and indexes every DTED file found.
//
// Example:
//
//	tiles, err := dted.NewTileSet("/data/dted", dted.DefaultScanOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	elevation, err := tiles.Elevation(location)
func NewTileSet(root string, opts ScanOptions) (*TileSet, error) {
	s := &TileSet{opts: opts, index: NewTileIndex()}
	if opts.CacheSize > 0 {
		cache, err := NewTileCache(opts.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	if err := s.Include(root); err != nil {
		return nil, err
	}
	return s, nil
}

// Include scans an additional directory into the tile set.
func (s *TileSet) Include(root string) error {
	paths, err := s.discover(root)
	if err != nil {
		return err
	}

	var (
		group     errgroup.Group
		resultsMu sync.Mutex
		tiles     []*Tile
		scanned   int
	)
	group.SetLimit(s.opts.workers())
	for _, path := range paths {
		path := path
		group.Go(func() error {
			tile, err := OpenWithOptions(path, OpenOptions{InMemory: false})

			resultsMu.Lock()
			defer resultsMu.Unlock()
			scanned++
			if s.opts.Progress != nil {
				s.opts.Progress(scanned, len(paths))
			}
			switch {
			case err == nil:
				tiles = append(tiles, tile)
			case s.skippable(err):
				if s.opts.ErrorLog != nil {
					fmt.Fprintf(s.opts.ErrorLog, "skipping %s: %v\n", path, err)
				}
			default:
				return fmt.Errorf("scan %s: %w", path, err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sources = append(s.sources, root)
	for _, tile := range tiles {
		s.index.Insert(tile)
	}
	return nil
}

// discover walks root and returns the candidate file paths, applying the
// suffix filter when one is configured.
func (s *TileSet) discover(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if len(s.opts.Suffixes) > 0 && !slices.Contains(s.opts.Suffixes, filepath.Ext(path)) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}

// skippable reports whether a per-file scan error is skipped rather than
// aborting the scan. Without a suffix filter, files that are simply not
// DTED are always skipped.
func (s *TileSet) skippable(err error) bool {
	if s.opts.SkipErrors {
		return true
	}
	return len(s.opts.Suffixes) == 0 && IsInvalidFile(err)
}

// Sources returns the directories scanned into the tile set.
func (s *TileSet) Sources() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.sources)
}

// Len returns the number of indexed tiles.
func (s *TileSet) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.index.Len()
}

// Tiles returns every indexed tile.
func (s *TileSet) Tiles() []*Tile {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.index.All())
}

// Contains reports whether any tile covers the location.
func (s *TileSet) Contains(location LatLon) bool {
	return len(s.AllTiles(location)) > 0
}

// Tile returns a tile covering the location. When several tiles overlap
// it, which one is returned is unspecified. Fails with ErrNoElevationData
// when no tile covers the location.
func (s *TileSet) Tile(location LatLon) (*Tile, error) {
	tiles := s.AllTiles(location)
	if len(tiles) == 0 {
		return nil, &ErrNoElevationData{Location: location}
	}
	return tiles[0], nil
}

// AllTiles returns every tile covering the location.
func (s *TileSet) AllTiles(location LatLon) []*Tile {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.index.Search(location)
}

// Elevation returns the elevation of the DTED point nearest to location
// from a covering tile. With a cache configured, the covering tile's grid
// is loaded (and kept) in memory; otherwise the single needed data block
// is read from disk.
func (s *TileSet) Elevation(location LatLon) (int16, error) {
	tile, err := s.Tile(location)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		loaded, err := s.cache.Get(tile.Path(), func() (*Tile, error) {
			return OpenWithOptions(tile.Path(), OpenOptions{InMemory: true, VerifyChecksum: true})
		})
		if err != nil {
			return 0, err
		}
		tile = loaded
	}
	return tile.Elevation(location)
}
