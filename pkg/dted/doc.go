// Package dted provides a reader for DTED (Digital Terrain Elevation Data)
// files: parsed header metadata, elevation grids, and point elevation
// queries over single tiles or whole directories of tiles.
//
// # Basic Usage
//
//	tile, err := dted.Open("n41_w071_1arc_v3.dt2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	location, _ := dted.NewLatLon(41.36, -70.55)
//	elevation, err := tile.Elevation(location)
//
// # Out-of-Memory Lookups
//
// Opening a tile parses only its three header records when InMemory is
// disabled. Elevation queries then seek directly to the single data block
// containing the point, which keeps memory flat when touching many tiles:
//
//	tile, err := dted.OpenWithOptions(path, dted.OpenOptions{InMemory: false})
//	elevation, err := tile.Elevation(location) // reads one block from disk
//
// Both access paths return identical values for the same point.
//
// # Tile Collections
//
// A TileSet aggregates every parseable DTED file under one or more
// directories and routes point queries to the covering tile through an
// R-tree spatial index:
//
//	tiles, err := dted.NewTileSet("/data/dted", dted.DefaultScanOptions())
//	elevation, err := tiles.Elevation(location)
//
// # Void Data
//
// DTED files mark missing samples (typically over water) with the sentinel
// value -32767. Void samples are advisory, never an error: register
// OnVoidData on the load options to be notified when a grid contains any.
package dted
