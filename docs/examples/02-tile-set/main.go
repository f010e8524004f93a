package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bbonenfant/dted/pkg/dted"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <dted-directory>", os.Args[0])
	}

	// Scan a directory tree of DTED files, keeping the 16 most recently
	// used grids in memory. Non-DTED files are skipped and logged.
	opts := dted.DefaultScanOptions()
	opts.CacheSize = 16
	opts.ErrorLog = os.Stderr
	opts.Progress = func(scanned, total int) {
		fmt.Printf("\rscanning %d/%d", scanned, total)
	}

	tiles, err := dted.NewTileSet(os.Args[1], opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nindexed %d tiles\n", tiles.Len())

	// Query a few locations; the tile set routes each to its covering tile.
	locations := []dted.LatLon{
		{Latitude: 41.367, Longitude: -70.561},
		{Latitude: 42.390, Longitude: -71.107},
		{Latitude: 36.579, Longitude: -118.292},
	}
	for _, location := range locations {
		formatted, _ := location.Format(3)
		elevation, err := tiles.Elevation(location)
		if err != nil {
			var noData *dted.ErrNoElevationData
			if errors.As(err, &noData) {
				fmt.Printf("%s: no coverage\n", formatted)
				continue
			}
			log.Fatal(err)
		}
		if elevation == dted.VoidDataValue {
			fmt.Printf("%s: void (water)\n", formatted)
			continue
		}
		fmt.Printf("%s: %dm\n", formatted, elevation)
	}
}
