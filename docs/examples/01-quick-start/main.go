package main

import (
	"fmt"
	"log"

	"github.com/bbonenfant/dted/pkg/dted"
)

func main() {
	// Parse headers and load the elevation grid
	tile, err := dted.Open("n41_w071_1arc_v3.dt2")
	if err != nil {
		log.Fatal(err)
	}

	// Print tile info
	origin, _ := tile.Origin().Format(2)
	lonCount, latCount := tile.Shape()
	fmt.Printf("Origin: %s\n", origin)
	fmt.Printf("Product: %s edition %d\n", tile.ProductLevel(), tile.Edition())
	fmt.Printf("Grid: %d columns x %d rows\n", lonCount, latCount)

	// Query the elevation of the nearest grid point
	location := dted.LatLon{Latitude: 41.367, Longitude: -70.561}
	elevation, err := tile.Elevation(location)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Elevation: %dm\n", elevation)
}
