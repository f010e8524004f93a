// Package dtedtest generates small synthetic DTED files for tests. The
// files are structurally valid (sentinels, fixed-offset header fields,
// per-block checksums) with deterministic elevation values, so tests can
// assert exact lookups without shipping real terrain data.
package dtedtest

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Spec describes a synthetic one-degree DTED cell anchored at an integer
// degree origin.
type Spec struct {
	// OriginLat and OriginLon are the cell's south-west corner in whole
	// degrees.
	OriginLat int
	OriginLon int

	// LonCount and LatCount are the grid dimensions. The interval fields are
	// derived so that the full one-degree span maps onto the grid.
	LonCount int
	LatCount int

	// Elevation returns the two's-complement elevation for a grid post.
	// When nil, DefaultElevation is used.
	Elevation func(lonIndex, latIndex int) int16

	// CorruptChecksumColumn, when >= 0, writes a broken checksum into that
	// column's data block.
	CorruptChecksumColumn int

	// TruncateData drops the final data block, leaving the data record
	// shorter than the grid shape requires.
	TruncateData bool
}

// DefaultSpec returns a small valid cell at the given origin.
func DefaultSpec(originLat, originLon int) Spec {
	return Spec{
		OriginLat:             originLat,
		OriginLon:             originLon,
		LonCount:              5,
		LatCount:              5,
		CorruptChecksumColumn: -1,
	}
}

// DefaultElevation is the elevation function used when Spec.Elevation is
// nil. It mixes positive and negative values so signed-magnitude handling
// is exercised.
func DefaultElevation(lonIndex, latIndex int) int16 {
	elevation := int16(100*lonIndex + 7*latIndex)
	if (lonIndex+latIndex)%3 == 0 {
		elevation = -elevation
	}
	return elevation
}

// WriteFile writes a synthetic DTED file described by spec to path.
func WriteFile(path string, spec Spec) error {
	return os.WriteFile(path, Bytes(spec), 0o644)
}

// Bytes renders the full file contents described by spec.
func Bytes(spec Spec) []byte {
	elevation := spec.Elevation
	if elevation == nil {
		elevation = DefaultElevation
	}

	// The parser maps indexes as round(delta_deg * (count-1) / interval), so
	// for a one-degree span the interval field must hold 1.0 (stored value
	// "0010", tenths of seconds) for corner queries to land on the grid
	// edges, matching real one-arc-second files.
	const intervalField = "0010"

	var file []byte
	file = append(file, makeUHL(spec, intervalField)...)
	file = append(file, makeDSI(spec, intervalField)...)
	file = append(file, makeACC()...)

	columns := spec.LonCount
	if spec.TruncateData {
		columns--
	}
	for column := 0; column < columns; column++ {
		samples := make([]int16, spec.LatCount)
		for latIndex := range samples {
			samples[latIndex] = elevation(column, latIndex)
		}
		corrupt := column == spec.CorruptChecksumColumn
		file = append(file, makeBlock(column, samples, corrupt)...)
	}
	return file
}

func makeUHL(spec Spec, intervalField string) []byte {
	record := make([]byte, 0, 80)
	record = append(record, "UHL1"...)
	record = append(record, formatLon(spec.OriginLon)...)
	record = append(record, formatLatWide(spec.OriginLat)...)
	record = append(record, intervalField...) // longitude interval
	record = append(record, intervalField...) // latitude interval
	record = append(record, "0005"...)        // vertical accuracy
	record = append(record, "U  "...)
	record = append(record, "DTEDTEST    "...)
	record = append(record, fmt.Sprintf("%04d", spec.LonCount)...)
	record = append(record, fmt.Sprintf("%04d", spec.LatCount)...)
	record = append(record, '0') // multiple accuracy
	return pad(record, 80)
}

func makeDSI(spec Spec, intervalField string) []byte {
	swLat, swLon := spec.OriginLat, spec.OriginLon
	neLat, neLon := spec.OriginLat+1, spec.OriginLon+1

	record := make([]byte, 0, 648)
	record = append(record, "DSI"...)
	record = append(record, 'U')              // security code
	record = append(record, "  "...)          // release markings
	record = append(record, spaces(27)...)    // handling description
	record = append(record, spaces(26)...)    // reserved
	record = append(record, "DTED1"...)       // product level
	record = append(record, spaces(15)...)    // reference
	record = append(record, spaces(8)...)     // reserved
	record = append(record, "01"...)          // edition
	record = append(record, 'A')              // merge version
	record = append(record, "2103"...)        // maintenance date
	record = append(record, "0000"...)        // merge date (unset)
	record = append(record, "0000"...)        // maintenance code
	record = append(record, "USCNIMA "...)    // producer code
	record = append(record, spaces(16)...)    // reserved
	record = append(record, "PRF89020B  "...) // product specification
	record = append(record, "0005"...)        // specification date
	record = append(record, "E96"...)         // vertical datum
	record = append(record, "WGS84"...)       // horizontal datum
	record = append(record, "SRTM      "...)  // collection system
	record = append(record, "2101"...)        // compilation date
	record = append(record, spaces(22)...)    // reserved

	record = append(record, formatLatOrigin(swLat)...)
	record = append(record, formatLonOrigin(swLon)...)
	record = append(record, formatLatCorner(swLat)...)
	record = append(record, formatLonCorner(swLon)...)
	record = append(record, formatLatCorner(neLat)...)
	record = append(record, formatLonCorner(swLon)...)
	record = append(record, formatLatCorner(neLat)...)
	record = append(record, formatLonCorner(neLon)...)
	record = append(record, formatLatCorner(swLat)...)
	record = append(record, formatLonCorner(neLon)...)

	record = append(record, "0000000.0"...)   // orientation
	record = append(record, intervalField...) // longitude interval
	record = append(record, intervalField...) // latitude interval
	record = append(record, fmt.Sprintf("%04d", spec.LatCount)...)
	record = append(record, fmt.Sprintf("%04d", spec.LonCount)...)
	record = append(record, "00"...) // coverage (00 = full)
	return pad(record, 648)
}

func makeACC() []byte {
	record := make([]byte, 0, 2700)
	record = append(record, "ACC"...)
	record = append(record, "0005"...) // absolute horizontal
	record = append(record, "0003"...) // absolute vertical
	record = append(record, "NA  "...) // relative horizontal
	record = append(record, "0004"...) // relative vertical
	return pad(record, 2700)
}

// makeBlock renders one data block: sentinel word, block start counts, the
// samples in big-endian signed magnitude, and the byte-sum checksum.
func makeBlock(column int, samples []int16, corruptChecksum bool) []byte {
	block := make([]byte, 0, 12+2*len(samples))
	block = binary.BigEndian.AppendUint32(block, 0xAA<<24|uint32(column))
	block = binary.BigEndian.AppendUint16(block, uint16(column))
	block = binary.BigEndian.AppendUint16(block, 0)
	for _, sample := range samples {
		block = binary.BigEndian.AppendUint16(block, toSignedMagnitude(sample))
	}
	var sum uint32
	for _, b := range block {
		sum += uint32(b)
	}
	if corruptChecksum {
		sum++
	}
	return binary.BigEndian.AppendUint32(block, sum)
}

func toSignedMagnitude(value int16) uint16 {
	if value < 0 {
		return uint16(0x8000 + int32(-value))
	}
	return uint16(value)
}

func formatLon(lon int) string { // 8 bytes: DDDMMSSH
	hemisphere := 'E'
	if lon < 0 {
		hemisphere = 'W'
		lon = -lon
	}
	return fmt.Sprintf("%03d0000%c", lon, hemisphere)
}

func formatLatWide(lat int) string { // 8 bytes: DDDMMSSH
	hemisphere := 'N'
	if lat < 0 {
		hemisphere = 'S'
		lat = -lat
	}
	return fmt.Sprintf("%03d0000%c", lat, hemisphere)
}

func formatLatOrigin(lat int) string { // 9 bytes: DDMMSS.SH
	hemisphere := 'N'
	if lat < 0 {
		hemisphere = 'S'
		lat = -lat
	}
	return fmt.Sprintf("%02d0000.0%c", lat, hemisphere)
}

func formatLonOrigin(lon int) string { // 10 bytes: DDDMMSS.SH
	hemisphere := 'E'
	if lon < 0 {
		hemisphere = 'W'
		lon = -lon
	}
	return fmt.Sprintf("%03d0000.0%c", lon, hemisphere)
}

func formatLatCorner(lat int) string { // 7 bytes: DDMMSSH
	hemisphere := 'N'
	if lat < 0 {
		hemisphere = 'S'
		lat = -lat
	}
	return fmt.Sprintf("%02d0000%c", lat, hemisphere)
}

func formatLonCorner(lon int) string { // 8 bytes: DDDMMSSH
	hemisphere := 'E'
	if lon < 0 {
		hemisphere = 'W'
		lon = -lon
	}
	return fmt.Sprintf("%03d0000%c", lon, hemisphere)
}

func spaces(n int) []byte {
	field := make([]byte, n)
	for i := range field {
		field[i] = ' '
	}
	return field
}

func pad(record []byte, size int) []byte {
	for len(record) < size {
		record = append(record, ' ')
	}
	return record
}
