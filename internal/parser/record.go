package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Record sizes, fixed by the DTED format.
const (
	UHLSize = 80
	DSISize = 648
	ACCSize = 2700

	// headerSize is the total size of the three header records that precede
	// the data record in every DTED file.
	headerSize = UHLSize + DSISize + ACCSize
)

// VoidDataValue is the sentinel elevation marking missing data, typically
// over bodies of water.
const VoidDataValue = -(1 << 15) + 1

// fieldReader walks the fixed-width ASCII fields of a header record.
// Callers must size-check the underlying buffer before reading; the reader
// itself never bounds-checks.
type fieldReader struct {
	data   []byte
	offset int
}

func newFieldReader(data []byte) *fieldReader {
	return &fieldReader{data: data}
}

func (r *fieldReader) read(n int) []byte {
	field := r.data[r.offset : r.offset+n]
	r.offset += n
	return field
}

func (r *fieldReader) skip(n int) {
	r.offset += n
}

func (r *fieldReader) readString(n int) string {
	return string(r.read(n))
}

// readInt decodes an n-byte ASCII decimal field.
func (r *fieldReader) readInt(n int) (int, error) {
	field := r.readString(n)
	value, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("numeric field %q at offset %d: %w", field, r.offset-n, err)
	}
	return value, nil
}

// readFloat decodes an n-byte ASCII decimal field as a float.
func (r *fieldReader) readFloat(n int) (float64, error) {
	field := r.readString(n)
	value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("numeric field %q at offset %d: %w", field, r.offset-n, err)
	}
	return value, nil
}

// readOptionalInt decodes an n-byte ASCII decimal field, returning nil for
// the "NA" placeholder or any malformed value.
func (r *fieldReader) readOptionalInt(n int) *int {
	field := r.readString(n)
	if strings.Contains(field, "NA") {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return nil
	}
	return &value
}

// GridShape is the shape of a tile's elevation grid as
// (number of longitude lines, number of latitude points per line).
type GridShape struct {
	Longitude int
	Latitude  int
}
