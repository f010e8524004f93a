package dted

import (
	"io"
	"runtime"
)

// ScanOptions controls TileSet directory scanning.
type ScanOptions struct {
	// Suffixes filters scanned files by extension, e.g. [".dt1", ".dt2"].
	// When empty, every file is tried and non-DTED files are silently
	// skipped.
	Suffixes []string

	// Parallel enables concurrent header parsing during a scan.
	Parallel bool

	// Workers is the number of parallel header parsers. If 0, defaults to
	// runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors causes scanning to continue past files that fail to parse.
	// When false, the first structural error (on a file that passed the
	// suffix filter) aborts the scan. Files that are not valid DTED at all
	// are always skipped when no suffix filter is set.
	SkipErrors bool

	// Progress is an optional callback invoked after each file is
	// processed, with counts of processed and total files.
	Progress func(scanned, total int)

	// ErrorLog is an optional writer for per-file scan errors.
	ErrorLog io.Writer

	// CacheSize is the number of fully loaded tiles the TileSet keeps in
	// memory for Elevation queries. When 0, no grids are cached and
	// queries seek single blocks from disk.
	CacheSize int
}

// DefaultScanOptions returns scan options with parallel scanning enabled
// and no grid cache: elevation queries read single blocks from disk, which
// keeps memory flat for large tile sets.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

func (o ScanOptions) workers() int {
	if !o.Parallel {
		return 1
	}
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
