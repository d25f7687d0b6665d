// Package sheetimport parses billing-platform spreadsheet exports into
// typed, deduplicated records.
package sheetimport

import (
	"io"
	"log/slog"
)

// DefaultIdentityScanRows is how many leading rows of each sheet are
// searched for the identity anchor.
const DefaultIdentityScanRows = 10

// Options configures parsing.
type Options struct {
	// IdentityScanRows bounds the identity anchor search per sheet.
	// Zero means DefaultIdentityScanRows.
	IdentityScanRows int
	// Logger receives diagnostics such as skipped blocks. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns default parse options.
func DefaultOptions() Options {
	return Options{
		IdentityScanRows: DefaultIdentityScanRows,
	}
}

func (o Options) scanRows() int {
	if o.IdentityScanRows > 0 {
		return o.IdentityScanRows
	}
	return DefaultIdentityScanRows
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
