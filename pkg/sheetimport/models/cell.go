// Package models defines data structures for billing-export import.
package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind identifies which field of a Cell carries its value.
type CellKind int

const (
	// CellEmpty is a cell with no value.
	CellEmpty CellKind = iota
	// CellText is a string cell.
	CellText
	// CellNumber is a numeric cell without a date format.
	CellNumber
	// CellDate is a cell the workbook stores or formats as a date.
	CellDate
	// CellBool is a boolean cell.
	CellBool
)

// Cell is a single untyped spreadsheet value.
type Cell struct {
	// Kind selects the populated field.
	Kind CellKind
	// Text is the string value for CellText.
	Text string
	// Number is the numeric value for CellNumber.
	Number float64
	// Time is the calendar value for CellDate.
	Time time.Time
	// Bool is the value for CellBool.
	Bool bool
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell { return Cell{} }

// TextCell returns a string cell. Empty strings are stored as empty cells.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// DateCell returns a date cell.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// IsEmpty reports whether the cell carries no value.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String returns the trimmed text form of the cell. Integral numbers are
// rendered without a fractional part and dates as YYYY-MM-DD.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text)
	case CellNumber:
		if c.Number == math.Trunc(c.Number) && math.Abs(c.Number) < 1e15 {
			return strconv.FormatInt(int64(c.Number), 10)
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Time.Format("2006-01-02")
	case CellBool:
		return strconv.FormatBool(c.Bool)
	}
	return ""
}

// Row is an ordered sequence of cells.
type Row []Cell

// At returns the cell at column i, or an empty cell past the end of the row.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Width returns the row length ignoring trailing empty cells.
func (r Row) Width() int {
	n := len(r)
	for n > 0 && r[n-1].IsEmpty() {
		n--
	}
	return n
}
