package parser

import (
	"io"
	"math"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
	"github.com/xuri/excelize/v2"
)

// Record type names reported by xlsReader cells.
const (
	xlsNumber  = "*record.Number"
	xlsRk      = "*record.Rk"
	xlsBoolErr = "*record.BoolErr"
	xlsLabel   = "*record.Label"
	xlsLabelSS = "*record.LabelSSt"
)

// firstCustomFormat is the lowest number format id a workbook defines
// itself; lower ids are built in.
const firstCustomFormat = 164

// ReadXLS reads a legacy BIFF workbook. Numeric cells whose XF record
// points at a date number format become date cells.
func ReadXLS(r io.ReadSeeker) (*models.Workbook, error) {
	book, err := xls.OpenReader(r)
	if err != nil {
		return nil, err
	}
	isDateXF := xfDateLookup(&book)

	wb := &models.Workbook{}
	for sheetIdx := 0; sheetIdx < book.GetNumberSheets(); sheetIdx++ {
		sheet, err := book.GetSheet(sheetIdx)
		if err != nil || sheet == nil {
			continue
		}

		rows := legacyRows(sheet.GetNumberRows(), func(i int) []structure.CellData {
			xlsRow, err := sheet.GetRow(i)
			if err != nil || xlsRow == nil {
				return nil
			}
			return xlsRow.GetCols()
		}, isDateXF)
		wb.Sheets = append(wb.Sheets, models.Sheet{Name: sheet.GetName(), Rows: rows})
	}
	return wb, nil
}

// legacyRows builds n rows. xlsReader reports the row count as the highest
// row index plus one.
func legacyRows(n int, cols func(int) []structure.CellData, isDateXF func(int) bool) []models.Row {
	rows := make([]models.Row, n)
	for i := range rows {
		cells := cols(i)
		row := make(models.Row, len(cells))
		for j, col := range cells {
			row[j] = legacyCell(col, isDateXF)
		}
		rows[i] = row
	}
	return rows
}

// legacyCell converts one xlsReader cell. isDateXF reports whether an XF
// index carries a date number format.
func legacyCell(col structure.CellData, isDateXF func(int) bool) models.Cell {
	if col == nil {
		return models.EmptyCell()
	}
	switch col.GetType() {
	case xlsNumber, xlsRk:
		v := col.GetFloat64()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.EmptyCell()
		}
		if isDateXF(col.GetXFIndex()) {
			if t, err := excelize.ExcelDateToTime(v, false); err == nil {
				return models.DateCell(t.UTC())
			}
		}
		return models.NumberCell(v)
	case xlsBoolErr:
		switch s := col.GetString(); s {
		case "TRUE":
			return models.BoolCell(true)
		case "FALSE":
			return models.BoolCell(false)
		default:
			return models.TextCell(s)
		}
	case xlsLabel, xlsLabelSS:
		return models.TextCell(col.GetString())
	}
	return parseValue(col.GetString())
}

// xfDateLookup returns a cached XF index → is-date classifier for a book.
func xfDateLookup(book *xls.Workbook) func(int) bool {
	cache := make(map[int]bool)
	return func(xfIndex int) bool {
		if v, ok := cache[xfIndex]; ok {
			return v
		}
		numFmt, custom := xfNumberFormat(book, xfIndex)
		v := isDateFormat(numFmt, custom)
		cache[xfIndex] = v
		return v
	}
}

// xfNumberFormat resolves the number format of an XF record. xlsReader
// panics on XF indexes past a short XF table; those read as General.
func xfNumberFormat(book *xls.Workbook, xfIndex int) (numFmt int, custom string) {
	defer func() {
		if recover() != nil {
			numFmt, custom = 0, ""
		}
	}()
	xf := book.GetXFbyIndex(xfIndex)
	numFmt = xf.GetFormatIndex()
	if numFmt >= firstCustomFormat {
		format := book.GetFormatByIndex(numFmt)
		custom = format.String()
	}
	return numFmt, custom
}
