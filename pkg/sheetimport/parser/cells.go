package parser

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads every sheet of an xlsx workbook with typed cells.
func ReadXLSX(r io.Reader) (*models.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	wb := &models.Workbook{}
	for _, sheetName := range f.GetSheetList() {
		rows, err := ExtractCells(f, sheetName, date1904)
		if err != nil {
			return nil, NewSheetError(sheetName, "cells", err)
		}
		wb.Sheets = append(wb.Sheets, models.Sheet{Name: sheetName, Rows: rows})
	}
	return wb, nil
}

// ExtractCells extracts typed rows from a sheet. Blank rows are kept so
// that row positions match the sheet.
func ExtractCells(f *excelize.File, sheetName string, date1904 bool) ([]models.Row, error) {
	rawRows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	styles := newStyleCache(f)
	result := make([]models.Row, len(rawRows))
	for rowIdx, rawRow := range rawRows {
		row := make(models.Row, len(rawRow))
		for colIdx, raw := range rawRow {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			row[colIdx] = typedCell(f, styles, sheetName, cellName, raw, date1904)
		}
		result[rowIdx] = row
	}
	return result, nil
}

// typedCell turns the raw stored value of a cell into a models.Cell using
// the cell type and, for numbers, the number format.
func typedCell(f *excelize.File, styles *styleCache, sheetName, cellName, raw string, date1904 bool) models.Cell {
	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return parseValue(raw)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return models.TextCell(raw)
	case excelize.CellTypeBool:
		return models.BoolCell(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return models.DateCell(t.UTC())
			}
		}
		return models.TextCell(raw)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return models.TextCell(raw)
	}
	if styles.isDate(sheetName, cellName) {
		if t, err := excelize.ExcelDateToTime(n, date1904); err == nil {
			return models.DateCell(t.UTC())
		}
	}
	return models.NumberCell(n)
}

// parseValue infers a cell from its text alone. Integers and decimals
// written with a dot become numbers; everything else stays text.
func parseValue(s string) models.Cell {
	if strings.TrimSpace(s) == "" {
		return models.EmptyCell()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.NumberCell(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.NumberCell(f)
	}
	return models.TextCell(s)
}
