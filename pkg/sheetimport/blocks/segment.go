// Package blocks splits sheets into titled tables and maps their rows to
// typed records.
package blocks

import (
	"strings"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/repair"
)

// IdentityMarker is the column-0 text of the tenant identity anchor row.
const IdentityMarker = "CNPJ"

// HeaderMarker is the token that identifies an explicit header row.
const HeaderMarker = "MesRef"

// State is the segmenter state reached at a candidate title row.
type State int

const (
	// ScanningForTitle means the row does not start a block.
	ScanningForTitle State = iota
	// ExplicitHeader is a title followed by a header row holding HeaderMarker.
	ExplicitHeader
	// ImplicitHeaderDoubleOffset is a title, an unmarked row, then dated data.
	ImplicitHeaderDoubleOffset
	// TitleImmediatelyFollowedByData is a title directly above dated data.
	TitleImmediatelyFollowedByData
)

func (s State) String() string {
	switch s {
	case ExplicitHeader:
		return "ExplicitHeader"
	case ImplicitHeaderDoubleOffset:
		return "ImplicitHeaderDoubleOffset"
	case TitleImmediatelyFollowedByData:
		return "TitleImmediatelyFollowedByData"
	}
	return "ScanningForTitle"
}

// DataOffset returns how many rows below the title data starts, or 0 for
// ScanningForTitle.
func (s State) DataOffset() int {
	switch s {
	case ExplicitHeader, ImplicitHeaderDoubleOffset:
		return 2
	case TitleImmediatelyFollowedByData:
		return 1
	}
	return 0
}

// IsTitle reports whether a row is a title candidate: a non-empty text
// cell in column 0 other than the identity marker.
func IsTitle(row models.Row) bool {
	c := row.At(0)
	if c.Kind != models.CellText {
		return false
	}
	t := strings.TrimSpace(c.Text)
	return t != "" && t != IdentityMarker
}

// Detect evaluates the block-start decision table at row i.
func Detect(rows []models.Row, i int) State {
	if i < 0 || i+1 >= len(rows) || !IsTitle(rows[i]) {
		return ScanningForTitle
	}
	if hasHeaderMarker(rows[i+1]) {
		return ExplicitHeader
	}
	if i+2 < len(rows) && isDateLike(rows[i+2].At(0)) {
		return ImplicitHeaderDoubleOffset
	}
	if isDateLike(rows[i+1].At(0)) {
		return TitleImmediatelyFollowedByData
	}
	return ScanningForTitle
}

// Segment partitions a sheet into blocks. Data rows run until the first
// blank row or the end of the sheet; scanning resumes at that row.
func Segment(sheet models.Sheet) []models.Block {
	var blocks []models.Block
	rows := sheet.Rows
	i := 0
	for i < len(rows) {
		state := Detect(rows, i)
		if state == ScanningForTitle {
			i++
			continue
		}

		b := models.Block{
			Sheet: sheet.Name,
			Title: strings.TrimSpace(rows[i].At(0).Text),
			Start: i,
		}
		if state == ExplicitHeader {
			b.Header = headerText(rows[i+1])
		}

		j := i + state.DataOffset()
		for j < len(rows) && !rows[j].IsBlank() {
			b.Rows = append(b.Rows, rows[j])
			j++
		}
		blocks = append(blocks, b)
		i = j
	}
	return blocks
}

func hasHeaderMarker(row models.Row) bool {
	for _, c := range row {
		if c.Kind == models.CellText && strings.Contains(c.Text, HeaderMarker) {
			return true
		}
	}
	return false
}

// isDateLike accepts date cells and text a date parser understands.
func isDateLike(c models.Cell) bool {
	switch c.Kind {
	case models.CellDate:
		return true
	case models.CellText:
		_, ok := repair.ParseDate(c.Text)
		return ok
	}
	return false
}

func headerText(row models.Row) []string {
	header := make([]string, len(row))
	for i, c := range row {
		header[i] = c.String()
	}
	return header
}
