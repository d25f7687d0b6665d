package repair

import (
	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
)

const monthLayout = "2006-01"

// MonthRef returns the canonical YYYY-MM label of a cell, or its trimmed
// text when it does not hold a date.
func MonthRef(c models.Cell) string {
	switch c.Kind {
	case models.CellDate:
		return c.Time.Format(monthLayout)
	case models.CellNumber:
		if c.Number > SerialThreshold {
			if t, ok := SerialToTime(c.Number); ok {
				return t.Format(monthLayout)
			}
		}
	case models.CellText:
		if t, ok := ParseDate(c.Text); ok {
			return t.Format(monthLayout)
		}
	}
	return c.String()
}
