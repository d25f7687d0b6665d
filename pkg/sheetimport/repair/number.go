// Package repair turns raw spreadsheet cells into typed values.
//
// Every function is total: malformed input yields nil (or, for bands and
// month references, the trimmed original text) and never an error.
package repair

import (
	"math"
	"regexp"
	"strings"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/shopspring/decimal"
)

// RescaleThreshold is the magnitude above which a rate is taken to have
// been stored as a duration and multiplied by 1e12.
const RescaleThreshold = 1e10

var (
	rescaleFactor = decimal.New(1, 12)
	integralTol   = decimal.New(1, -9)
	maxInt64      = decimal.NewFromInt(math.MaxInt64)
	thousandsRe   = regexp.MustCompile(`^(\d{1,3}(?:\.\d{3})+)(?:\.0+)?$`)
)

// Percentage repairs a rate cell. Values scaled by 1e12 are scaled back.
func Percentage(c models.Cell) *float64 {
	var d decimal.Decimal
	switch c.Kind {
	case models.CellNumber:
		if !finite(c.Number) {
			return nil
		}
		d = decimal.NewFromFloat(c.Number)
	case models.CellText:
		var ok bool
		if d, ok = parseDecimal(strings.ReplaceAll(c.Text, "%", "")); !ok {
			return nil
		}
	default:
		return nil
	}
	if d.Abs().GreaterThan(decimal.NewFromFloat(RescaleThreshold)) {
		d = d.Div(rescaleFactor)
	}
	f, _ := d.Float64()
	if !finite(f) {
		return nil
	}
	return &f
}

// Integer repairs a count cell. Dots between groups of three digits are
// read as thousands separators; non-integral values yield nil.
func Integer(c models.Cell) *int64 {
	var d decimal.Decimal
	switch c.Kind {
	case models.CellNumber:
		if !finite(c.Number) {
			return nil
		}
		d = decimal.NewFromFloat(c.Number)
	case models.CellBool:
		var v int64
		if c.Bool {
			v = 1
		}
		return &v
	case models.CellText:
		raw := strings.ReplaceAll(strings.TrimSpace(c.Text), ",", ".")
		if m := thousandsRe.FindStringSubmatch(raw); m != nil {
			raw = strings.ReplaceAll(m[1], ".", "")
		}
		var err error
		if d, err = decimal.NewFromString(raw); err != nil {
			return nil
		}
	default:
		return nil
	}
	rounded := d.Round(0)
	if d.Sub(rounded).Abs().GreaterThanOrEqual(integralTol) {
		return nil
	}
	if rounded.Abs().GreaterThan(maxInt64) {
		return nil
	}
	v := rounded.IntPart()
	return &v
}

// Amount repairs a plain numeric cell such as a monetary total.
func Amount(c models.Cell) *float64 {
	switch c.Kind {
	case models.CellNumber:
		if !finite(c.Number) {
			return nil
		}
		v := c.Number
		return &v
	case models.CellText:
		d, ok := parseDecimal(c.Text)
		if !ok {
			return nil
		}
		v, _ := d.Float64()
		if !finite(v) {
			return nil
		}
		return &v
	}
	return nil
}

// parseDecimal reads a number written with either decimal convention.
// When both separators appear the last one is the decimal point.
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
