package repair

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
)

// Aging bands of the delinquency tables.
const (
	BandUpTo7     = "0-7"
	Band8To15     = "8-15"
	Band16To30    = "16-30"
	BandOver30    = ">30"
	BandAggregate = "total"
)

var (
	spacesRe     = regexp.MustCompile(`\s+`)
	digitsRe     = regexp.MustCompile(`\d+`)
	integralRe   = regexp.MustCompile(`^\d+(\.0+)?$`)
	dashReplacer = strings.NewReplacer("–", "-", "—", "-", "--", "-")
	overMarkers  = []string{">", "+", "maior", "acima", "mais"}
)

// Band recovers an aging band label ("0-7", "8-15", "16-30", ">30") from a
// cell that a spreadsheet tool may have turned into a date or a day count.
// Unrecognised input is returned as its trimmed text, never dropped.
func Band(c models.Cell) string {
	switch c.Kind {
	case models.CellDate:
		if band, ok := bandFromDate(c.Time); ok {
			return band
		}
		return c.Time.Format("2006-01-02")
	case models.CellNumber:
		return bandFromNumber(c.Number)
	case models.CellText:
		return bandFromText(c.Text)
	}
	return c.String()
}

func bandFromNumber(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v != math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if band, ok := bandFromSerial(v); ok {
		return band
	}
	if v > 30 {
		return BandOver30
	}
	return strconv.FormatInt(int64(v), 10)
}

func bandFromText(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return ""
	}
	norm := dashReplacer.Replace(strings.ToLower(raw))
	norm = strings.TrimSpace(spacesRe.ReplaceAllString(norm, " "))

	if strings.Contains(norm, "30") && containsAny(norm, overMarkers) {
		return BandOver30
	}

	if integralRe.MatchString(norm) {
		if v, err := strconv.ParseFloat(norm, 64); err == nil {
			if band, ok := bandFromSerial(v); ok {
				return band
			}
		}
	}

	var nums []int
	for _, d := range digitsRe.FindAllString(norm, -1) {
		if n, err := strconv.Atoi(d); err == nil {
			nums = append(nums, n)
		}
	}

	if len(nums) >= 3 {
		if band, ok := bandFromDateText(raw); ok {
			return band
		}
	}

	if len(nums) == 2 && hasRangeSeparator(norm) {
		if band, ok := bandFromLimits(nums[0], nums[1]); ok {
			return band
		}
	}

	if band, ok := bandFromDateText(raw); ok {
		return band
	}
	return raw
}

func bandFromSerial(v float64) (string, bool) {
	if v <= SerialThreshold {
		return "", false
	}
	t, ok := SerialToTime(v)
	if !ok {
		return "", false
	}
	return bandFromDate(t)
}

func bandFromDateText(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return bandFromDate(t)
}

// bandFromDate reads a band that was stored as day/month, e.g. "0-7"
// saved as 1 July or "8-15" saved as 1 August. bandFromLimits sorts its
// arguments, so (day, month) and (month, day) resolve alike.
func bandFromDate(t time.Time) (string, bool) {
	return bandFromLimits(t.Day(), int(t.Month()))
}

func bandFromLimits(a, b int) (string, bool) {
	pair := []int{a, b}
	sort.Ints(pair)
	lo, hi := pair[0], pair[1]
	switch {
	case hi <= 7:
		return BandUpTo7, true
	case hi <= 15 && lo <= 8:
		return Band8To15, true
	case lo <= 1 && hi >= 16 && hi <= 30:
		return Band16To30, true
	case lo >= 16 && hi <= 30:
		return Band16To30, true
	case hi > 30:
		return BandOver30, true
	}
	return "", false
}

func hasRangeSeparator(s string) bool {
	return strings.Contains(s, "-") ||
		strings.Contains(s, "/") ||
		strings.Contains(" "+s+" ", " a ") ||
		strings.Contains(s, "até")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
