package repair

import (
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// SerialThreshold is the smallest day count read as a serial date
// (20000 is 1954-10-03).
const SerialThreshold = 20000

const maxSerial = 2958465 // 9999-12-31

var (
	isoPrefixRe = regexp.MustCompile(`^\d{4}[-/.]`)
	wordRe      = regexp.MustCompile(`\p{L}+`)

	isoLayouts = []string{
		"2006-1-2",
		"2006/1/2",
		"2006.1.2",
		"2006-1-2 15:04:05",
		"2006-1-2 15:04",
		"2006-1-2T15:04:05",
		time.RFC3339,
		"2006/1/2 15:04:05",
		"2006-1",
		"2006/1",
	}
	dayFirstLayouts = []string{
		"2/1/2006",
		"2-1-2006",
		"2.1.2006",
		"2/1/2006 15:04:05",
		"2/1/2006 15:04",
		"2/1/06",
		"2-1-06",
		"1/2006",
		"1-2006",
		"Jan/2006",
		"Jan-2006",
		"Jan 2006",
		"January 2006",
		"January/2006",
		"Jan/06",
		"Jan-06",
		"2 Jan 2006",
		"2/Jan/2006",
		"2-Jan-2006",
	}

	// Portuguese month names mapped to names time.Parse understands.
	ptMonths = map[string]string{
		"janeiro": "January", "fevereiro": "February", "março": "March",
		"marco": "March", "abril": "April", "maio": "May", "junho": "June",
		"julho": "July", "agosto": "August", "setembro": "September",
		"outubro": "October", "novembro": "November", "dezembro": "December",
		"fev": "Feb", "abr": "Apr", "mai": "May", "ago": "Aug",
		"set": "Sep", "out": "Oct", "dez": "Dec",
	}
)

// ParseDate parses the date encodings found in billing exports. Strings
// starting with a four-digit year are read year first, everything else
// day first.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := dayFirstLayouts
	if isoPrefixRe.MatchString(s) {
		layouts = isoLayouts
	} else {
		s = translateMonths(s)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func translateMonths(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), " de ", " ")
	return wordRe.ReplaceAllStringFunc(s, func(w string) string {
		if en, ok := ptMonths[w]; ok {
			return en
		}
		return w
	})
}

// SerialToTime decodes a spreadsheet serial day count (epoch 1899-12-30).
func SerialToTime(v float64) (time.Time, bool) {
	if !finite(v) || v <= 0 || v > maxSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(v, false)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
