package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// builtinDateFormats lists the built-in number format ids that render a
// calendar date. Time-only and duration formats are left out because
// rates mangled into durations must stay numeric.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true,
	56: true, 57: true, 58: true,
}

type styleCache struct {
	f     *excelize.File
	dates map[int]bool
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, dates: make(map[int]bool)}
}

// isDate reports whether the cell's number format renders a date.
func (c *styleCache) isDate(sheetName, cellName string) bool {
	idx, err := c.f.GetCellStyle(sheetName, cellName)
	if err != nil || idx == 0 {
		return false
	}
	if v, ok := c.dates[idx]; ok {
		return v
	}
	v := false
	if style, err := c.f.GetStyle(idx); err == nil && style != nil {
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		v = isDateFormat(style.NumFmt, custom)
	}
	c.dates[idx] = v
	return v
}

// isDateFormat classifies a number format. Custom codes count as dates
// when, outside quoted literals and bracketed sections, they use a day or
// year token, or a month token without hour/second tokens.
func isDateFormat(numFmt int, custom string) bool {
	if custom == "" {
		return builtinDateFormats[numFmt]
	}
	code := stripLiterals(strings.ToLower(custom))
	if strings.ContainsAny(code, "dy") {
		return true
	}
	return strings.Contains(code, "m") && !strings.ContainsAny(code, "hs")
}

func stripLiterals(code string) string {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
