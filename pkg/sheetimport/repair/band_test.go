package repair

import (
	"testing"
	"time"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) models.Cell {
	return models.DateCell(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestBand(t *testing.T) {
	tests := []struct {
		name     string
		cell     models.Cell
		expected string
	}{
		{"date 1 july", date(2024, time.July, 1), "0-7"},
		{"date 1 august", date(2024, time.August, 1), "8-15"},
		{"date 1 january", date(2024, time.January, 1), "0-7"},
		{"date 20 march unmapped", date(2024, time.March, 20), "2024-03-20"},
		{"serial of 2024-07-01", models.NumberCell(45474), "0-7"},
		{"serial of 2024-08-01", models.NumberCell(45505), "8-15"},
		{"small day count", models.NumberCell(7), "7"},
		{"day count over 30", models.NumberCell(45), ">30"},
		{"fractional number", models.NumberCell(7.5), "7.5"},
		{"range text", models.TextCell("16-30"), "16-30"},
		{"range with spaces", models.TextCell(" 8 - 15 "), "8-15"},
		{"range with en dash", models.TextCell("0–7"), "0-7"},
		{"range with a", models.TextCell("8 a 15 dias"), "8-15"},
		{"range with ate", models.TextCell("16 até 30"), "16-30"},
		{"greater than", models.TextCell(">30"), ">30"},
		{"plus", models.TextCell("30+"), ">30"},
		{"mais de", models.TextCell("mais de 30 dias"), ">30"},
		{"acima de", models.TextCell("Acima de 30"), ">30"},
		{"serial as text", models.TextCell("45474"), "0-7"},
		{"iso date text", models.TextCell("2024-08-01"), "8-15"},
		{"day first date text", models.TextCell("01/07/2024"), "0-7"},
		{"unrecognised", models.TextCell("xyz-unrecognized"), "xyz-unrecognized"},
		{"unrecognised keeps case", models.TextCell("  Sem Faixa "), "Sem Faixa"},
		{"empty", models.EmptyCell(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Band(tt.cell))
		})
	}
}

func TestBandFromLimits(t *testing.T) {
	tests := []struct {
		a, b     int
		expected string
		ok       bool
	}{
		{0, 7, "0-7", true},
		{7, 1, "0-7", true},
		{8, 15, "8-15", true},
		{1, 8, "8-15", true},
		{16, 30, "16-30", true},
		{1, 20, "16-30", true},
		{31, 60, ">30", true},
		{5, 20, "", false},
	}

	for _, tt := range tests {
		got, ok := bandFromLimits(tt.a, tt.b)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("bandFromLimits(%d, %d) = %q, %v, expected %q, %v",
				tt.a, tt.b, got, ok, tt.expected, tt.ok)
		}
	}
}
