package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellString(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected string
	}{
		{"empty", EmptyCell(), ""},
		{"text trimmed", TextCell("  MesRef "), "MesRef"},
		{"integral number", NumberCell(10), "10"},
		{"fractional number", NumberCell(0.125), "0.125"},
		{"date", DateCell(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)), "2024-07-01"},
		{"bool", BoolCell(true), "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cell.String())
		})
	}
}

func TestTextCellEmpty(t *testing.T) {
	assert.True(t, TextCell("").IsEmpty())
	assert.False(t, TextCell(" ").IsEmpty())
}

func TestRow(t *testing.T) {
	r := Row{TextCell("a"), EmptyCell(), NumberCell(1), EmptyCell()}
	assert.Equal(t, 3, r.Width())
	assert.True(t, r.At(9).IsEmpty())
	assert.True(t, r.At(-1).IsEmpty())
	assert.False(t, r.IsBlank())
	assert.True(t, Row{EmptyCell(), EmptyCell()}.IsBlank())
	assert.True(t, Row(nil).IsBlank())
}

func TestBlockWidth(t *testing.T) {
	b := Block{
		Header: []string{"MesRef", "Taxa", "", ""},
		Rows:   []Row{{NumberCell(1)}, {NumberCell(1), EmptyCell(), NumberCell(3)}},
	}
	assert.Equal(t, 3, b.Width())

	b.Rows = nil
	assert.Equal(t, 2, b.Width())
	assert.Equal(t, 0, Block{}.Width())
}

func TestRecordKeys(t *testing.T) {
	two := int64(2)
	assert.Equal(t, Key("2024-07\x1f0-7"), (&DelinquencyByBand{MonthRef: "2024-07", Band: "0-7"}).Key())
	assert.Equal(t, Key("2024-07\x1f2"), (&InstallmentBreakdown{MonthRef: "2024-07", InstallmentCount: &two}).Key())
	assert.NotEqual(t,
		(&InstallmentBreakdown{MonthRef: "2024-07"}).Key(),
		(&InstallmentBreakdown{MonthRef: "2024-07", InstallmentCount: &two}).Key())

	r := &DelinquencyByBand{MonthRef: " 2024-07 ", Band: " >30"}
	r.NormalizeKey()
	assert.Equal(t, "2024-07", r.MonthRef)
	assert.Equal(t, ">30", r.Band)
}

func TestKindKeyFields(t *testing.T) {
	assert.Len(t, AllKinds(), 7)
	assert.Equal(t, []string{"month_ref", "band"}, KindDelinquencyByBand.KeyFields())
	assert.Equal(t, []string{"month_ref"}, KindIssuedInvoices.KeyFields())
}

func TestParseResultJSON(t *testing.T) {
	code := "CODE1"
	res := NewParseResult(TenantIdentity{ExternalTaxID: "12345678000190", ExternalCode: &code})
	count := int64(10)
	res.Records[KindIssuedInvoices] = append(res.Records[KindIssuedInvoices],
		&IssuedInvoices{MonthRef: "2024-07", Count: &count})
	assert.Equal(t, 1, res.Count())

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	records := decoded["records"].(map[string]any)
	assert.Len(t, records, 7)
	assert.Empty(t, records[string(KindDelinquencyRate)])

	issued := records[string(KindIssuedInvoices)].([]any)[0].(map[string]any)
	assert.Equal(t, "2024-07", issued["month_ref"])
	assert.Equal(t, float64(10), issued["count"])
	assert.Nil(t, issued["total_amount"])
	assert.Equal(t, "CODE1", decoded["identity"].(map[string]any)["external_code"])
}
