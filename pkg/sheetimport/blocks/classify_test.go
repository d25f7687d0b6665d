package blocks

import (
	"testing"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title    string
		expected models.Kind
		ok       bool
	}{
		{"Boletos Emitidos", models.KindIssuedInvoices, true},
		{"  BOLETO EMITIDO  ", models.KindIssuedInvoices, true},
		{"Taxa de Pagamento no Vencimento", models.KindOnTimePaymentRate, true},
		{"Pagamento no vencimento (%)", models.KindOnTimePaymentRate, true},
		{"Taxa de Atraso", models.KindDelinquencyByBand, true},
		{"Taxa de atraso - inadimplência", models.KindDelinquencyByBand, true},
		{"Inadimplência", models.KindDelinquencyRate, true},
		{"Tempo Médio de Pagamento", models.KindAveragePaymentDays, true},
		{"Prazo medio", models.KindAveragePaymentDays, true},
		{"Valor Médio do Boleto", models.KindAverageInvoiceValue, true},
		{"Valor Médio", models.KindAverageInvoiceValue, true},
		{"Parcelamentos", models.KindInstallmentBreakdown, true},
		{"Resumo Geral", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			kind, ok := Classify(tt.title)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "valor médio", NormalizeTitle("  Valor Médio "))
	assert.Equal(t, "taxa de atraso", NormalizeTitle("TAXA DE ATRASO"))
}

func TestRuleMatch(t *testing.T) {
	r := Rules[0]
	assert.True(t, r.Match("boletos emitidos"))
	assert.True(t, r.Match("boletosemitidos"))
	assert.False(t, r.Match("boletos pagos"))
}
