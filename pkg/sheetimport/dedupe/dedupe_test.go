package dedupe

import (
	"testing"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(f float64) *float64 { return &f }

func TestDedupeKeepsFirst(t *testing.T) {
	records := []models.Record{
		&models.DelinquencyByBand{MonthRef: "2024-07", Band: "0-7", Rate: rate(0.05)},
		&models.DelinquencyByBand{MonthRef: "2024-07", Band: "8-15", Rate: rate(0.02)},
		&models.DelinquencyByBand{MonthRef: "2024-07", Band: "0-7", Rate: rate(0.07)},
	}

	out := Dedupe(records)
	require.Len(t, out, 2)
	first := out[0].(*models.DelinquencyByBand)
	assert.Equal(t, "0-7", first.Band)
	assert.InDelta(t, 0.05, *first.Rate, 1e-12)
	assert.Equal(t, "8-15", out[1].(*models.DelinquencyByBand).Band)
}

func TestApplyTrimsBeforeComparing(t *testing.T) {
	records := []models.Record{
		&models.OnTimePaymentRate{MonthRef: " 2024-07", Rate: rate(0.9)},
		&models.OnTimePaymentRate{MonthRef: "2024-07 ", Rate: rate(0.8)},
		&models.OnTimePaymentRate{MonthRef: "2024-08", Rate: rate(0.7)},
	}

	out := Apply(records)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-07", out[0].(*models.OnTimePaymentRate).MonthRef)
	assert.InDelta(t, 0.9, *out[0].(*models.OnTimePaymentRate).Rate, 1e-12)
}

func TestDedupeNilKeyParts(t *testing.T) {
	three := int64(3)
	records := []models.Record{
		&models.InstallmentBreakdown{MonthRef: "2024-07"},
		&models.InstallmentBreakdown{MonthRef: "2024-07", InstallmentCount: &three},
		&models.InstallmentBreakdown{MonthRef: "2024-07"},
	}
	assert.Len(t, Dedupe(records), 2)
}

func TestDedupeIdempotent(t *testing.T) {
	records := []models.Record{
		&models.AveragePaymentDays{MonthRef: "2024-07"},
		&models.AveragePaymentDays{MonthRef: "2024-07"},
	}
	once := Apply(records)
	assert.Equal(t, once, Apply(once))
	assert.Empty(t, Dedupe(nil))
}
