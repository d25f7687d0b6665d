package blocks

import (
	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/repair"
)

// MapBlock maps the data rows of a classified block to records. Mapping is
// positional; cells missing from a row map to nil values.
func MapBlock(kind models.Kind, b models.Block) []models.Record {
	records := make([]models.Record, 0, len(b.Rows))
	width := b.Width()
	for _, row := range b.Rows {
		if rec := mapRow(kind, row, width); rec != nil {
			records = append(records, rec)
		}
	}
	return records
}

func mapRow(kind models.Kind, r models.Row, width int) models.Record {
	month := repair.MonthRef(r.At(0))
	switch kind {
	case models.KindIssuedInvoices:
		return &models.IssuedInvoices{
			MonthRef:    month,
			Count:       repair.Integer(r.At(1)),
			TotalAmount: repair.Amount(r.At(2)),
		}
	case models.KindOnTimePaymentRate:
		return &models.OnTimePaymentRate{MonthRef: month, Rate: repair.Percentage(r.At(1))}
	case models.KindDelinquencyByBand:
		return mapDelinquencyByBand(month, r, width)
	case models.KindDelinquencyRate:
		return &models.DelinquencyRate{MonthRef: month, Rate: repair.Percentage(r.At(1))}
	case models.KindAveragePaymentDays:
		return &models.AveragePaymentDays{MonthRef: month, Days: repair.Integer(r.At(1))}
	case models.KindAverageInvoiceValue:
		return &models.AverageInvoiceValue{MonthRef: month, Value: repair.Amount(r.At(1))}
	case models.KindInstallmentBreakdown:
		return &models.InstallmentBreakdown{
			MonthRef:         month,
			InstallmentCount: repair.Integer(r.At(1)),
			Count:            repair.Integer(r.At(2)),
			Rate:             repair.Percentage(r.At(3)),
		}
	}
	return nil
}

// mapDelinquencyByBand handles both export layouts of the late-payment
// table: month/band/count/rate, and month/rate for the aggregate only.
func mapDelinquencyByBand(month string, r models.Row, width int) models.Record {
	switch {
	case width >= 4:
		return &models.DelinquencyByBand{
			MonthRef: month,
			Band:     repair.Band(r.At(1)),
			Count:    repair.Integer(r.At(2)),
			Rate:     repair.Percentage(r.At(3)),
		}
	case width >= 2:
		return &models.DelinquencyByBand{
			MonthRef: month,
			Band:     repair.BandAggregate,
			Rate:     repair.Percentage(r.At(1)),
		}
	}
	return nil
}
