package models

// Kind names one of the record families a block can hold.
type Kind string

const (
	KindIssuedInvoices       Kind = "issued_invoices"
	KindOnTimePaymentRate    Kind = "on_time_payment_rate"
	KindDelinquencyByBand    Kind = "delinquency_by_band"
	KindDelinquencyRate      Kind = "delinquency_rate"
	KindAveragePaymentDays   Kind = "average_payment_days"
	KindAverageInvoiceValue  Kind = "average_invoice_value"
	KindInstallmentBreakdown Kind = "installment_breakdown"
)

// AllKinds returns every kind in a fixed order.
func AllKinds() []Kind {
	return []Kind{
		KindIssuedInvoices,
		KindOnTimePaymentRate,
		KindDelinquencyByBand,
		KindDelinquencyRate,
		KindAveragePaymentDays,
		KindAverageInvoiceValue,
		KindInstallmentBreakdown,
	}
}

// KeyFields returns the composite key field names of the kind.
func (k Kind) KeyFields() []string {
	switch k {
	case KindDelinquencyByBand:
		return []string{"month_ref", "band"}
	case KindInstallmentBreakdown:
		return []string{"month_ref", "installment_count"}
	}
	return []string{"month_ref"}
}
