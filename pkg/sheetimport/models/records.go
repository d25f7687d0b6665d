package models

import (
	"strconv"
	"strings"
)

// Key is the composite key of a record rendered as a comparable value.
type Key string

const (
	keySep  = "\x1f"
	keyNull = "\x00"
)

func makeKey(parts ...string) Key {
	return Key(strings.Join(parts, keySep))
}

func intKeyPart(v *int64) string {
	if v == nil {
		return keyNull
	}
	return strconv.FormatInt(*v, 10)
}

// Record is one typed row produced from a block.
type Record interface {
	// Kind returns the record family.
	Kind() Kind
	// Key returns the composite key used for dedupe and upsert.
	Key() Key
	// NormalizeKey trims the key fields in place.
	NormalizeKey()
	// Values returns the field values in declaration order.
	Values() []any
}

// IssuedInvoices is the monthly count and total of issued invoices.
type IssuedInvoices struct {
	MonthRef    string   `json:"month_ref"`
	Count       *int64   `json:"count"`
	TotalAmount *float64 `json:"total_amount"`
}

func (r *IssuedInvoices) Kind() Kind { return KindIssuedInvoices }
func (r *IssuedInvoices) Key() Key { return makeKey(r.MonthRef) }
func (r *IssuedInvoices) NormalizeKey() { r.MonthRef = strings.TrimSpace(r.MonthRef) }
func (r *IssuedInvoices) Values() []any { return []any{r.MonthRef, r.Count, r.TotalAmount} }

// OnTimePaymentRate is the share of invoices paid on the due date.
type OnTimePaymentRate struct {
	MonthRef string   `json:"month_ref"`
	Rate     *float64 `json:"rate"`
}

func (r *OnTimePaymentRate) Kind() Kind { return KindOnTimePaymentRate }
func (r *OnTimePaymentRate) Key() Key { return makeKey(r.MonthRef) }
func (r *OnTimePaymentRate) NormalizeKey() { r.MonthRef = strings.TrimSpace(r.MonthRef) }
func (r *OnTimePaymentRate) Values() []any { return []any{r.MonthRef, r.Rate} }

// DelinquencyByBand is the late-payment share for one aging band.
type DelinquencyByBand struct {
	MonthRef string   `json:"month_ref"`
	Band     string   `json:"band"`
	Count    *int64   `json:"count"`
	Rate     *float64 `json:"rate"`
}

func (r *DelinquencyByBand) Kind() Kind { return KindDelinquencyByBand }
func (r *DelinquencyByBand) Key() Key { return makeKey(r.MonthRef, r.Band) }
func (r *DelinquencyByBand) NormalizeKey() {
	r.MonthRef = strings.TrimSpace(r.MonthRef)
	r.Band = strings.TrimSpace(r.Band)
}
func (r *DelinquencyByBand) Values() []any { return []any{r.MonthRef, r.Band, r.Count, r.Rate} }

// DelinquencyRate is the monthly default rate.
type DelinquencyRate struct {
	MonthRef string   `json:"month_ref"`
	Rate     *float64 `json:"rate"`
}

func (r *DelinquencyRate) Kind() Kind { return KindDelinquencyRate }
func (r *DelinquencyRate) Key() Key { return makeKey(r.MonthRef) }
func (r *DelinquencyRate) NormalizeKey() { r.MonthRef = strings.TrimSpace(r.MonthRef) }
func (r *DelinquencyRate) Values() []any { return []any{r.MonthRef, r.Rate} }

// AveragePaymentDays is the mean number of days until payment.
type AveragePaymentDays struct {
	MonthRef string `json:"month_ref"`
	Days     *int64 `json:"days"`
}

func (r *AveragePaymentDays) Kind() Kind { return KindAveragePaymentDays }
func (r *AveragePaymentDays) Key() Key { return makeKey(r.MonthRef) }
func (r *AveragePaymentDays) NormalizeKey() { r.MonthRef = strings.TrimSpace(r.MonthRef) }
func (r *AveragePaymentDays) Values() []any { return []any{r.MonthRef, r.Days} }

// AverageInvoiceValue is the mean invoice amount.
type AverageInvoiceValue struct {
	MonthRef string   `json:"month_ref"`
	Value    *float64 `json:"value"`
}

func (r *AverageInvoiceValue) Kind() Kind { return KindAverageInvoiceValue }
func (r *AverageInvoiceValue) Key() Key { return makeKey(r.MonthRef) }
func (r *AverageInvoiceValue) NormalizeKey() { r.MonthRef = strings.TrimSpace(r.MonthRef) }
func (r *AverageInvoiceValue) Values() []any { return []any{r.MonthRef, r.Value} }

// InstallmentBreakdown is the count and share of invoices per installment plan.
type InstallmentBreakdown struct {
	MonthRef         string   `json:"month_ref"`
	InstallmentCount *int64   `json:"installment_count"`
	Count            *int64   `json:"count"`
	Rate             *float64 `json:"rate"`
}

func (r *InstallmentBreakdown) Kind() Kind { return KindInstallmentBreakdown }
func (r *InstallmentBreakdown) Key() Key {
	return makeKey(r.MonthRef, intKeyPart(r.InstallmentCount))
}
func (r *InstallmentBreakdown) NormalizeKey() { r.MonthRef = strings.TrimSpace(r.MonthRef) }
func (r *InstallmentBreakdown) Values() []any {
	return []any{r.MonthRef, r.InstallmentCount, r.Count, r.Rate}
}
