package store

import (
	"fmt"
	"strings"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
)

// TenantColumn is the tenant reference column present on every table.
const TenantColumn = "clinica_id"

// TableSpec describes where a kind is stored downstream.
type TableSpec struct {
	Name     string
	Columns  []string // in models.Record.Values order
	Conflict []string // upsert key, TenantColumn first
}

var tables = map[models.Kind]TableSpec{
	models.KindIssuedInvoices: {
		Name:     "boletos_emitidos",
		Columns:  []string{"mes_ref", "qtde", "valor_total"},
		Conflict: []string{TenantColumn, "mes_ref"},
	},
	models.KindOnTimePaymentRate: {
		Name:     "taxa_pago_no_vencimento",
		Columns:  []string{"mes_ref", "taxa"},
		Conflict: []string{TenantColumn, "mes_ref"},
	},
	models.KindDelinquencyByBand: {
		Name:     "taxa_atraso_faixa",
		Columns:  []string{"mes_ref", "faixa", "qtde", "percentual"},
		Conflict: []string{TenantColumn, "mes_ref", "faixa"},
	},
	models.KindDelinquencyRate: {
		Name:     "inadimplencia",
		Columns:  []string{"mes_ref", "taxa"},
		Conflict: []string{TenantColumn, "mes_ref"},
	},
	models.KindAveragePaymentDays: {
		Name:     "tempo_medio_pagamento",
		Columns:  []string{"mes_ref", "dias"},
		Conflict: []string{TenantColumn, "mes_ref"},
	},
	models.KindAverageInvoiceValue: {
		Name:     "valor_medio_boleto",
		Columns:  []string{"mes_ref", "valor"},
		Conflict: []string{TenantColumn, "mes_ref"},
	},
	models.KindInstallmentBreakdown: {
		Name:     "parcelamentos_detalhe",
		Columns:  []string{"mes_ref", "qtde_parcelas", "qtde", "percentual"},
		Conflict: []string{TenantColumn, "mes_ref", "qtde_parcelas"},
	},
}

// Table returns the table spec of a kind.
func Table(kind models.Kind) (TableSpec, error) {
	t, ok := tables[kind]
	if !ok {
		return TableSpec{}, fmt.Errorf("no table for kind %q", kind)
	}
	return t, nil
}

// OnConflict returns the conflict columns as a comma-separated list.
func (t TableSpec) OnConflict() string {
	return strings.Join(t.Conflict, ",")
}

// Row returns a record as a column map with the tenant reference attached.
func (t TableSpec) Row(tenantID string, r models.Record) map[string]any {
	vals := r.Values()
	row := make(map[string]any, len(t.Columns)+1)
	row[TenantColumn] = tenantID
	for i, col := range t.Columns {
		row[col] = deref(vals[i])
	}
	return row
}

// deref unwraps nullable field pointers so nil pointers become untyped nil.
func deref(v any) any {
	switch p := v.(type) {
	case *int64:
		if p == nil {
			return nil
		}
		return *p
	case *float64:
		if p == nil {
			return nil
		}
		return *p
	}
	return v
}
