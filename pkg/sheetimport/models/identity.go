package models

// TenantIdentity identifies the clinic a workbook belongs to.
type TenantIdentity struct {
	// ExternalTaxID is the CNPJ read below the anchor row.
	ExternalTaxID string `json:"external_tax_id"`
	// ExternalCode is the clinic code next to the CNPJ, nil when absent.
	ExternalCode *string `json:"external_code"`
}
