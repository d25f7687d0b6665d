package sheetimport

import (
	"strings"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/blocks"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
)

// LocateIdentity finds the tenant identity: the row below the first
// column-0 "CNPJ" cell within the first scanRows rows of a sheet. Sheets
// are searched in order; an anchor with an empty tax id moves the search
// to the next sheet.
func LocateIdentity(wb *models.Workbook, scanRows int) (models.TenantIdentity, error) {
	for _, sheet := range wb.Sheets {
		limit := min(scanRows, len(sheet.Rows))
		for i := 0; i < limit; i++ {
			c := sheet.Rows[i].At(0)
			if c.Kind != models.CellText || strings.TrimSpace(c.Text) != blocks.IdentityMarker {
				continue
			}
			var below models.Row
			if i+1 < len(sheet.Rows) {
				below = sheet.Rows[i+1]
			}
			taxID := below.At(0).String()
			if taxID == "" {
				break
			}
			id := models.TenantIdentity{ExternalTaxID: taxID}
			if code := below.At(1).String(); code != "" {
				id.ExternalCode = &code
			}
			return id, nil
		}
	}
	return models.TenantIdentity{}, ErrMissingIdentity
}
