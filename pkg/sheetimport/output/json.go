// Package output serialises parse results.
package output

import (
	"encoding/json"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
)

// ToJSON serialises a parse result. Kinds are emitted in sorted key order,
// so identical results always produce identical bytes.
func ToJSON(result *models.ParseResult, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// SummaryToJSON serialises any import summary value.
func SummaryToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
