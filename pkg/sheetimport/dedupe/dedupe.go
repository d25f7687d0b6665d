// Package dedupe normalises record keys and drops duplicate keys.
package dedupe

import "github.com/clinicapay/sheetimport/pkg/sheetimport/models"

// Normalize trims the key fields of every record in place.
func Normalize(records []models.Record) {
	for _, r := range records {
		r.NormalizeKey()
	}
}

// Dedupe keeps the first record for each key, preserving order.
func Dedupe(records []models.Record) []models.Record {
	seen := make(map[models.Key]struct{}, len(records))
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Apply normalises then deduplicates records.
func Apply(records []models.Record) []models.Record {
	Normalize(records)
	return Dedupe(records)
}
