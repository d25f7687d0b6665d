package sheetimport

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/blocks"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/dedupe"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/parser"
)

// ParseFile reads and parses a workbook file.
func ParseFile(path string, opts Options) (*models.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	wb, err := parser.Open(data)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	wb.Name = filepath.Base(path)
	return ParseWorkbook(wb, opts)
}

// Parse decodes an in-memory xlsx or xls workbook and parses it.
func Parse(data []byte, opts Options) (*models.ParseResult, error) {
	wb, err := parser.Open(data)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return ParseWorkbook(wb, opts)
}

// ParseWorkbook locates the tenant identity, then segments, classifies,
// maps and deduplicates the blocks of every sheet. It fails only when the
// identity anchor is missing.
func ParseWorkbook(wb *models.Workbook, opts Options) (*models.ParseResult, error) {
	log := opts.logger()

	id, err := LocateIdentity(wb, opts.scanRows())
	if err != nil {
		return nil, err
	}
	result := models.NewParseResult(id)

	for _, sheet := range wb.Sheets {
		for _, b := range blocks.Segment(sheet) {
			kind, ok := blocks.Classify(b.Title)
			if !ok {
				log.Debug("skipping unrecognised block",
					"sheet", b.Sheet, "row", b.Start+1, "title", b.Title)
				continue
			}
			records := dedupe.Apply(blocks.MapBlock(kind, b))
			result.Records[kind] = append(result.Records[kind], records...)
			log.Debug("mapped block",
				"sheet", b.Sheet, "row", b.Start+1, "kind", kind, "records", len(records))
		}
	}

	for kind, records := range result.Records {
		result.Records[kind] = dedupe.Dedupe(records)
	}

	log.Info("parsed workbook",
		"workbook", wb.Name, "tax_id", id.ExternalTaxID, "records", result.Count())
	return result, nil
}
