package sheetimport

import (
	"errors"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is neither an xlsx nor an xls workbook.
var ErrInvalidFormat = parser.ErrUnsupportedFormat

// ErrMissingIdentity indicates no sheet carries the CNPJ anchor row. The
// parse is aborted because records cannot be attributed to a tenant.
var ErrMissingIdentity = errors.New("identity anchor \"CNPJ\" not found in any sheet")

// SheetError represents a failure while reading one sheet.
type SheetError = parser.SheetError
