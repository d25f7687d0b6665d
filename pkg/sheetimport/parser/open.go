// Package parser reads workbook files into typed rows of cells.
package parser

import (
	"bytes"
	"errors"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
)

// ErrUnsupportedFormat indicates the input is neither xlsx nor legacy xls.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Format identifies a workbook container.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat sniffs the container signature of data.
func DetectFormat(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX, nil
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS, nil
	}
	return "", ErrUnsupportedFormat
}

// Open decodes an in-memory workbook in either supported format.
func Open(data []byte) (*models.Workbook, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}
	if format == FormatXLS {
		return ReadXLS(bytes.NewReader(data))
	}
	return ReadXLSX(bytes.NewReader(data))
}
