package parser

import "fmt"

// SheetError represents a failure while reading one sheet.
type SheetError struct {
	SheetName string
	Component string // "cells"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("read error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, component string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
