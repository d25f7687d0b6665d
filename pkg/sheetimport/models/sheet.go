package models

// Sheet is a named, ordered sequence of rows.
type Sheet struct {
	// Name is the sheet name as it appears in the workbook.
	Name string
	// Rows contains every row from the first one, blank rows included.
	Rows []Row
}
