package models

// Workbook is an ordered collection of sheets read from one file.
type Workbook struct {
	// Name is the file name, used for logging only.
	Name string `json:"name,omitempty"`
	// Sheets holds the sheets in workbook order.
	Sheets []Sheet `json:"sheets"`
}
