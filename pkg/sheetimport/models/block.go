package models

// Block is a titled table found inside a sheet.
type Block struct {
	// Sheet is the name of the sheet holding the block.
	Sheet string
	// Title is the trimmed title cell.
	Title string
	// Header is the header row, or nil when the block has none.
	Header []string
	// Rows are the data rows up to the terminating blank row.
	Rows []Row
	// Start is the 0-based row index of the title.
	Start int
}

// Width returns the widest of the header and the data rows.
func (b Block) Width() int {
	w := 0
	for i, h := range b.Header {
		if h != "" {
			w = i + 1
		}
	}
	for _, r := range b.Rows {
		if rw := r.Width(); rw > w {
			w = rw
		}
	}
	return w
}
