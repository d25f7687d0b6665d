package models

// ParseResult is the output of one import parse.
type ParseResult struct {
	// Identity is the tenant the records belong to.
	Identity TenantIdentity `json:"identity"`
	// Records holds deduplicated records per kind. Every kind is present.
	Records map[Kind][]Record `json:"records"`
}

// NewParseResult returns a result with an empty list for every kind.
func NewParseResult(id TenantIdentity) *ParseResult {
	records := make(map[Kind][]Record, len(AllKinds()))
	for _, k := range AllKinds() {
		records[k] = []Record{}
	}
	return &ParseResult{Identity: id, Records: records}
}

// Count returns the total number of records across kinds.
func (r *ParseResult) Count() int {
	n := 0
	for _, recs := range r.Records {
		n += len(recs)
	}
	return n
}
