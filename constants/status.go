package constants

// ParseStatus is the canonical enrichment status for a submission row.
type ParseStatus string

// Stable values (these exact strings are written to the sheet).
const (
	// ParseStatusPending is implicit: a row whose status cell is still
	// empty has not been enriched yet.
	ParseStatusPending ParseStatus = ""
	ParseStatusParsed  ParseStatus = "parsed"
)
