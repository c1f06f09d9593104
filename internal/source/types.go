package source

import "github.com/theirongolddev/gigfin/internal/model"

// Format is the encoding of a statement file.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// RawEntry is one transaction line in a JSONL statement. Amount may be
// signed when the type is omitted.
type RawEntry struct {
	ID          string  `json:"id,omitempty"`
	Type        string  `json:"type,omitempty"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

// DiscoveredFile is a statement file found during directory scanning.
type DiscoveredFile struct {
	Path     string
	Format   Format
	Platform string // first directory under the scan root, e.g. "uber"; empty at the root
}

// ParseResult holds the output of parsing a single statement file.
type ParseResult struct {
	File         DiscoveredFile
	Transactions []model.Transaction
	ParseErrors  int
	Err          error
}
