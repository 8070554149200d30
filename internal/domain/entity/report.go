package entity

// ReportBlock is one named, self-contained table destined for a region of
// an output sheet. Blocks are immutable once built; the layout engine only
// reads row counts to place the next block.
type ReportBlock struct {
	Caption string     `json:"caption"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the block carries no data rows. Empty blocks are
// skipped entirely during placement.
func (b ReportBlock) Empty() bool {
	return len(b.Rows) == 0
}

// ReportSheet is an ordered list of blocks for one output sheet.
type ReportSheet struct {
	Name   string        `json:"name"`
	Blocks []ReportBlock `json:"blocks"`
}

// Report is the full, ordered multi-sheet report handed to an exporter.
// Sheet order and block order are deterministic for a given input.
type Report struct {
	Sheets []ReportSheet `json:"sheets"`
}
