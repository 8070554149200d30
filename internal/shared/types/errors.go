package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoArchiveFound    = errors.New("no export archive found. Place your data export ZIP in the data directory first")
	ErrNoMatchingEntries = errors.New("no JSON entries in the archive match the expected file pattern")
	ErrExportNothingToDo = errors.New("nothing to export")
	ErrInvalidPeriod     = errors.New("selected period is not present in the data")
)

// SchemaError reports required canonical fields that are entirely absent
// from an export, which means the payload shape is not one we understand.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("export schema mismatch: missing required fields: %s", strings.Join(e.Missing, ", "))
}
