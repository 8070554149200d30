package repository

// ArchiveRepository defines the interface for reading JSON payloads out of
// a personal-data export archive.
type ArchiveRepository interface {
	// FindArchive resolves a filesystem glob to the first matching archive
	// path, in lexical order.
	FindArchive(pattern string) (string, error)

	// ListMatches returns the names of JSON members of the archive whose
	// base name matches pattern, in archive order.
	ListMatches(archivePath, pattern string) ([]string, error)

	// LoadEntries decodes every named member as a JSON array of objects and
	// merges the arrays. A member that fails to decode is skipped; its error
	// is returned in shardErrs so the caller can report it without aborting
	// the remaining shards.
	LoadEntries(archivePath string, names []string) (entries []map[string]any, shardErrs []error, err error)

	// LoadTree decodes a single member as one JSON object tree. When several
	// candidates are given, well-known payload names are preferred over the
	// first match.
	LoadTree(archivePath string, names []string) (map[string]any, error)
}
