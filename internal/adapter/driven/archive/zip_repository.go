// Package archive reads JSON payloads from personal-data export archives.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/activitylens/activitylens/internal/domain/repository"
	"github.com/activitylens/activitylens/internal/shared/types"
)

// preferredTreeNames are the well-known payload file names of account
// dumps; when present they win over whatever else matched the pattern.
var preferredTreeNames = []string{"user_data_tiktok.json", "user_data.json"}

// ZipRepository implements the ArchiveRepository over ZIP archives.
type ZipRepository struct{}

// NewZipRepository creates a new ArchiveRepository implementation.
func NewZipRepository() repository.ArchiveRepository {
	return &ZipRepository{}
}

// FindArchive resolves a filesystem glob to the first matching archive
// path in lexical order.
func (r *ZipRepository) FindArchive(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid archive pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", types.ErrNoArchiveFound
	}
	sort.Strings(matches)
	return matches[0], nil
}

// ListMatches returns the JSON members of the archive whose base name
// matches pattern, in archive order. Matching is case-insensitive, the way
// export tools name their payloads inconsistently across versions.
func (r *ZipRepository) ListMatches(archivePath, pattern string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("error opening archive %s: %w", archivePath, err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := strings.ToLower(path.Base(f.Name))
		if !strings.HasSuffix(base, ".json") {
			continue
		}
		if ok, _ := path.Match(strings.ToLower(pattern), base); ok {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return nil, types.ErrNoMatchingEntries
	}
	return names, nil
}

// LoadEntries decodes every named member as a JSON array of objects and
// merges the arrays. A shard that fails to decode contributes nothing; its
// error is collected in shardErrs and the remaining shards still load.
func (r *ZipRepository) LoadEntries(archivePath string, names []string) ([]map[string]any, []error, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening archive %s: %w", archivePath, err)
	}
	defer zr.Close()

	var entries []map[string]any
	var shardErrs []error
	for _, name := range names {
		data, err := readMember(&zr.Reader, name)
		if err != nil {
			shardErrs = append(shardErrs, fmt.Errorf("reading %s: %w", name, err))
			continue
		}
		var shard []map[string]any
		if err := json.Unmarshal(data, &shard); err != nil {
			shardErrs = append(shardErrs, fmt.Errorf("decoding %s: %w", name, err))
			continue
		}
		entries = append(entries, shard...)
	}
	return entries, shardErrs, nil
}

// LoadTree decodes a single member as one JSON object tree, preferring
// well-known payload names among the candidates.
func (r *ZipRepository) LoadTree(archivePath string, names []string) (map[string]any, error) {
	if len(names) == 0 {
		return nil, types.ErrNoMatchingEntries
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("error opening archive %s: %w", archivePath, err)
	}
	defer zr.Close()

	name := names[0]
selection:
	for _, preferred := range preferredTreeNames {
		for _, candidate := range names {
			if strings.ToLower(path.Base(candidate)) == preferred {
				name = candidate
				break selection
			}
		}
	}

	data, err := readMember(&zr.Reader, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return tree, nil
}

// readMember reads one archive member fully into memory.
func readMember(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("member %s not found in archive", name)
}
