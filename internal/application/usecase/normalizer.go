package usecase

import (
	"github.com/activitylens/activitylens/internal/shared/types"
)

// Canonical field names of the streaming-history schema. The newest export
// format's names are canonical; older formats are aliased onto them.
const (
	FieldTimestamp = "ts"
	FieldTrack     = "master_metadata_track_name"
	FieldArtist    = "master_metadata_album_artist_name"
	FieldMSPlayed  = "ms_played"
	FieldEpisode   = "episode_name"
)

// fieldAliases maps every historical field-name variant onto its canonical
// name. Format-version churn is isolated to this one table; unrecognized
// fields pass through untouched.
var fieldAliases = map[string]string{
	"endTime":     FieldTimestamp,
	"trackName":   FieldTrack,
	"track_name":  FieldTrack,
	"artistName":  FieldArtist,
	"artist_name": FieldArtist,
	"msPlayed":    FieldMSPlayed,
}

// NormalizeEntries renames historical field-name variants to their
// canonical names. The input is not mutated. If a required canonical field
// (timestamp, track, play duration) is absent from every entry, a
// SchemaError is returned instead of a silently empty result. A missing
// artist field alone is tolerated; the validity filter fills the sentinel.
func NormalizeEntries(entries []map[string]any) ([]map[string]any, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	normalized := make([]map[string]any, 0, len(entries))
	present := make(map[string]bool)
	for _, entry := range entries {
		out := make(map[string]any, len(entry))
		for key, value := range entry {
			canonical := key
			if alias, ok := fieldAliases[key]; ok {
				canonical = alias
			}
			out[canonical] = value
			present[canonical] = true
		}
		normalized = append(normalized, out)
	}

	var missing []string
	for _, field := range []string{FieldTimestamp, FieldTrack, FieldMSPlayed} {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &types.SchemaError{Missing: missing}
	}
	return normalized, nil
}

// HasEpisodeData reports whether any entry carries the podcast episode
// field, used to hint that an export contains only podcast history when
// track fields are missing.
func HasEpisodeData(entries []map[string]any) bool {
	for _, entry := range entries {
		if _, ok := entry[FieldEpisode]; ok {
			return true
		}
	}
	return false
}
