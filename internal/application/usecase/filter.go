package usecase

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/activitylens/activitylens/internal/domain/entity"
)

// timestampLayouts are the temporal formats seen across export format
// versions: RFC3339 in current exports, minute-precision local strings in
// the oldest ones.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// FilterRecords turns normalized entries into validated ActivityRecords.
// Entries with an empty track name, an unparseable timestamp or duration,
// or a duration below the minimum-play threshold are dropped; the dropped
// count is returned for the before/after observability line. Output order
// follows input order, but downstream aggregation does not depend on it.
func FilterRecords(entries []map[string]any) (records []entity.ActivityRecord, dropped int) {
	for _, entry := range entries {
		subject := strings.TrimSpace(coerceString(entry[FieldTrack]))
		if subject == "" {
			dropped++
			continue
		}

		actor := strings.TrimSpace(coerceString(entry[FieldArtist]))
		if actor == "" {
			actor = entity.UnknownActor
		}

		ts, ok := coerceTimestamp(entry[FieldTimestamp])
		if !ok {
			dropped++
			continue
		}

		ms, ok := coerceInt64(entry[FieldMSPlayed])
		if !ok || ms < entity.MinPlayedMS {
			dropped++
			continue
		}

		records = append(records, entity.ActivityRecord{
			Timestamp:    ts,
			Subject:      subject,
			Actor:        actor,
			DurationMS:   ms,
			Year:         ts.Year(),
			CompositeKey: subject + entity.KeyDelimiter + actor,
		})
	}
	return records, dropped
}

// coerceString returns the value as a string, or "" for anything that is
// not textual. Non-textual track/artist values are treated as absent.
func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// coerceTimestamp parses the value against the known export layouts and
// normalizes to UTC. Failure marks the field invalid, never panics.
func coerceTimestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// coerceInt64 accepts the numeric shapes JSON decoding can produce plus
// numeric strings, which old exports used for play durations.
func coerceInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}
