package entity

import (
	"strings"
	"time"
)

// UnknownActor is the sentinel substituted for a missing artist name.
const UnknownActor = "Unknown"

// KeyDelimiter joins subject and actor into the composite ranking key.
const KeyDelimiter = " - "

// MinPlayedMS is the minimum duration for an activity to count as a real
// listen. Plays below this are treated as skips and dropped.
const MinPlayedMS int64 = 15000

// ActivityRecord is the normalized, validated unit representing one
// activity event from an export.
type ActivityRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Subject      string    `json:"subject"`
	Actor        string    `json:"actor"`
	DurationMS   int64     `json:"duration_ms"`
	Year         int       `json:"year"`
	CompositeKey string    `json:"composite_key"`
}

// SplitCompositeKey re-derives the subject and actor from a composite key.
// Subjects may themselves contain the delimiter, so only the last
// occurrence splits; a key without a delimiter yields the whole key as
// subject and the unknown sentinel as actor.
func SplitCompositeKey(key string) (subject, actor string) {
	idx := strings.LastIndex(key, KeyDelimiter)
	if idx < 0 {
		return key, UnknownActor
	}
	return key[:idx], key[idx+len(KeyDelimiter):]
}
