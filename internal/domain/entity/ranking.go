package entity

// RankedRow is one aggregate row of a top-N ranking, keyed by composite
// key for track rankings or by actor for artist rankings.
type RankedRow struct {
	Key       string `json:"key"`
	PlayCount int    `json:"play_count"`
	TotalMS   int64  `json:"total_ms"`
}

// PeriodStats summarizes one analysis period for the stats line.
type PeriodStats struct {
	Name          string `json:"name"`
	UniqueTracks  int    `json:"unique_tracks"`
	UniqueArtists int    `json:"unique_artists"`
	TotalMS       int64  `json:"total_ms"`
}
