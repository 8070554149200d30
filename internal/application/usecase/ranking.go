package usecase

import (
	"sort"

	"github.com/activitylens/activitylens/internal/domain/entity"
	"github.com/activitylens/activitylens/internal/shared/types"
)

// TopTracks returns the top-N ranked rows grouped by composite key.
func TopTracks(records []entity.ActivityRecord, topN int) []entity.RankedRow {
	return topRankings(records, func(r entity.ActivityRecord) string { return r.CompositeKey }, topN)
}

// TopArtists returns the top-N ranked rows grouped by artist alone.
func TopArtists(records []entity.ActivityRecord, topN int) []entity.RankedRow {
	return topRankings(records, func(r entity.ActivityRecord) string { return r.Actor }, topN)
}

// topRankings groups records by key, counts plays and sums durations, and
// returns the first topN rows ordered by play count desc, total duration
// desc, then key asc so ties never reorder between runs. Records whose key
// cannot be constructed are skipped; an empty input yields an empty result.
func topRankings(records []entity.ActivityRecord, keyOf func(entity.ActivityRecord) string, topN int) []entity.RankedRow {
	if len(records) == 0 || topN <= 0 {
		return nil
	}

	groups := make(map[string]*entity.RankedRow, len(records))
	for _, rec := range records {
		key := keyOf(rec)
		if key == "" {
			continue
		}
		row := groups[key]
		if row == nil {
			row = &entity.RankedRow{Key: key}
			groups[key] = row
		}
		row.PlayCount++
		row.TotalMS += rec.DurationMS
	}

	rows := make([]entity.RankedRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PlayCount != rows[j].PlayCount {
			return rows[i].PlayCount > rows[j].PlayCount
		}
		if rows[i].TotalMS != rows[j].TotalMS {
			return rows[i].TotalMS > rows[j].TotalMS
		}
		return rows[i].Key < rows[j].Key
	})

	if len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

// RecordsForYear filters records to one calendar year.
func RecordsForYear(records []entity.ActivityRecord, year int) []entity.ActivityRecord {
	var out []entity.ActivityRecord
	for _, rec := range records {
		if rec.Year == year {
			out = append(out, rec)
		}
	}
	return out
}

// YearsPresent returns the distinct years in the data, newest first.
func YearsPresent(records []entity.ActivityRecord) []int {
	seen := make(map[int]bool)
	for _, rec := range records {
		seen[rec.Year] = true
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// YearlyPlayTimes sums play time per year, oldest first, for the bar panel.
func YearlyPlayTimes(records []entity.ActivityRecord) []types.YearlyPlayTime {
	totals := make(map[int]int64)
	for _, rec := range records {
		totals[rec.Year] += rec.DurationMS
	}
	years := make([]int, 0, len(totals))
	for year := range totals {
		years = append(years, year)
	}
	sort.Ints(years)

	out := make([]types.YearlyPlayTime, 0, len(years))
	for _, year := range years {
		out = append(out, types.YearlyPlayTime{Year: year, PlayMS: totals[year]})
	}
	return out
}

// ComputePeriodStats summarizes one analysis period for the stats line.
func ComputePeriodStats(name string, records []entity.ActivityRecord) entity.PeriodStats {
	tracks := make(map[string]bool)
	artists := make(map[string]bool)
	var totalMS int64
	for _, rec := range records {
		tracks[rec.CompositeKey] = true
		artists[rec.Actor] = true
		totalMS += rec.DurationMS
	}
	return entity.PeriodStats{
		Name:          name,
		UniqueTracks:  len(tracks),
		UniqueArtists: len(artists),
		TotalMS:       totalMS,
	}
}
