package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/activitylens/activitylens/internal/shared/types"
)

func TestNormalizeEntriesRenamesAliases(t *testing.T) {
	t.Parallel()

	entries := []map[string]any{
		{
			"endTime":    "2023-01-15 10:30",
			"trackName":  "Song A",
			"artistName": "Artist A",
			"msPlayed":   float64(60000),
		},
	}

	normalized, err := NormalizeEntries(entries)
	require.NoError(t, err)
	require.Len(t, normalized, 1)

	assert.Equal(t, "2023-01-15 10:30", normalized[0][FieldTimestamp])
	assert.Equal(t, "Song A", normalized[0][FieldTrack])
	assert.Equal(t, "Artist A", normalized[0][FieldArtist])
	assert.Equal(t, float64(60000), normalized[0][FieldMSPlayed])
	assert.NotContains(t, normalized[0], "endTime")
	assert.NotContains(t, normalized[0], "trackName")

	// The input entries are left untouched.
	assert.Contains(t, entries[0], "endTime")
	assert.NotContains(t, entries[0], FieldTimestamp)
}

func TestNormalizeEntriesIdempotent(t *testing.T) {
	t.Parallel()

	entries := []map[string]any{
		{
			FieldTimestamp: "2023-01-15T10:30:00Z",
			FieldTrack:     "Song A",
			FieldArtist:    "Artist A",
			FieldMSPlayed:  float64(60000),
		},
	}

	once, err := NormalizeEntries(entries)
	require.NoError(t, err)
	twice, err := NormalizeEntries(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestNormalizeEntriesSchemaMismatch(t *testing.T) {
	t.Parallel()

	entries := []map[string]any{
		{"podcast": "yes", "episode_name": "Ep 1"},
		{"podcast": "yes", "episode_name": "Ep 2"},
	}

	_, err := NormalizeEntries(entries)
	require.Error(t, err)

	var schemaErr *types.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, FieldTimestamp)
	assert.Contains(t, schemaErr.Missing, FieldTrack)
	assert.Contains(t, schemaErr.Missing, FieldMSPlayed)

	assert.True(t, HasEpisodeData(entries))
}

func TestNormalizeEntriesArtistMissingStillProceeds(t *testing.T) {
	t.Parallel()

	// The artist field is optional; its absence must not be a schema error.
	entries := []map[string]any{
		{
			FieldTimestamp: "2023-01-15T10:30:00Z",
			FieldTrack:     "Song A",
			FieldMSPlayed:  float64(60000),
		},
	}

	normalized, err := NormalizeEntries(entries)
	require.NoError(t, err)
	require.Len(t, normalized, 1)
}

func TestNormalizeEntriesEmptyInput(t *testing.T) {
	t.Parallel()

	normalized, err := NormalizeEntries(nil)
	require.NoError(t, err)
	assert.Nil(t, normalized)
}
