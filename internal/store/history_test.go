package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := OpenHistory(path)
	require.NoError(t, err)
	defer h.Close()

	t.Run("empty transcript", func(t *testing.T) {
		entries, err := h.Recent(10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("record and read back newest first", func(t *testing.T) {
		base := time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)
		require.NoError(t, h.Record("remind me to buy milk", "ADD_TASK", "productivity", base))
		require.NoError(t, h.Record("plan a trip to Tokyo", "SET_TRAVEL_DESTINATION", "travel", base.Add(time.Minute)))

		entries, err := h.Recent(10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "plan a trip to Tokyo", entries[0].Utterance)
		assert.Equal(t, "SET_TRAVEL_DESTINATION", entries[0].Action)
		assert.Equal(t, "remind me to buy milk", entries[1].Utterance)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		entries, err := h.Recent(1)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestHistoryReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := OpenHistory(path)
	require.NoError(t, err)
	require.NoError(t, h.Record("hello there", "", "default", time.Now()))
	require.NoError(t, h.Close())

	h, err = OpenHistory(path)
	require.NoError(t, err)
	defer h.Close()

	entries, err := h.Recent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
