package nldate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 11 March 2026. Weekday math below is anchored to it.
var wednesday = time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)

func TestResolve_ExplicitDayMonth(t *testing.T) {
	for _, tc := range []struct {
		text string
		want Date
	}{
		{"15 march", Date{15, time.March}},
		{"15th march", Date{15, time.March}},
		{"3rd jan", Date{3, time.January}},
		{"march 15", Date{15, time.March}},
		{"dec 1st", Date{1, time.December}},
		{"party on 22nd august", Date{22, time.August}},
	} {
		got, ok := Resolve(tc.text, wednesday)
		require.True(t, ok, tc.text)
		assert.Equal(t, tc.want, got, tc.text)
	}
}

func TestResolve_Keywords(t *testing.T) {
	t.Run("today", func(t *testing.T) {
		got, ok := Resolve("today", wednesday)
		require.True(t, ok)
		assert.Equal(t, Date{11, time.March}, got)
	})

	t.Run("tomorrow", func(t *testing.T) {
		got, ok := Resolve("tomorrow", wednesday)
		require.True(t, ok)
		assert.Equal(t, Date{12, time.March}, got)
	})

	t.Run("tomorrow rolls over the month", func(t *testing.T) {
		endOfMonth := time.Date(2026, time.March, 31, 9, 0, 0, 0, time.UTC)
		got, ok := Resolve("tomorrow", endOfMonth)
		require.True(t, ok)
		assert.Equal(t, Date{1, time.April}, got)
	})
}

func TestResolve_Weekdays(t *testing.T) {
	t.Run("upcoming weekday", func(t *testing.T) {
		// Friday is two days after a Wednesday anchor
		got, ok := Resolve("friday", wednesday)
		require.True(t, ok)
		assert.Equal(t, Date{13, time.March}, got)
	})

	t.Run("weekday behind in the week wraps forward", func(t *testing.T) {
		// Monday from a Wednesday means the coming Monday
		got, ok := Resolve("monday", wednesday)
		require.True(t, ok)
		assert.Equal(t, Date{16, time.March}, got)
	})

	t.Run("same weekday never means today", func(t *testing.T) {
		got, ok := Resolve("wednesday", wednesday)
		require.True(t, ok)
		assert.Equal(t, Date{18, time.March}, got)
	})

	t.Run("next adds a week", func(t *testing.T) {
		got, ok := Resolve("next friday", wednesday)
		require.True(t, ok)
		assert.Equal(t, Date{20, time.March}, got)
	})
}

func TestResolve_Unrecognized(t *testing.T) {
	for _, text := range []string{"", "soonish", "the 15th"} {
		_, ok := Resolve(text, wednesday)
		assert.False(t, ok, text)
	}
}

func TestMonthByName(t *testing.T) {
	m, ok := MonthByName("March")
	require.True(t, ok)
	assert.Equal(t, time.March, m)

	m, ok = MonthByName(" sep ")
	require.True(t, ok)
	assert.Equal(t, time.September, m)

	_, ok = MonthByName("smarch")
	assert.False(t, ok)
}

func TestResolveDayMonth(t *testing.T) {
	d, ok := ResolveDayMonth(15, "mar", wednesday)
	require.True(t, ok)
	assert.Equal(t, Date{15, time.March}, d)

	// Unknown month name degrades to the current month
	d, ok = ResolveDayMonth(9, "smarch", wednesday)
	assert.False(t, ok)
	assert.Equal(t, Date{9, time.March}, d)
}
