package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genui/internal/nldate"
)

var march11 = time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)

func TestTasks(t *testing.T) {
	p := NewProductivity()

	t.Run("add stamps date and id", func(t *testing.T) {
		task := p.AddTask("buy milk", "high", false, march11)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, "2026-03-11", task.Date)
		assert.False(t, task.IsCompleted)
		assert.Len(t, p.Tasks(), 1)
	})

	t.Run("toggle is idempotent over two flips", func(t *testing.T) {
		p.ToggleTaskByTitle("Buy Milk") // case-insensitive
		assert.True(t, p.Tasks()[0].IsCompleted)
		p.ToggleTaskByTitle("buy milk")
		assert.False(t, p.Tasks()[0].IsCompleted)
	})

	t.Run("toggle unknown title is a no-op", func(t *testing.T) {
		p.ToggleTaskByTitle("no such task")
		assert.False(t, p.Tasks()[0].IsCompleted)
	})

	t.Run("last task is most recent", func(t *testing.T) {
		p.AddTask("second", "low", false, march11)
		last, ok := p.LastTask()
		require.True(t, ok)
		assert.Equal(t, "second", last.Title)
	})

	t.Run("delete by title", func(t *testing.T) {
		p.DeleteTaskByTitle("BUY MILK")
		require.Len(t, p.Tasks(), 1)
		assert.Equal(t, "second", p.Tasks()[0].Title)
	})
}

func TestTaskCalendarSync(t *testing.T) {
	p := NewProductivity()
	p.AddTask("dentist", "medium", true, march11)

	require.Len(t, p.Events(), 1)
	ev := p.Events()[0]
	assert.Equal(t, "Task: dentist", ev.Title)
	assert.Equal(t, "All day", ev.Start)
	assert.Equal(t, 11, ev.DayNum)
	assert.Equal(t, time.March, ev.Month)
}

func TestHabits(t *testing.T) {
	p := NewProductivity()
	h := p.AddHabit("meditate", "07:30", false, march11)
	assert.Equal(t, 0, h.Streak)

	t.Run("streak follows completion", func(t *testing.T) {
		p.ToggleHabitByTitle("meditate")
		assert.Equal(t, 1, p.Habits()[0].Streak)
		assert.True(t, p.Habits()[0].CompletedToday)

		p.ToggleHabitByTitle("meditate")
		assert.Equal(t, 0, p.Habits()[0].Streak)
		assert.False(t, p.Habits()[0].CompletedToday)
	})

	t.Run("streak never goes negative", func(t *testing.T) {
		p.habits[0].CompletedToday = true
		p.habits[0].Streak = 0
		p.ToggleHabitByTitle("meditate")
		assert.Equal(t, 0, p.Habits()[0].Streak)
	})

	t.Run("sync creates an event at the habit time", func(t *testing.T) {
		p.AddHabit("journal", "21:00", true, march11)
		require.Len(t, p.Events(), 1)
		assert.Equal(t, "Habit: journal", p.Events()[0].Title)
		assert.Equal(t, "21:00", p.Events()[0].Start)
	})

	t.Run("delete by title", func(t *testing.T) {
		p.DeleteHabitByTitle("Journal")
		require.Len(t, p.Habits(), 1)
		assert.Equal(t, "meditate", p.Habits()[0].Title)
	})
}

func TestNotesAndEvents(t *testing.T) {
	p := NewProductivity()

	_, ok := p.LastNote()
	assert.False(t, ok)

	p.AddNote("first", march11)
	p.AddNote("second", march11)
	last, ok := p.LastNote()
	require.True(t, ok)
	assert.Equal(t, "second", last.Content)

	ev := p.AddEvent("launch", "3pm", nldate.Date{Day: 15, Month: time.March})
	assert.Equal(t, 15, ev.DayNum)
	assert.Equal(t, time.March, ev.Month)
	assert.Len(t, p.Events(), 1)
}
