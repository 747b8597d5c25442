package intent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The table order is load-bearing: broad navigation before narrow
// extraction, single-word exact matches early, sweeps and the notes
// fallback last. This test pins it so a refactor cannot silently
// reshuffle match priority.
func TestRuleOrder(t *testing.T) {
	want := []string{
		"reset",
		"navigate",
		"priority-word",
		"tab-name",
		"convert-last-note",
		"sync-last-task",
		"plan-day",
		"add-task",
		"delete-task",
		"delete-habit",
		"add-habit",
		"toggle-task",
		"toggle-habit",
		"add-note",
		"schedule-event",
		"travel-destination",
		"budget",
		"itinerary",
		"flights",
		"travel-sweep",
		"notes-freetext",
	}
	assert.Equal(t, want, RuleOrder())
}

func TestParse_Reset(t *testing.T) {
	for _, phrase := range []string{"go home", "show home", "reset", "RESET"} {
		it := Parse(phrase, Context{})
		assert.Equal(t, ActionReset, it.Action, phrase)
		assert.Equal(t, LayoutDefault, it.Layout, phrase)
	}
}

func TestParse_Navigation(t *testing.T) {
	t.Run("layouts", func(t *testing.T) {
		it := Parse("open travel", Context{})
		assert.Equal(t, ActionSwitchLayout, it.Action)
		assert.Equal(t, LayoutTravel, it.Layout)

		it = Parse("go to developer mode", Context{})
		assert.Equal(t, LayoutDev, it.Data.Layout)

		it = Parse("show productivity", Context{})
		assert.Equal(t, ActionSwitchTab, it.Action)
		assert.Equal(t, TabDashboard, it.Data.Tab)
	})

	t.Run("tabs", func(t *testing.T) {
		for phrase, tab := range map[string]Tab{
			"open tasks":          TabTasks,
			"go to habits":        TabHabits,
			"switch to calendar":  TabCalendar,
			"take me to my notes": TabNotes,
			"show dashboard":      TabDashboard,
		} {
			it := Parse(phrase, Context{})
			assert.Equal(t, ActionSwitchTab, it.Action, phrase)
			assert.Equal(t, tab, it.Data.Tab, phrase)
		}
	})

	t.Run("unknown destination falls through", func(t *testing.T) {
		// "open the fridge" matches no nav target and no other rule
		it := Parse("open the fridge", Context{})
		assert.Empty(t, it.Action)
	})
}

// Bare tab names must not be swallowed by substring rules; "notes" in
// particular sits one rule position away from being parsed as a note
// whose content is the empty string.
func TestParse_BareTabNames(t *testing.T) {
	for _, phrase := range []string{"tasks", "habits", "calendar", "notes"} {
		it := Parse(phrase, Context{})
		assert.Equal(t, ActionSwitchTab, it.Action, phrase)
		assert.Equal(t, Tab(phrase), it.Data.Tab, phrase)
	}

	it := Parse("productivity", Context{})
	assert.Equal(t, ActionSwitchTab, it.Action)
	assert.Equal(t, TabDashboard, it.Data.Tab)
}

func TestParse_PriorityWord(t *testing.T) {
	for _, phrase := range []string{"high", "Medium", "LOW"} {
		it := Parse(phrase, Context{})
		assert.Equal(t, ActionConfirmPriority, it.Action, phrase)
	}
	assert.Equal(t, "high", Parse("high", Context{}).Data.Priority)
}

func TestParse_AddTask(t *testing.T) {
	t.Run("with priority", func(t *testing.T) {
		it := Parse("add task buy milk high priority", Context{})
		require.Equal(t, ActionAddTask, it.Action)
		assert.Equal(t, "buy milk", it.Data.Title)
		assert.Equal(t, PriorityHigh, it.Data.Priority)
		assert.False(t, it.NeedsClarification())
	})

	t.Run("without priority needs clarification", func(t *testing.T) {
		it := Parse("remind me to call mom", Context{})
		require.Equal(t, ActionAddTask, it.Action)
		assert.Equal(t, "call mom", it.Data.Title)
		assert.Empty(t, it.Data.Priority)
		assert.True(t, it.NeedsClarification())
	})

	t.Run("casing preserved in title", func(t *testing.T) {
		it := Parse("remind me to email Dr. Smith", Context{})
		assert.Equal(t, "email Dr. Smith", it.Data.Title)
	})

	t.Run("trailing schedule words trimmed", func(t *testing.T) {
		it := Parse("remind me to water plants tomorrow", Context{})
		assert.Equal(t, "water plants", it.Data.Title)
	})

	t.Run("sync to calendar flag", func(t *testing.T) {
		it := Parse("add task dentist checkup low priority and add it to my calendar", Context{})
		assert.True(t, it.Data.SyncToCalendar)
	})

	t.Run("tasks tab treats short phrases as tasks", func(t *testing.T) {
		it := Parse("water the plants", Context{ActiveTab: TabTasks})
		assert.Equal(t, ActionAddTask, it.Action)
	})
}

func TestParse_DeleteAndToggle(t *testing.T) {
	it := Parse("delete task buy milk", Context{})
	assert.Equal(t, ActionDeleteTask, it.Action)
	assert.Equal(t, "buy milk", it.Data.Title)

	it = Parse("complete buy milk", Context{})
	assert.Equal(t, ActionToggleTask, it.Action)
	assert.Equal(t, "buy milk", it.Data.Title)

	it = Parse("uncheck buy milk", Context{})
	assert.Equal(t, ActionToggleTask, it.Action)

	// "complete habit X" must reach the habit rule, not the task rule
	it = Parse("complete habit meditate", Context{})
	assert.Equal(t, ActionToggleHabit, it.Action)
	assert.Equal(t, "meditate", it.Data.Title)

	it = Parse("delete habit meditate", Context{})
	assert.Equal(t, ActionDeleteHabit, it.Action)
	assert.Equal(t, "meditate", it.Data.Title)
}

func TestParse_AddHabit(t *testing.T) {
	it := Parse("add habit meditate", Context{})
	require.Equal(t, ActionAddHabit, it.Action)
	assert.Equal(t, "meditate", it.Data.Title)
	assert.Equal(t, "09:00", it.Data.Time)

	// "called" filler is stripped
	it = Parse("create habit called morning run", Context{})
	assert.Equal(t, "morning run", it.Data.Title)
}

func TestParse_Notes(t *testing.T) {
	it := Parse("note remember the wifi password", Context{})
	require.Equal(t, ActionAddNote, it.Action)
	assert.Equal(t, "remember the wifi password", it.Data.Content)

	// Free text on the notes surface becomes a note verbatim
	it = Parse("milk bread eggs", Context{ActiveTab: TabNotes})
	require.Equal(t, ActionAddNote, it.Action)
	assert.Equal(t, "milk bread eggs", it.Data.Content)

	// But not when another rule claims it first
	it = Parse("open tasks", Context{ActiveTab: TabNotes})
	assert.Equal(t, ActionSwitchTab, it.Action)
}

func TestParse_ScheduleEvent(t *testing.T) {
	t.Run("time anchors the event", func(t *testing.T) {
		it := Parse("schedule dentist at 3pm", Context{})
		require.Equal(t, ActionAddEvent, it.Action)
		assert.Equal(t, "dentist", it.Data.Title)
		assert.Equal(t, "3pm", it.Data.Start)
		assert.Equal(t, "today", it.Data.DateStr)
	})

	t.Run("relative day keyword", func(t *testing.T) {
		it := Parse("schedule dentist tomorrow at 3pm", Context{})
		require.Equal(t, ActionAddEvent, it.Action)
		assert.Equal(t, "dentist", it.Data.Title)
		assert.Equal(t, "tomorrow", it.Data.DateStr)
	})

	t.Run("next weekday", func(t *testing.T) {
		it := Parse("schedule standup next friday", Context{})
		require.Equal(t, ActionAddEvent, it.Action)
		assert.Equal(t, "next friday", it.Data.DateStr)
		assert.Equal(t, "All day", it.Data.Start)
	})

	t.Run("explicit day month", func(t *testing.T) {
		it := Parse("schedule party on 15th march", Context{})
		require.Equal(t, ActionAddEvent, it.Action)
		assert.Equal(t, 15, it.Data.Day)
		assert.Equal(t, "march", it.Data.Month)
		assert.Empty(t, it.Data.DateStr)
	})

	t.Run("month day order", func(t *testing.T) {
		it := Parse("add event launch on march 3rd", Context{})
		require.Equal(t, ActionAddEvent, it.Action)
		assert.Equal(t, 3, it.Data.Day)
		assert.Equal(t, "march", it.Data.Month)
	})

	t.Run("undated off-calendar asks for clarification", func(t *testing.T) {
		it := Parse("schedule dentist", Context{ActiveTab: TabDashboard})
		require.Equal(t, ActionClarifyEvent, it.Action)
		assert.Equal(t, "dentist", it.Data.Title)
		assert.True(t, it.NeedsClarification())
	})

	t.Run("undated on calendar defaults to today", func(t *testing.T) {
		it := Parse("schedule dentist", Context{ActiveTab: TabCalendar})
		require.Equal(t, ActionAddEvent, it.Action)
		assert.Equal(t, "today", it.Data.DateStr)
		assert.Equal(t, "All day", it.Data.Start)
	})
}

func TestParse_LastItemShortcuts(t *testing.T) {
	it := Parse("turn my last note into an event", Context{})
	assert.Equal(t, ActionConvertNote, it.Action)

	it = Parse("add my last task to the calendar", Context{})
	assert.Equal(t, ActionSyncTask, it.Action)

	it = Parse("plan my day", Context{})
	assert.Equal(t, ActionPlanDay, it.Action)
}

func TestParse_Travel(t *testing.T) {
	t.Run("destination", func(t *testing.T) {
		it := Parse("plan a trip to Tokyo", Context{})
		require.Equal(t, ActionSetDestination, it.Action)
		assert.Equal(t, "Tokyo", it.Data.Destination)
		assert.Equal(t, LayoutTravel, it.Layout)
	})

	t.Run("budget with amount", func(t *testing.T) {
		it := Parse("add $50 for snorkeling to my budget", Context{})
		require.Equal(t, ActionAddBudgetItem, it.Action)
		assert.Equal(t, 50.0, it.Data.Amount)
		assert.Equal(t, "for snorkeling", it.Data.Item)
	})

	t.Run("budget without item label", func(t *testing.T) {
		it := Parse("add 20 to budget", Context{})
		require.Equal(t, ActionAddBudgetItem, it.Action)
		assert.Equal(t, 20.0, it.Data.Amount)
		assert.Equal(t, "Miscellaneous", it.Data.Item)
	})

	t.Run("itinerary", func(t *testing.T) {
		it := Parse("add to my itinerary surfing at Uluwatu", Context{})
		require.Equal(t, ActionAddItineraryItem, it.Action)
		assert.Equal(t, "surfing at Uluwatu", it.Data.Activity)

		it = Parse("plan activity snorkeling", Context{})
		require.Equal(t, ActionAddItineraryItem, it.Action)
		assert.Equal(t, "snorkeling", it.Data.Activity)
	})

	t.Run("flights", func(t *testing.T) {
		it := Parse("show me flights", Context{})
		assert.Equal(t, LayoutTravel, it.Layout)
	})

	t.Run("keyword sweep", func(t *testing.T) {
		it := Parse("i want to see bali", Context{})
		assert.Equal(t, ActionSwitchLayout, it.Action)
		assert.Equal(t, LayoutTravel, it.Layout)
	})
}

// Full-struct round trip for the flagship phrase: nothing beyond the
// expected fields may leak into the payload.
func TestParse_RoundTrip(t *testing.T) {
	got := Parse("add task buy milk high priority", Context{})
	want := Intent{
		Layout: LayoutProductivity,
		Action: ActionAddTask,
		Data:   Data{Title: "buy milk", Priority: PriorityHigh},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("intent mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NoMatch(t *testing.T) {
	it := Parse("what is the meaning of life", Context{})
	assert.Empty(t, it.Action)
	assert.Equal(t, LayoutDefault, it.Layout)
}
