package engine

import (
	"fmt"

	"genui/internal/intent"
	"genui/internal/logging"
	"genui/internal/nldate"
)

// dispatch applies one resolved intent: a layout/tab transition plus
// at most one domain mutation, with a spoken confirmation where the
// action warrants one.
func (e *Engine) dispatch(it intent.Intent, raw string) Result {
	if it.Layout == intent.LayoutDefault && it.Action == intent.ActionReset {
		e.layout = intent.LayoutDefault
		e.tab = intent.TabDashboard
		e.clearPending()
		return Result{Handled: true, Action: it.Action, Layout: e.layout, Tab: e.tab}
	}

	if it.Layout != intent.LayoutDefault && it.Layout != e.layout {
		e.layout = it.Layout
	}

	res := Result{Handled: true, Action: it.Action}
	data := it.Data

	switch it.Action {
	case intent.ActionSwitchTab:
		e.tab = data.Tab
		e.say(&res, fmt.Sprintf("Opening %s", data.Tab))

	case intent.ActionSwitchLayout:
		// Layout transition already applied above.

	case intent.ActionAddTask:
		e.tab = intent.TabTasks
		if data.Priority == "" {
			e.setPending(pendingPriority, data)
			res.AwaitingFollowUp = true
			e.ask(&res, "What is the priority for this task? (High, Medium, or Low)")
		} else {
			e.prod.AddTask(data.Title, data.Priority, data.SyncToCalendar, e.now())
			e.say(&res, "Task added with "+data.Priority+" priority")
		}

	case intent.ActionConfirmPriority:
		// Only meaningful as a follow-up; standalone it is a no-op.
		logging.Dispatch("stray priority word ignored (nothing pending)")

	case intent.ActionDeleteTask:
		e.prod.DeleteTaskByTitle(data.Title)

	case intent.ActionToggleTask:
		e.tab = intent.TabTasks
		e.prod.ToggleTaskByTitle(data.Title)
		e.say(&res, "Task "+data.Title+" updated")

	case intent.ActionAddHabit:
		e.tab = intent.TabHabits
		t := data.Time
		if t == "" {
			t = e.habitTime
		}
		e.prod.AddHabit(data.Title, t, data.SyncToCalendar, e.now())
		e.say(&res, "Habit "+data.Title+" added")

	case intent.ActionDeleteHabit:
		e.prod.DeleteHabitByTitle(data.Title)

	case intent.ActionToggleHabit:
		e.tab = intent.TabHabits
		e.prod.ToggleHabitByTitle(data.Title)
		e.say(&res, "Habit "+data.Title+" updated")

	case intent.ActionAddNote:
		e.tab = intent.TabNotes
		e.prod.AddNote(data.Content, e.now())
		e.say(&res, "Note saved")

	case intent.ActionConvertNote:
		note, ok := e.prod.LastNote()
		if !ok {
			res.Message = "No notes to convert."
			break
		}
		content := note.Content
		// Truncate on runes so a multi-byte character at the cut
		// point cannot leave an invalid title.
		if r := []rune(content); len(r) > 20 {
			content = string(r[:20]) + "..."
		}
		now := e.now()
		e.prod.AddEvent("Note: "+content, "All day", nldate.Date{Day: now.Day(), Month: now.Month()})
		res.Message = "Last note converted to calendar event!"

	case intent.ActionSyncTask:
		task, ok := e.prod.LastTask()
		if !ok {
			res.Message = "No tasks to sync."
			break
		}
		now := e.now()
		e.prod.AddEvent("Task: "+task.Title, "All day", nldate.Date{Day: now.Day(), Month: now.Month()})
		res.Message = "Task mirrored to calendar!"

	case intent.ActionClarifyEvent:
		e.setPending(pendingEventDate, data)
		res.AwaitingFollowUp = true
		e.ask(&res, fmt.Sprintf("When should I schedule %q? (e.g., today, tomorrow, or a date)", data.Title))

	case intent.ActionAddEvent:
		e.tab = intent.TabCalendar
		e.addEvent(data)
		when := data.DateStr
		if when == "" {
			when = "the requested date"
		}
		e.say(&res, fmt.Sprintf("Event %s scheduled for %s", data.Title, when))

	case intent.ActionPlanDay:
		res.OpenPlanner = true

	case intent.ActionSetDestination:
		e.travel.SetDestination(data.Destination)
		e.say(&res, "Setting destination to "+data.Destination)

	case intent.ActionAddBudgetItem:
		e.travel.AddBudgetItem(data.Item, data.Amount)
		e.say(&res, fmt.Sprintf("Added %.0f to your %s budget", data.Amount, data.Item))

	case intent.ActionAddItineraryItem:
		e.travel.AddItineraryItem(data.Activity, 1)
		e.say(&res, "Plan for "+data.Activity+" added to itinerary")

	case "":
		// Unparseable: a semantic no-op, logged for diagnostics only.
		logging.Dispatch("no rule matched %q", raw)
	}

	res.Layout = e.layout
	res.Tab = e.tab
	return res
}

// addEvent resolves the intent's date payload against now and appends
// the event. Explicit day+month wins; then the relative phrase; then
// today. An unrecognized month name falls back to the current month.
func (e *Engine) addEvent(data intent.Data) {
	now := e.now()
	d := nldate.Date{Day: now.Day(), Month: now.Month()}

	switch {
	case data.Day > 0:
		var ok bool
		d, ok = nldate.ResolveDayMonth(data.Day, data.Month, now)
		if !ok {
			logging.DispatchWarn("unrecognized month %q, using %s", data.Month, d.Month)
		}
	case data.DateStr != "":
		if resolved, ok := nldate.Resolve(data.DateStr, now); ok {
			d = resolved
		}
	}

	start := data.Start
	if start == "" {
		start = "All day"
	}
	e.prod.AddEvent(data.Title, start, d)
}

// say emits a confirmation: shown as the assistant banner and spoken.
func (e *Engine) say(res *Result, msg string) {
	res.Message = msg
	e.speaker.Say(msg, nil)
}

// ask emits a clarification question and re-enables voice capture once
// it has been spoken, so the user can answer without touching the
// input surface.
func (e *Engine) ask(res *Result, msg string) {
	res.Message = msg
	e.speaker.Say(msg, func() {
		if e.voice != nil {
			e.voice.Resume()
		}
	})
}
