// Package intent maps a single natural-language utterance, plus the UI
// context the user is currently looking at, to a structured Intent.
// Classification is a deterministic ordered rule table: the first rule
// that matches wins and later rules are never evaluated, so rule order
// is load-bearing and pinned by tests.
package intent

// Layout identifies a top-level generative UI surface.
type Layout string

const (
	LayoutDefault      Layout = "default"
	LayoutProductivity Layout = "productivity"
	LayoutTravel       Layout = "travel"
	LayoutDev          Layout = "dev"
)

// Tab identifies a sub-surface within the productivity layout.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabTasks     Tab = "tasks"
	TabHabits    Tab = "habits"
	TabCalendar  Tab = "calendar"
	TabNotes     Tab = "notes"
)

// Action tags the domain mutation or transition an utterance asks for.
type Action string

const (
	ActionReset            Action = "RESET"
	ActionSwitchTab        Action = "SWITCH_TAB"
	ActionSwitchLayout     Action = "SWITCH_LAYOUT"
	ActionConfirmPriority  Action = "CONFIRM_PRIORITY"
	ActionAddTask          Action = "ADD_TASK"
	ActionDeleteTask       Action = "DELETE_TASK"
	ActionToggleTask       Action = "TOGGLE_TASK"
	ActionAddHabit         Action = "ADD_HABIT"
	ActionDeleteHabit      Action = "DELETE_HABIT"
	ActionToggleHabit      Action = "TOGGLE_HABIT"
	ActionAddNote          Action = "ADD_NOTE"
	ActionAddEvent         Action = "ADD_EVENT"
	ActionClarifyEvent     Action = "CLARIFY_EVENT"
	ActionConvertNote      Action = "CONVERT_NOTE_TO_EVENT"
	ActionSyncTask         Action = "SYNC_TASK_TO_CALENDAR"
	ActionPlanDay          Action = "PLAN_DAY"
	ActionSetDestination   Action = "SET_TRAVEL_DESTINATION"
	ActionAddBudgetItem    Action = "ADD_BUDGET_ITEM"
	ActionAddItineraryItem Action = "ADD_ITINERARY_ITEM"
)

// Priority levels for tasks.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Context describes what the user is currently looking at. Short
// utterances are disambiguated against it (a bare phrase while viewing
// the notes surface is a new note, for example).
type Context struct {
	ActiveTab Tab
	Layout    Layout
}

// Data is the payload extracted from the utterance. Only the fields
// relevant to the tagged action are populated; extracted payloads keep
// the original casing of the utterance.
type Data struct {
	Tab      Tab    // SWITCH_TAB
	Layout   Layout // SWITCH_LAYOUT
	Title    string // tasks, habits, events
	Priority string // ADD_TASK, CONFIRM_PRIORITY ("" = unspecified)
	Content  string // ADD_NOTE
	Time     string // ADD_HABIT (HH:MM)
	Start    string // ADD_EVENT ("3pm", "10:30 am", "All day")
	Day      int    // ADD_EVENT, explicit "15 March" form (0 = none)
	Month    string // ADD_EVENT, lower-cased month name ("" = none)
	DateStr  string // ADD_EVENT, relative form ("today", "next friday")

	Destination string  // SET_TRAVEL_DESTINATION
	Item        string  // ADD_BUDGET_ITEM
	Amount      float64 // ADD_BUDGET_ITEM (0 on malformed input)
	Activity    string  // ADD_ITINERARY_ITEM

	SyncToCalendar bool // ADD_TASK, ADD_HABIT
}

// Intent is the structured result of interpreting one utterance. A
// zero Action with LayoutDefault is a semantic no-op.
type Intent struct {
	Layout Layout
	Action Action
	Data   Data
}

// NeedsClarification reports whether dispatching this intent opens a
// pending follow-up question.
func (i Intent) NeedsClarification() bool {
	switch i.Action {
	case ActionClarifyEvent:
		return true
	case ActionAddTask:
		return i.Data.Priority == ""
	}
	return false
}
