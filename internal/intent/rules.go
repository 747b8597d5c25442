package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// utterance is the pre-split input a rule sees: the lower-cased copy is
// used for keyword tests, the raw copy for extracted payloads so that
// titles and destinations keep their capitalization.
type utterance struct {
	raw   string
	lower string
	ctx   Context
}

// rule is one (predicate, extractor) pair. apply returns false to pass
// the utterance on to the next rule.
type rule struct {
	name  string
	apply func(u utterance) (Intent, bool)
}

// Parse classifies one utterance against the rule table. It is a pure
// function: no clock, no stores, no global state.
func Parse(text string, ctx Context) Intent {
	raw := strings.TrimSpace(text)
	u := utterance{raw: raw, lower: strings.ToLower(raw), ctx: ctx}
	for _, r := range ruleTable {
		if it, ok := r.apply(u); ok {
			return it
		}
	}
	return Intent{Layout: LayoutDefault}
}

// RuleOrder exposes the table ordering so tests can pin it.
func RuleOrder() []string {
	names := make([]string, len(ruleTable))
	for i, r := range ruleTable {
		names[i] = r.name
	}
	return names
}

// The table. Broad navigation phrases come before the narrow
// extraction rules; single-word exact matches (priority words, bare
// tab names) sit early so substring rules cannot shadow them; the
// travel keyword sweep and the notes free-text fallback are last.
var ruleTable = []rule{
	{"reset", matchReset},
	{"navigate", matchNavigate},
	{"priority-word", matchPriorityWord},
	{"tab-name", matchBareTabName},
	{"convert-last-note", matchConvertNote},
	{"sync-last-task", matchSyncTask},
	{"plan-day", matchPlanDay},
	{"add-task", matchAddTask},
	{"delete-task", matchDeleteTask},
	{"delete-habit", matchDeleteHabit},
	{"add-habit", matchAddHabit},
	{"toggle-task", matchToggleTask},
	{"toggle-habit", matchToggleHabit},
	{"add-note", matchAddNote},
	{"schedule-event", matchScheduleEvent},
	{"travel-destination", matchTravelDestination},
	{"budget", matchBudget},
	{"itinerary", matchItinerary},
	{"flights", matchFlights},
	{"travel-sweep", matchTravelSweep},
	{"notes-freetext", matchNotesFreeText},
}

var (
	navPrefixRe		= regexp.MustCompile(`(?i)^(open|go to|switch to|show|take me to|nav to)\s+`)
	taskPrefixRe		= regexp.MustCompile(`(?i)^(remind me to|add task|create task|need to|add|task)\s+`)
	taskTrailRe		= regexp.MustCompile(`(?i)\s+(today|tomorrow|on\s+.*|at\s+.*)$`)
	taskFillerRe		= regexp.MustCompile(`(?i)^to\s+`)
	taskPriorityRe		= regexp.MustCompile(`(?i)high priority|medium priority|low priority`)
	deleteTaskRe		= regexp.MustCompile(`(?i)^(delete task|remove task)\s*`)
	deleteHabitRe		= regexp.MustCompile(`(?i)^(delete habit|remove habit)\s*`)
	habitPrefixRe		= regexp.MustCompile(`(?i)^(add habit|create habit|track habit|add)\s+`)
	habitCalledRe		= regexp.MustCompile(`(?i)^called\s+`)
	toggleTaskRe		= regexp.MustCompile(`(?i)^(complete|check|uncheck|toggle task)\s+`)
	toggleHabitRe		= regexp.MustCompile(`(?i)^.*(habit done|complete habit|toggle habit)\s+`)
	notePrefixRe		= regexp.MustCompile(`(?i)^(take note|note|add)\s*`)
	eventTitleRe		= regexp.MustCompile(`(?i)(?:add event|schedule|create event|plan event|add)\s+(.+?)(?:\s+at|\s+on|\s+today|\s+tomorrow|\d|$)`)
	eventTimeRe		= regexp.MustCompile(`(?i)\d{1,2}(?::\d{2})?\s*(?:am|pm)`)
	eventDayFirstRe		= regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthAlternation + `)`)
	eventMonthFirstRe	= regexp.MustCompile(`(?i)(` + monthAlternation + `)\s+(\d{1,2})(?:st|nd|rd|th)?`)
	dayKeywordRe		= regexp.MustCompile(`(?i)(today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday)`)
	destinationRe		= regexp.MustCompile(`(?i)^.*(?:plan (?:a )?trip to|trip to|travel to)\s+`)
	amountRe		= regexp.MustCompile(`\$?(\d+)`)
	budgetItemRe		= regexp.MustCompile(`(?i)^.*(?:add|cost)\s+`)
	budgetSuffixRe		= regexp.MustCompile(`(?i)to (my )?budget`)
	activityRe		= regexp.MustCompile(`(?i)^.*(?:itinerary|activity)\s+`)
	itinerarySuffixRe	= regexp.MustCompile(`(?i)to (my )?itinerary`)
)

const monthAlternation = "january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec"

func matchReset(u utterance) (Intent, bool) {
	switch u.lower {
	case "go home", "show home", "reset":
		return Intent{Layout: LayoutDefault, Action: ActionReset}, true
	}
	return Intent{}, false
}

func matchNavigate(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "open ") && !strings.Contains(u.lower, "go to ") &&
		!strings.Contains(u.lower, "switch to ") && !strings.HasPrefix(u.lower, "show ") &&
		!strings.Contains(u.lower, "take me to ") && !strings.Contains(u.lower, "nav to ") {
		return Intent{}, false
	}
	target := strings.TrimSpace(navPrefixRe.ReplaceAllString(u.lower, ""))

	// Top-level layouts take precedence over sub-pages.
	if strings.Contains(target, "productivity") || strings.Contains(target, "dashboard") {
		return Intent{Layout: LayoutProductivity, Action: ActionSwitchTab, Data: Data{Tab: TabDashboard}}, true
	}
	if strings.Contains(target, "travel") {
		return Intent{Layout: LayoutTravel, Action: ActionSwitchLayout, Data: Data{Layout: LayoutTravel}}, true
	}
	if strings.Contains(target, "debug") || strings.Contains(target, "developer") {
		return Intent{Layout: LayoutDev, Action: ActionSwitchLayout, Data: Data{Layout: LayoutDev}}, true
	}
	for _, tab := range []Tab{TabDashboard, TabTasks, TabHabits, TabCalendar, TabNotes} {
		if strings.Contains(target, string(tab)) {
			return Intent{Layout: LayoutProductivity, Action: ActionSwitchTab, Data: Data{Tab: tab}}, true
		}
	}
	// Unknown destination: let later rules have a go.
	return Intent{}, false
}

func matchPriorityWord(u utterance) (Intent, bool) {
	switch u.lower {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Intent{Layout: LayoutProductivity, Action: ActionConfirmPriority, Data: Data{Priority: u.lower}}, true
	}
	return Intent{}, false
}

func matchBareTabName(u utterance) (Intent, bool) {
	switch u.lower {
	case "productivity":
		return Intent{Layout: LayoutProductivity, Action: ActionSwitchTab, Data: Data{Tab: TabDashboard}}, true
	case "tasks", "calendar", "habits", "notes":
		return Intent{Layout: LayoutProductivity, Action: ActionSwitchTab, Data: Data{Tab: Tab(u.lower)}}, true
	}
	return Intent{}, false
}

func matchConvertNote(u utterance) (Intent, bool) {
	if strings.Contains(u.lower, "last note") &&
		(strings.Contains(u.lower, "calendar") || strings.Contains(u.lower, "event")) {
		return Intent{Layout: LayoutProductivity, Action: ActionConvertNote}, true
	}
	return Intent{}, false
}

func matchSyncTask(u utterance) (Intent, bool) {
	if strings.Contains(u.lower, "last task") && strings.Contains(u.lower, "calendar") {
		return Intent{Layout: LayoutProductivity, Action: ActionSyncTask}, true
	}
	return Intent{}, false
}

func matchPlanDay(u utterance) (Intent, bool) {
	if strings.Contains(u.lower, "plan my day") {
		return Intent{Layout: LayoutProductivity, Action: ActionPlanDay}, true
	}
	return Intent{}, false
}

func matchAddTask(u utterance) (Intent, bool) {
	triggered := strings.Contains(u.lower, "remind me to") || strings.Contains(u.lower, "add task") ||
		strings.Contains(u.lower, "create task") || strings.Contains(u.lower, "need to")
	if !triggered && !(u.ctx.ActiveTab == TabTasks && len(u.lower) > 2) {
		return Intent{}, false
	}

	title := strings.TrimSpace(taskPrefixRe.ReplaceAllString(u.raw, ""))
	title = strings.TrimSpace(taskTrailRe.ReplaceAllString(title, ""))
	title = strings.TrimSpace(taskFillerRe.ReplaceAllString(title, ""))

	priority := ""
	switch {
	case strings.Contains(u.lower, "high priority"):
		priority = PriorityHigh
	case strings.Contains(u.lower, "medium priority"):
		priority = PriorityMedium
	case strings.Contains(u.lower, "low priority"):
		priority = PriorityLow
	}
	if priority != "" {
		title = strings.TrimSpace(taskPriorityRe.ReplaceAllString(title, ""))
	}

	return Intent{Layout: LayoutProductivity, Action: ActionAddTask, Data: Data{
		Title:          title,
		Priority:       priority,
		SyncToCalendar: strings.Contains(u.lower, "calendar"),
	}}, true
}

func matchDeleteTask(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "delete task") && !strings.Contains(u.lower, "remove task") {
		return Intent{}, false
	}
	title := strings.TrimSpace(deleteTaskRe.ReplaceAllString(u.raw, ""))
	return Intent{Layout: LayoutProductivity, Action: ActionDeleteTask, Data: Data{Title: title}}, true
}

func matchDeleteHabit(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "delete habit") && !strings.Contains(u.lower, "remove habit") {
		return Intent{}, false
	}
	title := strings.TrimSpace(deleteHabitRe.ReplaceAllString(u.raw, ""))
	return Intent{Layout: LayoutProductivity, Action: ActionDeleteHabit, Data: Data{Title: title}}, true
}

func matchAddHabit(u utterance) (Intent, bool) {
	triggered := strings.Contains(u.lower, "add habit") || strings.Contains(u.lower, "create habit") ||
		strings.Contains(u.lower, "track habit")
	if !triggered && !(u.ctx.ActiveTab == TabHabits && strings.Contains(u.lower, "add ")) {
		return Intent{}, false
	}
	title := strings.TrimSpace(habitPrefixRe.ReplaceAllString(u.raw, ""))
	title = strings.TrimSpace(habitCalledRe.ReplaceAllString(title, ""))
	return Intent{Layout: LayoutProductivity, Action: ActionAddHabit, Data: Data{
		Title:          title,
		Time:           "09:00",
		SyncToCalendar: strings.Contains(u.lower, "calendar"),
	}}, true
}

func matchToggleTask(u utterance) (Intent, bool) {
	// "complete habit X" belongs to the habit toggle rule below.
	if strings.Contains(u.lower, "habit") {
		return Intent{}, false
	}
	if !strings.HasPrefix(u.lower, "complete ") && !strings.HasPrefix(u.lower, "check ") &&
		!strings.HasPrefix(u.lower, "uncheck ") && !strings.HasPrefix(u.lower, "toggle task ") {
		return Intent{}, false
	}
	title := strings.TrimSpace(toggleTaskRe.ReplaceAllString(u.raw, ""))
	return Intent{Layout: LayoutProductivity, Action: ActionToggleTask, Data: Data{Title: title}}, true
}

func matchToggleHabit(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "habit done") && !strings.Contains(u.lower, "complete habit") &&
		!strings.Contains(u.lower, "toggle habit") {
		return Intent{}, false
	}
	title := strings.TrimSpace(toggleHabitRe.ReplaceAllString(u.raw, ""))
	return Intent{Layout: LayoutProductivity, Action: ActionToggleHabit, Data: Data{Title: title}}, true
}

func matchAddNote(u utterance) (Intent, bool) {
	if !strings.HasPrefix(u.lower, "note ") && !strings.HasPrefix(u.lower, "take note") &&
		!(u.ctx.ActiveTab == TabNotes && strings.Contains(u.lower, "add ")) {
		return Intent{}, false
	}
	content := strings.TrimSpace(notePrefixRe.ReplaceAllString(u.raw, ""))
	return Intent{Layout: LayoutProductivity, Action: ActionAddNote, Data: Data{Content: content}}, true
}

func matchScheduleEvent(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "add event") && !strings.Contains(u.lower, "schedule ") &&
		!strings.Contains(u.lower, "create event") && !strings.Contains(u.lower, "plan event") {
		return Intent{}, false
	}

	title := ""
	if m := eventTitleRe.FindStringSubmatch(u.raw); m != nil {
		title = strings.TrimSpace(m[1])
	}
	start := eventTimeRe.FindString(u.raw)

	dayFirst := eventDayFirstRe.FindStringSubmatch(u.lower)
	monthFirst := eventMonthFirstRe.FindStringSubmatch(u.lower)
	dayKeyword := dayKeywordRe.FindString(u.lower)

	data := Data{Title: title, Start: start, DateStr: "today"}
	switch {
	case dayFirst != nil:
		data.Day, _ = strconv.Atoi(dayFirst[1])
		data.Month = dayFirst[2]
		data.DateStr = ""
	case monthFirst != nil:
		data.Day, _ = strconv.Atoi(monthFirst[2])
		data.Month = monthFirst[1]
		data.DateStr = ""
	case dayKeyword != "":
		data.DateStr = dayKeyword
		if strings.Contains(u.lower, "next ") {
			data.DateStr = "next " + data.DateStr
		}
	}

	// Nothing to anchor the event to: ask, unless the calendar is
	// already on screen (then "today" is an acceptable default).
	if start == "" && dayFirst == nil && monthFirst == nil && dayKeyword == "" &&
		u.ctx.ActiveTab != TabCalendar {
		return Intent{Layout: LayoutProductivity, Action: ActionClarifyEvent, Data: Data{Title: title}}, true
	}

	if data.Start == "" {
		data.Start = "All day"
	}
	return Intent{Layout: LayoutProductivity, Action: ActionAddEvent, Data: data}, true
}

func matchTravelDestination(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "plan trip to") && !strings.Contains(u.lower, "trip to") &&
		!strings.Contains(u.lower, "travel to") {
		return Intent{}, false
	}
	destination := strings.TrimSpace(destinationRe.ReplaceAllString(u.raw, ""))
	return Intent{Layout: LayoutTravel, Action: ActionSetDestination, Data: Data{Destination: destination}}, true
}

func matchBudget(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "budget") ||
		(!strings.Contains(u.lower, "add") && !strings.Contains(u.lower, "cost")) {
		return Intent{}, false
	}
	amount := 0.0
	if m := amountRe.FindStringSubmatch(u.lower); m != nil {
		amount, _ = strconv.ParseFloat(m[1], 64)
	}
	item := budgetItemRe.ReplaceAllString(u.raw, "")
	item = replaceFirst(item, amountRe)
	item = strings.TrimSpace(budgetSuffixRe.ReplaceAllString(item, ""))
	if item == "" {
		item = "Miscellaneous"
	}
	return Intent{Layout: LayoutTravel, Action: ActionAddBudgetItem, Data: Data{Item: item, Amount: amount}}, true
}

func matchItinerary(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "itinerary") && !strings.Contains(u.lower, "schedule activity") &&
		!strings.Contains(u.lower, "plan activity") {
		return Intent{}, false
	}
	activity := activityRe.ReplaceAllString(u.raw, "")
	activity = strings.TrimSpace(itinerarySuffixRe.ReplaceAllString(activity, ""))
	return Intent{Layout: LayoutTravel, Action: ActionAddItineraryItem, Data: Data{Activity: activity}}, true
}

func matchFlights(u utterance) (Intent, bool) {
	if !strings.Contains(u.lower, "flight") {
		return Intent{}, false
	}
	return Intent{Layout: LayoutTravel, Action: ActionSwitchLayout, Data: Data{Layout: LayoutTravel}}, true
}

func matchTravelSweep(u utterance) (Intent, bool) {
	for _, kw := range []string{"trip", "travel", "bali", "flight", "destination"} {
		if strings.Contains(u.lower, kw) {
			return Intent{Layout: LayoutTravel, Action: ActionSwitchLayout, Data: Data{Layout: LayoutTravel}}, true
		}
	}
	return Intent{}, false
}

// matchNotesFreeText treats anything that survived every other rule as
// a new note when the notes surface is active.
func matchNotesFreeText(u utterance) (Intent, bool) {
	if u.ctx.ActiveTab != TabNotes || u.raw == "" {
		return Intent{}, false
	}
	return Intent{Layout: LayoutProductivity, Action: ActionAddNote, Data: Data{Content: u.raw}}, true
}

// replaceFirst removes only the first match, mirroring a non-global
// replace (later digits in an item label are part of the label).
func replaceFirst(s string, re *regexp.Regexp) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
