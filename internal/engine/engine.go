// Package engine is the intent interpretation and dialogue core. One
// entry point, Process, takes an utterance from either input modality
// and runs it through the pipeline: normalize, noise-filter, dialogue
// state machine, intent parser, command dispatcher. Processing is
// synchronous and run-to-completion; the pending-clarification slot
// and the domain stores are only ever touched from inside Process.
package engine

import (
	"time"

	"genui/internal/intent"
	"genui/internal/logging"
	"genui/internal/speech"
	"genui/internal/store"
)

// VoiceControl reactivates voice capture after a clarification prompt
// has been spoken, so the user can answer hands-free.
type VoiceControl interface {
	Resume()
}

// Result is what one trip through the pipeline produced. The
// presentation layer renders Layout/Tab from the stores and shows
// Message as the transient assistant banner.
type Result struct {
	Handled bool // false: discarded by the noise filter
	Action  intent.Action
	Layout  intent.Layout
	Tab     intent.Tab
	Message string

	AwaitingFollowUp bool // Message is a question; voice will resume
	StopVoice        bool // allow-listed "stop": turn capture off
	OpenPlanner      bool // PLAN_DAY: presentation opens the day plan
}

// Options wires the engine's collaborators. Stores are required;
// everything else degrades to a no-op.
type Options struct {
	Productivity *store.Productivity
	Travel       *store.Travel
	Speaker      speech.Speaker
	Voice        VoiceControl
	History      *store.History // optional transcript
	Now          func() time.Time
	HabitTime    string // default habit time when a rule leaves it blank
}

// Engine holds the dialogue state and routes parsed intents to the
// domain stores.
type Engine struct {
	prod    *store.Productivity
	travel  *store.Travel
	speaker speech.Speaker
	voice   VoiceControl
	history *store.History
	now     func() time.Time

	habitTime string

	layout  intent.Layout
	tab     intent.Tab
	pending pendingAction
}

// New builds an engine. Missing options fall back to empty stores, a
// silent speaker and the wall clock.
func New(opts Options) *Engine {
	e := &Engine{
		prod:      opts.Productivity,
		travel:    opts.Travel,
		speaker:   opts.Speaker,
		voice:     opts.Voice,
		history:   opts.History,
		now:       opts.Now,
		habitTime: opts.HabitTime,
		layout:    intent.LayoutDefault,
		tab:       intent.TabDashboard,
	}
	if e.prod == nil {
		e.prod = store.NewProductivity()
	}
	if e.travel == nil {
		e.travel = store.NewTravel()
	}
	if e.speaker == nil {
		e.speaker = speech.Null{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.habitTime == "" {
		e.habitTime = "09:00"
	}
	return e
}

// Productivity exposes the productivity store for rendering.
func (e *Engine) Productivity() *store.Productivity { return e.prod }

// Travel exposes the travel store for rendering.
func (e *Engine) Travel() *store.Travel { return e.travel }

// Layout returns the active top-level surface.
func (e *Engine) Layout() intent.Layout { return e.layout }

// ActiveTab returns the active productivity sub-surface.
func (e *Engine) ActiveTab() intent.Tab { return e.tab }

func (e *Engine) context() intent.Context {
	return intent.Context{ActiveTab: e.tab, Layout: e.layout}
}

// Process interprets one finalized utterance. It never returns an
// error: malformed input can only fail to produce an intent.
func (e *Engine) Process(text string) Result {
	raw, lower := normalize(text)
	if raw == "" {
		return Result{}
	}

	if !passesNoiseFilter(raw, lower) {
		logging.Parser("noise filter dropped %q", raw)
		return Result{}
	}

	if lower == "stop" {
		logging.Dialogue("voice capture stopped by command")
		return Result{Handled: true, Layout: e.layout, Tab: e.tab, StopVoice: true}
	}

	// A pending clarification intercepts the utterance before the
	// full parse.
	if e.pending.kind != pendingNone {
		if res, done := e.resumePending(raw); done {
			return res
		}
	}

	it := intent.Parse(raw, e.context())
	logging.Parser("%q -> action=%s layout=%s", raw, it.Action, it.Layout)
	res := e.dispatch(it, raw)
	e.record(raw, it)
	return res
}

// resumePending feeds a follow-up utterance to the open clarification.
// It reports done=false when the follow-up did not answer the question
// and should fall through to a full parse instead; in that case the
// pending draft is discarded (the user has moved on).
func (e *Engine) resumePending(raw string) (Result, bool) {
	switch e.pending.kind {
	case pendingEventDate:
		// The follow-up text is taken verbatim as the date phrase.
		data := e.pending.data
		data.DateStr = raw
		e.clearPending()
		e.tab = intent.TabCalendar
		e.addEvent(data)
		msg := "Event " + data.Title + " scheduled"
		e.speaker.Say(msg, nil)
		logging.Dialogue("event date follow-up %q completed %q", raw, data.Title)
		e.record(raw, intent.Intent{Layout: e.layout, Action: intent.ActionAddEvent})
		return Result{Handled: true, Action: intent.ActionAddEvent, Layout: e.layout, Tab: e.tab, Message: msg}, true

	case pendingPriority:
		it := intent.Parse(raw, e.context())
		if it.Action == intent.ActionConfirmPriority {
			data := e.pending.data
			data.Priority = it.Data.Priority
			e.clearPending()
			e.prod.AddTask(data.Title, data.Priority, data.SyncToCalendar, e.now())
			msg := "Task saved successfully!"
			e.speaker.Say(msg, nil)
			logging.Dialogue("priority follow-up completed task %q with %s", data.Title, data.Priority)
			e.record(raw, intent.Intent{Layout: e.layout, Action: intent.ActionAddTask})
			return Result{Handled: true, Action: intent.ActionAddTask, Layout: e.layout, Tab: e.tab, Message: msg}, true
		}
		// Not a priority answer: the user changed topic. Drop the
		// draft and parse the utterance on its own.
		logging.Dialogue("priority follow-up %q did not confirm; discarding pending task %q", raw, e.pending.data.Title)
		e.clearPending()
		return Result{}, false
	}
	return Result{}, false
}

func (e *Engine) record(raw string, it intent.Intent) {
	if e.history == nil {
		return
	}
	if err := e.history.Record(raw, string(it.Action), string(it.Layout), e.now()); err != nil {
		logging.StoreWarn("history record failed: %v", err)
	}
}
