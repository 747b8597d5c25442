package engine

import "genui/internal/intent"

// pendingKind tags the single outstanding clarification slot. The
// dialogue machine has exactly two states: idle, and awaiting one
// follow-up of a known kind. It cannot stack questions; opening a new
// clarification while one is pending overwrites the old one.
type pendingKind int

const (
	pendingNone pendingKind = iota
	// pendingPriority holds a task draft until "what priority?" is
	// answered.
	pendingPriority
	// pendingEventDate holds an event draft until "when?" is answered.
	pendingEventDate
)

func (k pendingKind) String() string {
	switch k {
	case pendingPriority:
		return "awaiting-priority"
	case pendingEventDate:
		return "awaiting-event-date"
	}
	return "idle"
}

// pendingAction is the one slot of conversational memory: the draft
// data captured from the original utterance, waiting for its answer.
type pendingAction struct {
	kind pendingKind
	data intent.Data
}

// Pending reports the current dialogue state, for rendering and tests.
func (e *Engine) Pending() string {
	return e.pending.kind.String()
}

// AwaitingFollowUp reports whether a clarification is outstanding.
func (e *Engine) AwaitingFollowUp() bool {
	return e.pending.kind != pendingNone
}

func (e *Engine) setPending(kind pendingKind, data intent.Data) {
	e.pending = pendingAction{kind: kind, data: data}
}

func (e *Engine) clearPending() {
	e.pending = pendingAction{}
}
