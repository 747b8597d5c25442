// Package store holds the in-memory domain state containers mutated by
// dispatched commands. Stores are plain owned values injected into the
// engine; the single-threaded run-to-completion pipeline is the only
// writer, so there is no locking. Insertion order is significant: the
// "last note"/"last task" conversions rely on most-recent-last.
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"genui/internal/nldate"
)

// Task is a to-do item. Priority is "high", "medium", "low" or empty.
type Task struct {
	ID          string
	Title       string
	Priority    string
	Date        string
	IsCompleted bool
}

// Habit is a recurring daily practice.
type Habit struct {
	ID             string
	Title          string
	Time           string // HH:MM
	Streak         int
	CompletedToday bool
}

// Note is a captured piece of free text.
type Note struct {
	ID        string
	Content   string
	Timestamp time.Time
}

// Event is a calendar entry on a (day, month) slot.
type Event struct {
	ID     string
	Title  string
	Start  string // "3pm", "10:30 am", "All day"
	DayNum int
	Month  time.Month
}

// Productivity owns the task, habit, note and event collections.
type Productivity struct {
	tasks  []Task
	habits []Habit
	notes  []Note
	events []Event
}

// NewProductivity returns an empty productivity store.
func NewProductivity() *Productivity {
	return &Productivity{}
}

func (p *Productivity) Tasks() []Task   { return p.tasks }
func (p *Productivity) Habits() []Habit { return p.habits }
func (p *Productivity) Notes() []Note   { return p.notes }
func (p *Productivity) Events() []Event { return p.events }

// AddTask appends a task. A task flagged for calendar sync also gets
// an all-day mirror event dated today.
func (p *Productivity) AddTask(title, priority string, syncToCalendar bool, now time.Time) Task {
	t := Task{
		ID:       uuid.NewString(),
		Title:    title,
		Priority: priority,
		Date:     now.Format("2006-01-02"),
	}
	p.tasks = append(p.tasks, t)
	if syncToCalendar {
		p.AddEvent("Task: "+title, "All day", nldate.Date{Day: now.Day(), Month: now.Month()})
	}
	return t
}

// ToggleTask flips completion for the task with the given id.
func (p *Productivity) ToggleTask(id string) {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			p.tasks[i].IsCompleted = !p.tasks[i].IsCompleted
		}
	}
}

// ToggleTaskByTitle flips completion for every task whose title
// matches, case-insensitively. No match is a no-op.
func (p *Productivity) ToggleTaskByTitle(title string) {
	for i := range p.tasks {
		if strings.EqualFold(p.tasks[i].Title, title) {
			p.tasks[i].IsCompleted = !p.tasks[i].IsCompleted
		}
	}
}

// DeleteTaskByTitle removes every task whose title matches,
// case-insensitively. No match is a no-op.
func (p *Productivity) DeleteTaskByTitle(title string) {
	kept := p.tasks[:0]
	for _, t := range p.tasks {
		if !strings.EqualFold(t.Title, title) {
			kept = append(kept, t)
		}
	}
	p.tasks = kept
}

// LastTask returns the most recently inserted task.
func (p *Productivity) LastTask() (Task, bool) {
	if len(p.tasks) == 0 {
		return Task{}, false
	}
	return p.tasks[len(p.tasks)-1], true
}

// AddHabit appends a habit with a zero streak. A habit flagged for
// calendar sync also gets a mirror event at the habit time, today.
func (p *Productivity) AddHabit(title, timeOfDay string, syncToCalendar bool, now time.Time) Habit {
	h := Habit{ID: uuid.NewString(), Title: title, Time: timeOfDay}
	p.habits = append(p.habits, h)
	if syncToCalendar {
		p.AddEvent("Habit: "+title, timeOfDay, nldate.Date{Day: now.Day(), Month: now.Month()})
	}
	return h
}

// ToggleHabit flips today's completion for the habit with the given
// id, moving the streak up or back down (never below zero).
func (p *Productivity) ToggleHabit(id string) {
	for i := range p.habits {
		if p.habits[i].ID == id {
			toggleHabit(&p.habits[i])
		}
	}
}

// ToggleHabitByTitle is ToggleHabit keyed by case-insensitive title.
func (p *Productivity) ToggleHabitByTitle(title string) {
	for i := range p.habits {
		if strings.EqualFold(p.habits[i].Title, title) {
			toggleHabit(&p.habits[i])
		}
	}
}

func toggleHabit(h *Habit) {
	h.CompletedToday = !h.CompletedToday
	if h.CompletedToday {
		h.Streak++
	} else if h.Streak > 0 {
		h.Streak--
	}
}

// DeleteHabitByTitle removes every habit whose title matches,
// case-insensitively. No match is a no-op.
func (p *Productivity) DeleteHabitByTitle(title string) {
	kept := p.habits[:0]
	for _, h := range p.habits {
		if !strings.EqualFold(h.Title, title) {
			kept = append(kept, h)
		}
	}
	p.habits = kept
}

// AddNote appends a note.
func (p *Productivity) AddNote(content string, now time.Time) Note {
	n := Note{ID: uuid.NewString(), Content: content, Timestamp: now}
	p.notes = append(p.notes, n)
	return n
}

// LastNote returns the most recently inserted note.
func (p *Productivity) LastNote() (Note, bool) {
	if len(p.notes) == 0 {
		return Note{}, false
	}
	return p.notes[len(p.notes)-1], true
}

// AddEvent appends a calendar event on an already-resolved date.
func (p *Productivity) AddEvent(title, start string, d nldate.Date) Event {
	e := Event{ID: uuid.NewString(), Title: title, Start: start, DayNum: d.Day, Month: d.Month}
	p.events = append(p.events, e)
	return e
}
