// Package chat provides the interactive TUI for the genui assistant.
// The functionality is split across multiple files:
//   - model.go: Types, InitChat, Init (this file)
//   - update.go: Update loop and key handling
//   - process.go: Boot sequence and utterance processing
//   - view.go: Rendering functions
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"genui/cmd/genui/ui"
	"genui/internal/config"
	"genui/internal/engine"
	"genui/internal/store"
	"genui/internal/voice"
)

// Config holds configuration for initializing the chat interface.
type Config struct {
	// Workspace is the directory holding the .genui dotdir.
	Workspace string

	// Transcriber overrides the capture backend. Nil selects the
	// scripted transcriber, which is driven programmatically.
	Transcriber voice.Transcriber
}

// Message is one entry of the conversation transcript.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
	Time    time.Time
}

// Model is the main model for the interactive assistant interface.
type Model struct {
	// UI Components
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	// Backend, wired after boot completes
	engine   *engine.Engine
	pipeline *voice.Pipeline
	history  *store.History
	cfg      *config.Config
	watcher  *config.Watcher

	// Voice capture state
	voiceOn     bool
	interim     string // live transcript while dictating
	utterances  chan string
	partials    chan string
	reloads     chan *config.Config
	transcriber voice.Transcriber

	// Transient assistant banner, cleared after a timeout
	banner    string
	bannerSeq int

	// Day planner overlay
	plannerOpen bool

	// State
	messages  []Message
	isBooting bool
	err       error
	width     int
	height    int
	ready     bool
	workspace string
}

// InitChat initializes the interactive assistant model.
func InitChat(cfg Config) Model {
	styles := ui.DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Say or type a command... (Enter to send, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "| "
	ti.CharLimit = 512
	ti.Width = 80
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(76),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(76),
		)
	}

	transcriber := cfg.Transcriber
	if transcriber == nil {
		transcriber = voice.NewScripted()
	}

	return Model{
		textinput:   ti,
		viewport:    vp,
		spinner:     sp,
		styles:      styles,
		renderer:    renderer,
		utterances:  make(chan string, 8),
		partials:    make(chan string, 8),
		reloads:     make(chan *config.Config, 1),
		transcriber: transcriber,
		isBooting:   true,
		workspace:   cfg.Workspace,
	}
}

// Init starts the boot sequence and the voice event listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		performBoot(m.workspace),
		m.waitForUtterance(),
		m.waitForPartial(),
		m.waitForReload(),
	)
}

// waitForUtterance delivers the next committed voice utterance.
func (m Model) waitForUtterance() tea.Cmd {
	return func() tea.Msg {
		return utteranceMsg(<-m.utterances)
	}
}

// waitForPartial delivers live transcript updates while dictating.
func (m Model) waitForPartial() tea.Cmd {
	return func() tea.Msg {
		return partialMsg(<-m.partials)
	}
}

// waitForReload delivers a freshly reloaded workspace config.
func (m Model) waitForReload() tea.Cmd {
	return func() tea.Msg {
		return reloadMsg{cfg: <-m.reloads}
	}
}

// clearBannerAfter schedules the confirmation banner to disappear.
// The sequence number keeps a stale timer from clearing a newer banner.
func (m Model) clearBannerAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearBannerMsg{seq: seq}
	})
}
