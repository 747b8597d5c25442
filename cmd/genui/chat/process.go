package chat

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"genui/internal/config"
	"genui/internal/engine"
	"genui/internal/logging"
	"genui/internal/speech"
	"genui/internal/store"
	"genui/internal/voice"
)

// bootDoneMsg carries the backend pieces assembled during boot.
type bootDoneMsg struct {
	cfg     *config.Config
	history *store.History
	err     error
}

// utteranceMsg is a finalized voice utterance ready for the engine.
type utteranceMsg string

// partialMsg is the live transcript while the user is still speaking.
type partialMsg string

// clearBannerMsg expires the confirmation banner.
type clearBannerMsg struct {
	seq int
}

// reloadMsg carries a config reloaded from disk by the file watcher.
type reloadMsg struct {
	cfg *config.Config
}

// performBoot loads config, initializes logging and opens the
// utterance history store. The pieces are independent, so they run
// concurrently and the first error wins.
func performBoot(workspace string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.Load(config.Path(workspace))
		if err != nil {
			return bootDoneMsg{err: err}
		}

		var history *store.History
		var g errgroup.Group
		g.Go(func() error {
			logging.Initialize(workspace)
			logging.Boot("genui starting in %s", workspace)
			return nil
		})
		g.Go(func() error {
			h, err := store.OpenHistory(cfg.HistoryPath(workspace))
			if err != nil {
				// History is a convenience; run without it.
				logging.StoreWarn("history unavailable: %v", err)
				return nil
			}
			history = h
			return nil
		})
		if err := g.Wait(); err != nil {
			return bootDoneMsg{err: err}
		}

		return bootDoneMsg{cfg: cfg, history: history}
	}
}

// finishBoot wires the engine and the voice pipeline once boot
// completes. Runs inside Update so it can close over the model's
// channels.
func (m *Model) finishBoot(msg bootDoneMsg) {
	m.isBooting = false
	if msg.err != nil {
		m.err = msg.err
		return
	}
	m.cfg = msg.cfg
	m.history = msg.history

	utterances := m.utterances
	partials := m.partials
	m.pipeline = voice.NewPipeline(voice.Options{
		Transcriber: m.transcriber,
		QuietPeriod: msg.cfg.GetQuietPeriod(),
		MinCommit:   msg.cfg.Voice.MinCommitLength,
		OnCommit: func(text string) {
			utterances <- text
		},
		OnPartial: func(text string) {
			partials <- text
		},
	})

	// The TUI renders Result.Message itself; the speaker only has to
	// fire the completion callback that resumes voice capture.
	m.engine = engine.New(engine.Options{
		Speaker: speech.Func(func(msg string, onComplete func()) {
			if onComplete != nil {
				onComplete()
			}
		}),
		Voice:     m.pipeline,
		History:   msg.history,
		HabitTime: msg.cfg.Assistant.HabitTime,
	})

	// Live-reload config so timing knobs take effect without a
	// restart. The callback runs on the watcher goroutine, so the
	// new config is handed to the update loop instead of applied
	// in place.
	reloads := m.reloads
	if w, err := config.NewWatcher(config.Path(m.workspace), func(next *config.Config) {
		// Replace any unconsumed older reload with the newest one.
		select {
		case <-reloads:
		default:
		}
		reloads <- next
	}); err == nil {
		m.watcher = w
		_ = w.Start(context.Background())
	}
}

// processUtterance runs one finalized utterance through the engine and
// folds the result into the UI state.
func (m *Model) processUtterance(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || m.engine == nil {
		return nil
	}

	m.messages = append(m.messages, Message{Role: "user", Content: text, Time: time.Now()})

	res := m.engine.Process(text)

	if res.StopVoice {
		m.setVoice(false)
	}
	if res.OpenPlanner {
		m.plannerOpen = true
	}

	var cmd tea.Cmd
	if res.Message != "" {
		m.messages = append(m.messages, Message{Role: "assistant", Content: res.Message, Time: time.Now()})
		m.banner = res.Message
		m.bannerSeq++
		dur := 5 * time.Second
		if m.cfg != nil {
			dur = m.cfg.GetConfirmationDuration()
		}
		// Questions stay up until answered.
		if !res.AwaitingFollowUp {
			cmd = m.clearBannerAfter(dur, m.bannerSeq)
		}
	}

	m.refreshViewport()
	return cmd
}

// setVoice flips the capture pipeline on or off.
func (m *Model) setVoice(on bool) {
	if m.pipeline == nil {
		return
	}
	m.voiceOn = on
	if on {
		m.pipeline.Resume()
		logging.Voice("capture enabled")
	} else {
		m.pipeline.Pause()
		m.interim = ""
		logging.Voice("capture disabled")
	}
}

// shutdown releases backend resources on exit.
func (m *Model) shutdown() {
	if m.pipeline != nil {
		m.pipeline.Close()
	}
	if m.watcher != nil {
		m.watcher.Stop()
	}
	if m.history != nil {
		_ = m.history.Close()
	}
	logging.CloseAll()
}
