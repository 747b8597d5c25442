package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const (
	headerHeight = 1
	footerHeight = 2
	inputHeight  = 1
)

// Update is the main message loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.shutdown()
			return m, tea.Quit

		case "ctrl+t":
			// Mic toggle
			m.setVoice(!m.voiceOn)
			return m, nil

		case "enter":
			if m.plannerOpen {
				m.plannerOpen = false
				return m, nil
			}
			text := m.textinput.Value()
			m.textinput.Reset()
			return m, m.processUtterance(text)

		default:
			if m.plannerOpen {
				m.plannerOpen = false
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		paneHeight := m.height - headerHeight - footerHeight - inputHeight - 2
		if paneHeight < 4 {
			paneHeight = 4
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, paneHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = paneHeight
		}
		m.textinput.Width = m.width - 4
		if m.renderer != nil {
			wrap := m.width - 6
			if wrap > 100 {
				wrap = 100
			}
			if wrap > 20 {
				if m.styles.Theme.IsDark {
					m.renderer, _ = glamour.NewTermRenderer(
						glamour.WithAutoStyle(),
						glamour.WithWordWrap(wrap),
					)
				} else {
					m.renderer, _ = glamour.NewTermRenderer(
						glamour.WithStylePath("light"),
						glamour.WithWordWrap(wrap),
					)
				}
			}
		}
		m.refreshViewport()

	case bootDoneMsg:
		m.finishBoot(msg)
		m.refreshViewport()

	case utteranceMsg:
		cmds = append(cmds, m.processUtterance(string(msg)), m.waitForUtterance())

	case partialMsg:
		m.interim = string(msg)
		cmds = append(cmds, m.waitForPartial())

	case reloadMsg:
		m.cfg = msg.cfg
		if m.pipeline != nil {
			m.pipeline.Reconfigure(msg.cfg.GetQuietPeriod(), msg.cfg.Voice.MinCommitLength)
		}
		cmds = append(cmds, m.waitForReload())

	case clearBannerMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
