package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"genui/cmd/genui/ui"
	"genui/internal/intent"
)

// View renders the full frame: header, active layout, conversation,
// input line and footer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.isBooting {
		return m.styles.Content.Render(
			m.spinner.View() + " Waking the assistant...")
	}

	if m.err != nil {
		return m.styles.Content.Render(
			m.styles.Error.Render("boot failed: " + m.err.Error()))
	}

	if m.plannerOpen {
		return m.renderPlanner()
	}

	header := m.renderHeader()
	content := m.viewport.View()

	var banner string
	if m.banner != "" {
		banner = m.styles.Banner.Render(m.banner)
	}

	input := m.textinput.View()
	footer := m.renderFooter()

	parts := []string{header, content}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, input, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := " GenUI "
	layout := string(m.layoutName())
	crumbs := layout
	if m.engine != nil && m.engine.Layout() == intent.LayoutProductivity {
		crumbs = layout + " / " + string(m.engine.ActiveTab())
	}
	left := m.styles.Header.Render(title)
	right := m.styles.Badge.Render(crumbs)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) layoutName() intent.Layout {
	if m.engine == nil {
		return intent.LayoutDefault
	}
	return m.engine.Layout()
}

func (m Model) renderFooter() string {
	mic := m.styles.Muted.Render("mic off")
	if m.voiceOn {
		mic = m.styles.Listening.Render("● listening")
	}
	hint := m.styles.Muted.Render("Ctrl+T mic · Enter send · Ctrl+C quit")
	line := mic
	if m.interim != "" {
		line += "  " + m.styles.Subtitle.Render("\""+m.interim+"\"")
	}
	return m.styles.Footer.Render(line + "  " + hint)
}

// refreshViewport re-renders the active layout and the conversation
// into the scrollable content area.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var sb strings.Builder
	switch m.layoutName() {
	case intent.LayoutProductivity:
		sb.WriteString(m.renderProductivity())
	case intent.LayoutTravel:
		sb.WriteString(m.renderTravel())
	case intent.LayoutDev:
		sb.WriteString(m.renderDev())
	default:
		sb.WriteString(m.renderWelcome())
	}
	sb.WriteString("\n")
	sb.WriteString(m.renderConversation())
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

const welcomeMarkdown = `# GenUI

A generative interface that reshapes itself around what you say.

Try:

- ` + "`show my tasks`" + `
- ` + "`remind me to buy milk`" + `
- ` + "`schedule dentist tomorrow at 3pm`" + `
- ` + "`plan a trip`" + `
`

func (m Model) renderWelcome() string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(welcomeMarkdown); err == nil {
			return out
		}
	}
	return welcomeMarkdown
}

func (m Model) renderProductivity() string {
	tabs := []intent.Tab{
		intent.TabDashboard, intent.TabTasks, intent.TabHabits,
		intent.TabCalendar, intent.TabNotes,
	}
	var row []string
	active := m.engine.ActiveTab()
	for _, t := range tabs {
		if t == active {
			row = append(row, m.styles.TabActive.Render(string(t)))
		} else {
			row = append(row, m.styles.TabIdle.Render(string(t)))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, row...)

	var body string
	switch active {
	case intent.TabTasks:
		body = m.renderTasks()
	case intent.TabHabits:
		body = m.renderHabits()
	case intent.TabCalendar:
		body = m.renderCalendar()
	case intent.TabNotes:
		body = m.renderNotes()
	default:
		body = m.renderDashboard()
	}

	return bar + "\n" + m.styles.Pane.Width(m.contentWidth()).Render(body)
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderDashboard() string {
	prod := m.engine.Productivity()
	open := 0
	for _, t := range prod.Tasks() {
		if !t.IsCompleted {
			open++
		}
	}
	lines := []string{
		m.styles.Title.Render("Today"),
		fmt.Sprintf("%d open tasks · %d habits · %d events · %d notes",
			open, len(prod.Habits()), len(prod.Events()), len(prod.Notes())),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTasks() string {
	tasks := m.engine.Productivity().Tasks()
	if len(tasks) == 0 {
		return m.styles.Muted.Render("No tasks yet. Try \"remind me to buy milk\".")
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Tasks") + "\n")
	for _, t := range tasks {
		box := "[ ]"
		title := t.Title
		if t.IsCompleted {
			box = "[x]"
			title = m.styles.Done.Render(title)
		}
		pr := priorityBadge(t.Priority)
		sb.WriteString(fmt.Sprintf("%s %s %s\n", box, title, pr))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderHabits() string {
	habits := m.engine.Productivity().Habits()
	if len(habits) == 0 {
		return m.styles.Muted.Render("No habits yet. Try \"add habit meditate\".")
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Habits") + "\n")
	for _, h := range habits {
		mark := "·"
		if h.CompletedToday {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s at %s (streak %d)\n", mark, h.Title, h.Time, h.Streak))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderCalendar() string {
	events := m.engine.Productivity().Events()
	if len(events) == 0 {
		return m.styles.Muted.Render("Nothing scheduled. Try \"schedule dentist tomorrow at 3pm\".")
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Calendar") + "\n")
	for _, ev := range events {
		sb.WriteString(fmt.Sprintf("%s %d · %s · %s\n",
			ev.Month.String()[:3], ev.DayNum, ev.Start, ev.Title))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderNotes() string {
	notes := m.engine.Productivity().Notes()
	if len(notes) == 0 {
		return m.styles.Muted.Render("No notes yet. Start typing to capture one.")
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Notes") + "\n")
	for _, n := range notes {
		sb.WriteString("• " + n.Content + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderTravel() string {
	tr := m.engine.Travel()
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Trip to "+tr.Destination()) + "\n\n")

	sb.WriteString(m.styles.Bold.Render("Flights") + "\n")
	for _, f := range tr.Flights() {
		sb.WriteString(fmt.Sprintf("  %s  %s  $%.0f  %.1f★\n",
			f.Airline, f.Route, f.Price, f.Rating))
	}

	sb.WriteString("\n" + m.styles.Bold.Render("Budget") + "\n")
	if len(tr.Budget()) == 0 {
		sb.WriteString(m.styles.Muted.Render("  Nothing logged. Try \"add 50 dollars for food\".") + "\n")
	}
	var total float64
	for _, b := range tr.Budget() {
		total += b.Amount
		sb.WriteString(fmt.Sprintf("  %-20s $%.2f\n", b.Item, b.Amount))
	}
	if total > 0 {
		sb.WriteString(fmt.Sprintf("  %-20s $%.2f\n", "Total", total))
	}

	sb.WriteString("\n" + m.styles.Bold.Render("Itinerary") + "\n")
	if len(tr.Itinerary()) == 0 {
		sb.WriteString(m.styles.Muted.Render("  Empty. Try \"add surfing to day 2\".") + "\n")
	}
	for _, it := range tr.Itinerary() {
		sb.WriteString(fmt.Sprintf("  Day %d: %s\n", it.Day, it.Activity))
	}

	return m.styles.Pane.Width(m.contentWidth()).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) renderDev() string {
	body := m.styles.Title.Render("Developer Mode") + "\n" +
		m.styles.Muted.Render("Coming soon. Say \"reset\" to go back.")
	return m.styles.Pane.Width(m.contentWidth()).Render(body)
}

// renderPlanner is the "plan my day" overlay: today's events next to
// the open task list.
func (m Model) renderPlanner() string {
	prod := m.engine.Productivity()
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Your Day") + "\n\n")

	sb.WriteString(m.styles.Bold.Render("Schedule") + "\n")
	if len(prod.Events()) == 0 {
		sb.WriteString(m.styles.Muted.Render("  Wide open.") + "\n")
	}
	for _, ev := range prod.Events() {
		sb.WriteString(fmt.Sprintf("  %s · %s\n", ev.Start, ev.Title))
	}

	sb.WriteString("\n" + m.styles.Bold.Render("Open tasks") + "\n")
	for _, t := range prod.Tasks() {
		if t.IsCompleted {
			continue
		}
		sb.WriteString("  • " + t.Title + " " + priorityBadge(t.Priority) + "\n")
	}

	sb.WriteString("\n" + m.styles.Muted.Render("Press any key to close"))
	return m.styles.Content.Render(
		m.styles.Pane.Width(m.contentWidth()).Render(sb.String()))
}

func (m Model) renderConversation() string {
	var sb strings.Builder
	for _, msg := range m.messages {
		switch msg.Role {
		case "user":
			sb.WriteString(m.styles.Prompt.Render("You ") + m.styles.UserInput.Render(msg.Content) + "\n")
		default:
			sb.WriteString(m.styles.Bold.Render("GenUI ") + m.styles.Assistant.Render(msg.Content) + "\n")
		}
	}
	return sb.String()
}

func priorityBadge(priority string) string {
	if priority == "" {
		return ""
	}
	return ui.PriorityStyle(priority).Render("(" + priority + ")")
}
