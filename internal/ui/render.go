package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/statekit/internal/logtail"
)

// renderMain stacks header, panel row, logs, status line and help.
func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderPanelRow(),
		m.renderLogs(),
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	h := m.session.panels.header.value

	parts := []string{
		bg.Render("statekit", styles.Logo),
		bg.Render("theme "+h.Theme, styles.MutedText),
	}

	switch {
	case h.Poll.Error != "":
		parts = append(parts, bg.Render("poll failed: "+truncate(h.Poll.Error, 40), styles.DangerText))
	case h.Poll.At.IsZero():
		parts = append(parts, bg.Render("waiting for first poll", styles.WarningText))
	default:
		parts = append(parts, bg.Render("polled "+h.Poll.At.Format("15:04:05"), styles.SuccessText))
	}
	if h.RemoteKeys > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("remote %d keys", h.RemoteKeys), styles.InfoText))
	}
	if ctx := m.session.ctx; ctx != nil {
		parts = append(parts, bg.Render("ctx "+shortID(ctx.ID), styles.FaintText))
	}
	if h.LogPath != "" {
		parts = append(parts, bg.Render(truncateMiddle(h.LogPath, 40), styles.FaintText))
	}

	line := bg.FillLine(bg.Join(parts, "  "), max(m.width-2, 0))
	return styles.Header.Render(line)
}

func (m Model) renderPanelRow() string {
	boxes := []string{m.renderCounter(), m.renderMeter()}
	if !m.hideStats {
		boxes = append(boxes, m.renderStats())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) box(title, body string, width int) string {
	styles := m.theme.Styles()
	content := styles.PanelTitle.Render(title) + "\n" + body
	return styles.Panel.
		Width(width).
		Height(panelRowHeight - 2).
		Render(content)
}

func (m Model) renderCounter() string {
	styles := m.theme.Styles()
	c := m.session.panels.counter
	body := styles.Text.Bold(true).Render(fmt.Sprintf("%d", c.value)) + "\n" +
		styles.FaintText.Render(fmt.Sprintf("refreshed %d", c.stats.Refreshes))
	return m.box("Counter", body, 16)
}

func (m Model) renderMeter() string {
	styles := m.theme.Styles()
	p := m.session.panels.meter
	if p.err != nil {
		return m.box("Meter", styles.DangerText.Render("unavailable"), meterWidth+4)
	}
	filled := p.value
	bar := styles.AccentText.Render(strings.Repeat("█", filled)) +
		styles.FaintText.Render(strings.Repeat("░", meterWidth-filled))
	body := bar + "\n" + styles.FaintText.Render(fmt.Sprintf("refreshed %d", p.stats.Refreshes))
	return m.box("Meter", body, meterWidth+4)
}

func (m Model) renderStats() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%-8s %4s %4s %4s", "panel", "ref", "run", "eval")))
	for _, p := range m.session.panels.all() {
		st := p.Stats()
		line := fmt.Sprintf("%-8s %4d %4d %4d", p.Name(), st.Refreshes, st.Runs, st.Renders)
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(line))
	}
	title := fmt.Sprintf("Stats  swaps %d  listeners %d", m.session.swaps, m.session.store.Listeners())
	return m.box(title, b.String(), 36)
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	lines := len(m.session.panels.logs.value)
	title := fmt.Sprintf("Logs  %d lines", lines)
	if !m.follow {
		title += "  (paused, G to follow)"
	}
	return styles.Panel.
		Width(max(m.width-2, minLogWidth)).
		Render(styles.PanelTitle.Render(title) + "\n" + m.viewport.View())
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	if err := m.session.panelErr(); err != nil {
		return styles.Footer.Render(styles.DangerText.Render(firstLine(err.Error())))
	}
	if m.lastErr != nil {
		return styles.Footer.Render(styles.DangerText.Render(firstLine(m.lastErr.Error())))
	}
	return styles.Footer.Render(styles.FaintText.Render("ok"))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// resize fits the log viewport into what the fixed rows leave over.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	height := m.height - headerHeight - panelRowHeight - logsChrome - statusHeight - helpHeight
	m.viewport.Width = max(m.width-4, minLogWidth)
	m.viewport.Height = max(height, minLogLines)
	m.refreshLogs()
}

// refreshLogs re-renders the log lines into the viewport.
func (m *Model) refreshLogs() {
	styles := m.theme.Styles()
	lines := m.session.panels.logs.value
	rendered := make([]string, len(lines))
	for i, line := range lines {
		style := styles.LevelStyle(logtail.DetectLevel(line))
		rendered[i] = style.Render(truncate(line, m.viewport.Width))
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}
