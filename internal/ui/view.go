package ui

import (
	"strings"
)

// chromeHeight is the number of lines around the viewport: title, divider,
// screen header and footer.
const chromeHeight = 12

func (m Model) View() string {
	if m.state == stateQuit {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("🎟  ticket-tix"))
	b.WriteString("  " + subtitleStyle.Render(m.screenTitle()))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(10, m.width-2))))
	b.WriteString("\n")

	switch m.state {
	case stateBrowse:
		b.WriteString(m.renderBrowseHeader())
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.renderBrowseFooter())
	case stateDetail:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.renderDetailFooter())
	case stateAdmin:
		b.WriteString(m.renderAdmin())
		b.WriteString("\n")
		b.WriteString(m.renderAdminFooter())
	}

	if t := m.renderToasts(); t != "" {
		b.WriteString("\n" + t)
	}
	return b.String()
}

func (m Model) screenTitle() string {
	switch m.state {
	case stateDetail:
		return "Event"
	case stateAdmin:
		return "Admin"
	default:
		return "Browse events"
	}
}

// renderToasts shows the newest toast last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.kind == toastError {
			parts = append(parts, toastErrStyle.Render("✕ "+t.text))
		} else {
			parts = append(parts, toastOKStyle.Render("✓ "+t.text))
		}
	}
	return strings.Join(parts, " ")
}

// resizeViewport fits the viewport between the header and the footer.
func (m *Model) resizeViewport() {
	h := m.height - chromeHeight
	if h < 5 {
		h = 5
	}
	m.viewport.Width = max(20, m.width)
	m.viewport.Height = h
}
