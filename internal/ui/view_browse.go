package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ticket-tix/internal/core/browse"
	"ticket-tix/internal/core/format"
)

// rowHeight is the number of lines per event in the list.
const rowHeight = 2

func (m *Model) updateBrowseViewport() {
	m.viewport.SetContent(m.renderBrowseContent())
}

func (m Model) renderBrowseHeader() string {
	var b strings.Builder
	st := m.browseState()

	// search bar
	focused := m.list.focus == focusSearch
	label := "Search"
	if focused {
		label = focusStyle.Render("Search")
	}
	b.WriteString(label + "  " + m.search.inputs[fieldName].View() + "  " + m.search.inputs[fieldLocation].View())
	if !m.search.datesOpen {
		b.WriteString("  " + subtleStyle.Render("ctrl+d dates"))
	}
	b.WriteString("\n")
	if m.search.datesOpen {
		b.WriteString("Dates   " + m.search.inputs[fieldFrom].View() + "  " + m.search.inputs[fieldTo].View())
		if msg := m.search.errors[browse.FieldFrom]; msg != "" {
			b.WriteString("  " + errorStyle.Render("from: "+msg))
		}
		if msg := m.search.errors[browse.FieldTo]; msg != "" {
			b.WriteString("  " + errorStyle.Render("to: "+msg))
		}
		b.WriteString("\n")
	}

	// active filters
	if tags := st.Criteria.Tags(); len(tags) > 0 {
		rendered := make([]string, len(tags))
		for i, t := range tags {
			rendered[i] = tagStyle.Render(t)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		b.WriteString(" " + helpStyle.Render("x clear"))
		b.WriteString("\n")
	}

	// quick-find
	if m.list.focus == focusQuickFind {
		b.WriteString("Find: " + m.find.input.View() + "\n")
	} else if m.find.query != "" {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Find: %q  (%d of %d shown, esc clears)", m.find.query, len(m.find.filteredIdx), len(st.Events))) + "\n")
	}

	// status
	switch {
	case st.InitialLoad:
		b.WriteString(m.spinner.View() + " Loading events…")
	case st.Err != "" && len(st.Events) == 0:
		b.WriteString(errorStyle.Render("⚠ " + st.Err))
	default:
		b.WriteString(listHeaderStyle.UnsetMargins().Render(plural(len(st.Events), "event")))
		if st.HasMore {
			b.WriteString(subtleStyle.Render("  · more available"))
		}
	}
	return b.String()
}

func (m Model) renderBrowseContent() string {
	st := m.browseState()
	if st.InitialLoad {
		return ""
	}
	if st.Err != "" && len(st.Events) == 0 {
		return helpStyle.Render("Press r to try again.")
	}
	if st.Empty() {
		msg := "No events found"
		if !st.Criteria.IsZero() {
			msg += ". Try different filters."
		}
		return warnStyle.Render(msg)
	}

	events := m.visibleEvents()
	if len(events) == 0 {
		return warnStyle.Render("No loaded event matches the quick find.")
	}

	width := max(20, m.width-4)
	lines := make([]string, 0, len(events)*rowHeight+1)
	for i, ev := range events {
		selected := i == m.list.listIndex
		cursorCell := " "
		if selected {
			cursorCell = cursorBarStyle.Render(" ")
		}
		title := badgeStyle.Render(format.Badge(ev.StartTime)) + " " + focusStyle.Render(truncate(ev.Name, width-12))
		meta := fmt.Sprintf("%s · %s · %s", ev.Location, format.Time(ev.StartTime), ev.StartTime.Local().Format("2006"))
		meta = "       " + subtleStyle.Render(truncate(meta, width-8))
		if selected {
			title = cursorLineStyle.Width(width).Render(title)
			meta = cursorLineStyle.Width(width).Render(meta)
		}
		lines = append(lines, cursorCell+" "+title, cursorCell+" "+meta)
	}
	if st.HasMore && m.find.query == "" {
		if st.LoadingMore {
			lines = append(lines, "  "+m.spinner.View()+" Loading more…")
		} else {
			lines = append(lines, "  "+helpStyle.Render("m load more"))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBrowseFooter() string {
	st := m.browseState()
	status := m.statusMsg
	if st.Err != "" && len(st.Events) > 0 {
		status = errorStyle.Render("⚠ "+st.Err) + helpStyle.Render("  r retry")
	}
	switch m.list.focus {
	case focusSearch:
		return renderFooter(status,
			"tab next field  |  enter search  |  ctrl+d dates  |  ctrl+r clear  |  esc back to list")
	case focusQuickFind:
		return renderFooter(status, "type to narrow loaded events  |  enter keep  |  esc clear")
	}
	return renderFooter(status,
		"j/k move  |  enter open  |  m more  |  s search  |  / find  |  x clear filters",
		"a admin  |  r retry  |  q quit")
}
