package ui

import (
	"fmt"
	"strings"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/core/format"
)

// barWidth is the width of the availability bar in cells.
const barWidth = 20

func (m *Model) updateDetailViewport() {
	m.viewport.SetContent(m.renderDetailContent())
}

func (m Model) renderDetailContent() string {
	d := m.detail
	switch {
	case d.loading:
		return m.spinner.View() + " Loading event…"
	case d.err != "":
		return errorStyle.Render("⚠ "+d.err) + "\n\n" + helpStyle.Render("r retry  |  esc back")
	case d.event == nil:
		return ""
	}
	ev := d.event

	var b strings.Builder
	if n := len(ev.Images); n > 0 {
		idx := min(d.imageIdx, n-1)
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Image %d/%d  ", idx+1, n)))
		b.WriteString(ev.Images[idx].ImageURL)
		if n > 1 {
			b.WriteString(helpStyle.Render("  h/l browse"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(titleStyle.Render(ev.Name) + "\n")
	b.WriteString(labelStyle.Render("Starts") + " " + format.DateTime(ev.StartTime) + "\n")
	if !ev.EndTime.IsZero() {
		b.WriteString(labelStyle.Render("Ends") + " " + format.DateTime(ev.EndTime) + "\n")
	}
	b.WriteString(labelStyle.Render("Location") + " " + ev.Location + "\n")
	if desc := strings.TrimSpace(ev.Description); desc != "" {
		b.WriteString("\n" + indent(desc, 2) + "\n")
	}

	b.WriteString("\n" + listHeaderStyle.Render("Tickets") + "\n")
	if len(ev.Categories) == 0 {
		b.WriteString(subtleStyle.Render("No categories available yet"))
		return b.String()
	}
	for i, c := range ev.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderCategory(c))
	}
	return b.String()
}

// renderCategory draws one ticket category with its availability bar.
func renderCategory(c catalog.Category) string {
	av := format.AvailabilityOf(c)
	filled, empty := av.Bar(barWidth)
	style := availabilityStyles[av.Level()]

	var b strings.Builder
	b.WriteString(focusStyle.Render(c.Name))
	b.WriteString("  " + okStyle.Render(format.Currency(c.Price)))
	meta := strings.ToLower(c.CategoryType)
	if c.BookType != "" {
		meta += " · " + strings.ToLower(c.BookType)
	}
	b.WriteString("  " + subtleStyle.Render(meta) + "\n")
	b.WriteString("  " + style.Render(filled) + barEmptyStyle.Render(empty))
	b.WriteString(fmt.Sprintf("  %d/%d left", av.Available, av.Total))
	if av.Available <= 0 {
		b.WriteString("  " + errorStyle.Render("sold out"))
	}
	return b.String()
}

func (m Model) renderDetailFooter() string {
	status := ""
	if ev := m.detail.event; ev != nil {
		status = fmt.Sprintf("Event #%d · %s", ev.ID, format.Date(ev.StartTime))
	}
	return renderFooter(status, "j/k scroll  |  h/l images  |  esc back  |  q quit")
}
