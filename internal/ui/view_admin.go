package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ticket-tix/internal/core/form"
	"ticket-tix/internal/core/format"
)

var eventLabels = map[string]string{
	form.EventName:        "Name",
	form.EventLocation:    "Location",
	form.EventDescription: "Description",
	form.EventStart:       "Starts",
	form.EventEnd:         "Ends",
	form.EventImages:      "Images",
}

func (m Model) renderAdmin() string {
	var b strings.Builder
	b.WriteString(m.renderTabs() + "\n\n")

	if c := m.admin.created; c != nil {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Editing #%d %s", c.ID, c.Name)) + "\n\n")
	}

	switch m.admin.tab {
	case tabCategories:
		b.WriteString(m.renderCategoriesTab())
	case tabImages:
		b.WriteString(m.renderImagesTab())
	default:
		b.WriteString(m.renderCreateTab())
	}

	if m.admin.busy {
		b.WriteString("\n\n" + m.spinner.View() + " " + m.statusMsg)
	}
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []adminTab{tabCreate, tabCategories, tabImages}
	out := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("F%d %s", i+1, t)
		switch {
		case t == m.admin.tab:
			out[i] = tabActiveStyle.Render(label)
		case !m.tabEnabled(t):
			out[i] = tabDisabledStyle.Render(label)
		default:
			out[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) renderCreateTab() string {
	lines := make([]string, 0, len(eventFields))
	for i, f := range eventFields {
		label := eventLabels[f]
		if i == m.admin.eventFocus {
			label = "› " + label
		}
		lines = append(lines, inputView(label, m.admin.eventInputs[i], m.admin.eventForm.Error(f)))
	}
	return strings.Join(lines, "\n")
}

// toggleView renders a two-state choice; the current value is highlighted.
func toggleView(label, value string, options [2]string, focused bool) string {
	if focused {
		label = "› " + label
	}
	parts := make([]string, 2)
	for i, o := range options {
		if o == value {
			parts[i] = tabActiveStyle.Render(o)
		} else {
			parts[i] = tabStyle.Render(o)
		}
	}
	return labelStyle.Render(label) + " " + parts[0] + parts[1]
}

func (m Model) renderCategoriesTab() string {
	a := m.admin
	var b strings.Builder

	b.WriteString(listHeaderStyle.Render("Categories"))
	b.WriteString("\n")
	if len(a.categories) == 0 {
		b.WriteString(subtleStyle.Render("No categories yet") + "\n")
	}
	for i, c := range a.categories {
		cursor := "  "
		if a.catFocus == catFocusList && i == a.catIndex {
			cursor = focusStyle.Render("› ")
		}
		av := format.AvailabilityOf(c)
		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %d/%d\n",
			cursor, c.Name, format.Currency(c.Price),
			subtleStyle.Render(strings.ToLower(c.CategoryType+" · "+c.BookType)),
			av.Available, av.Total))
	}

	b.WriteString("\n" + listHeaderStyle.Render("Add category") + "\n")
	f := a.catForm
	focusLabel := func(focus int, label string) string {
		if a.catFocus == focus {
			return "› " + label
		}
		return label
	}
	b.WriteString(inputView(focusLabel(catFocusName, "Name"), a.catInputs[catInputName], f.Error(form.CategoryName)) + "\n")
	b.WriteString(toggleView("Type", f.Get(form.CategoryType),
		[2]string{"STANDING", "SEATED"}, a.catFocus == catFocusType) + "\n")
	b.WriteString(inputView(focusLabel(catFocusPrice, "Price"), a.catInputs[catInputPrice], f.Error(form.CategoryPrice)) + "\n")
	b.WriteString(toggleView("Booking", f.Get(form.CategoryBookType),
		[2]string{"FIXED", "FLEXIBLE"}, a.catFocus == catFocusBook) + "\n")
	b.WriteString(inputView(focusLabel(catFocusCapacity, "Capacity"), a.catInputs[catInputCapacity], f.Error(form.CategoryCapacity)))
	return b.String()
}

func (m Model) renderImagesTab() string {
	a := m.admin
	var b strings.Builder
	b.WriteString(listHeaderStyle.Render("Images") + "\n")
	if len(a.images) == 0 {
		b.WriteString(subtleStyle.Render("No images yet") + "\n")
	}
	for i, img := range a.images {
		cursor := "  "
		if !a.uploadFocus && i == a.imageIndex {
			cursor = focusStyle.Render("› ")
		}
		line := cursor + truncate(img.ImageURL, max(20, m.width-16))
		if img.IsPrimary {
			line += " " + badgeStyle.Render("cover")
		}
		b.WriteString(line + "\n")
	}
	label := "Upload"
	if a.uploadFocus {
		label = "› Upload"
	}
	b.WriteString("\n" + inputView(label, a.uploadInput, ""))
	return b.String()
}

func (m Model) renderAdminFooter() string {
	status := m.statusMsg
	if m.admin.busy {
		status = ""
	}
	var help string
	switch m.admin.tab {
	case tabCategories:
		help = "tab next  |  ←/→ toggle  |  enter add  |  d remove (list)"
	case tabImages:
		help = "tab list/upload  |  enter upload  |  d delete (list)"
	default:
		help = "tab next  |  ctrl+s create  |  enter on last field creates"
	}
	return renderFooter(status, help, "F1/F2/F3 tabs  |  ctrl+x dismiss toasts  |  esc back to events")
}
