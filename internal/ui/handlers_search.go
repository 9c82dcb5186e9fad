package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ticket-tix/internal/core/browse"
)

// searchFieldsVisible lists the fields reachable with tab; dates only when
// the dates panel is open.
func (m Model) searchFieldsVisible() []int {
	if m.search.datesOpen {
		return []int{fieldName, fieldLocation, fieldFrom, fieldTo}
	}
	return []int{fieldName, fieldLocation}
}

func (m *Model) focusSearchField(i int) tea.Cmd {
	for j := range m.search.inputs {
		m.search.inputs[j].Blur()
	}
	m.search.focused = i
	return m.search.inputs[i].Focus()
}

func (m *Model) moveSearchFocus(delta int) tea.Cmd {
	fields := m.searchFieldsVisible()
	pos := 0
	for i, f := range fields {
		if f == m.search.focused {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	return m.focusSearchField(fields[pos])
}

func (m *Model) blurSearch() {
	for j := range m.search.inputs {
		m.search.inputs[j].Blur()
	}
	m.list.focus = focusList
}

func (m *Model) resetSearchInputs() {
	for j := range m.search.inputs {
		m.search.inputs[j].SetValue("")
	}
	m.search.errors = map[string]string{}
}

// searchInput reads the raw field values.
func (m Model) searchInput() browse.Input {
	return browse.Input{
		EventName: m.search.inputs[fieldName].Value(),
		Location:  m.search.inputs[fieldLocation].Value(),
		From:      m.search.inputs[fieldFrom].Value(),
		To:        m.search.inputs[fieldTo].Value(),
	}
}

// submitSearch validates the fields and starts a new search. Submission is
// refused while the first page of the current search is still loading.
func (m Model) submitSearch() (Model, tea.Cmd) {
	if m.browseState().InitialLoad {
		m.statusMsg = "Still loading, try again in a moment."
		return m, nil
	}
	cr, errs := m.searchInput().Criteria()
	if len(errs) > 0 {
		m.search.errors = errs
		if !m.search.datesOpen {
			m.search.datesOpen = true
		}
		return m, nil
	}
	m.search.errors = map[string]string{}
	m.statusMsg = ""
	m.blurSearch()
	return m.startSearch(cr)
}

// handleSearchKey handles keys while the search bar has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurSearch()
		m.updateBrowseViewport()
		return m, nil
	case "enter":
		return m.submitSearch()
	case "tab", "down":
		cmd := m.moveSearchFocus(1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.moveSearchFocus(-1)
		return m, cmd
	case "ctrl+d":
		m.search.datesOpen = !m.search.datesOpen
		if !m.search.datesOpen && (m.search.focused == fieldFrom || m.search.focused == fieldTo) {
			cmd := m.focusSearchField(fieldName)
			return m, cmd
		}
		return m, nil
	case "ctrl+r":
		m.resetSearchInputs()
		m.blurSearch()
		return m.startSearch(browse.Criteria{})
	}

	i := m.search.focused
	var cmd tea.Cmd
	m.search.inputs[i], cmd = m.search.inputs[i].Update(msg)
	switch i {
	case fieldFrom:
		delete(m.search.errors, browse.FieldFrom)
	case fieldTo:
		delete(m.search.errors, browse.FieldTo)
	}
	return m, cmd
}
