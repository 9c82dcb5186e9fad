package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/core/browse"
)

// browseState is the controller snapshot the screen renders.
func (m Model) browseState() browse.State { return m.list.ctl.State() }

// visibleEvents returns the loaded events narrowed by quick-find, in server order.
func (m Model) visibleEvents() []catalog.EventSummary {
	all := m.browseState().Events
	if m.find.query == "" {
		return all
	}
	out := make([]catalog.EventSummary, 0, len(m.find.filteredIdx))
	for _, i := range m.find.filteredIdx {
		if i < len(all) {
			out = append(out, all[i])
		}
	}
	return out
}

// applyQuickFind recomputes the quick-find projection and keeps the cursor in range.
func (m *Model) applyQuickFind() {
	m.find.filteredIdx = quickFind(m.find.query, m.browseState().Events, m.filterCfg)
	m.clampListIndex()
}

func (m *Model) clampListIndex() {
	n := len(m.visibleEvents())
	if m.list.listIndex >= n {
		m.list.listIndex = n - 1
	}
	if m.list.listIndex < 0 {
		m.list.listIndex = 0
	}
}

// startSearch hands new criteria to the controller and fetches page one.
func (m Model) startSearch(cr browse.Criteria) (Model, tea.Cmd) {
	req := m.list.ctl.Search(cr)
	m.list.listIndex = 0
	m.find.filteredIdx = nil
	m.viewport.GotoTop()
	m.updateBrowseViewport()
	return m, tea.Batch(m.spinner.Tick, m.fetchPageCmd(req))
}

// loadMore asks the controller for the next page; it is a no-op when the
// controller refuses.
func (m Model) loadMore() (Model, tea.Cmd) {
	req, ok := m.list.ctl.LoadMore()
	if !ok {
		return m, nil
	}
	m.updateBrowseViewport()
	return m, tea.Batch(m.spinner.Tick, m.fetchPageCmd(req))
}

// retry re-triggers whatever failed last: the first page or the next page.
func (m Model) retry() (Model, tea.Cmd) {
	st := m.browseState()
	if st.Err == "" || st.Loading() {
		return m, nil
	}
	if len(st.Events) == 0 {
		return m.startSearch(st.Criteria)
	}
	return m.loadMore()
}

// handleBrowseResult commits a page; stale pages are dropped by the controller.
func (m Model) handleBrowseResult(msg browseResultMsg) (Model, tea.Cmd) {
	if !m.list.ctl.Apply(msg.res) {
		return m, nil
	}
	m.applyQuickFind()
	m.updateBrowseViewport()
	return m, nil
}

// handleBrowseListKey handles keys while the event list has focus.
func (m Model) handleBrowseListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	events := m.visibleEvents()

	switch key {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.list.listIndex < len(events)-1 {
			m.list.listIndex++
		} else if m.find.query == "" {
			// past the last row: same as asking for more
			return m.loadMore()
		}
	case "k", "up":
		if m.list.listIndex > 0 {
			m.list.listIndex--
		}
	case "g", "home":
		m.list.listIndex = 0
	case "G", "end":
		m.list.listIndex = max(0, len(events)-1)
	case "m", "L":
		return m.loadMore()
	case "enter":
		if len(events) == 0 {
			return m, nil
		}
		return m.openDetail(events[m.list.listIndex].ID)
	case "s":
		m.list.focus = focusSearch
		cmd := m.focusSearchField(m.search.focused)
		return m, cmd
	case "/":
		m.list.focus = focusQuickFind
		m.find.input.SetValue(m.find.query)
		cmd := m.find.input.Focus()
		return m, cmd
	case "x":
		m.resetSearchInputs()
		return m.startSearch(browse.Criteria{})
	case "r":
		return m.retry()
	case "a":
		return m.openAdmin()
	case "esc":
		if m.find.query != "" {
			m.find.query = ""
			m.applyQuickFind()
		}
	}
	m.updateBrowseViewport()
	m.ensureCursorInViewport(m.list.listIndex * rowHeight)
	return m, nil
}

// handleQuickFindKey edits the local quick-find query; every change narrows
// the loaded events without fetching.
func (m Model) handleQuickFindKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.find.input.Blur()
		m.find.input.SetValue("")
		m.find.query = ""
		m.list.focus = focusList
		m.applyQuickFind()
		m.updateBrowseViewport()
		return m, nil
	case "enter", "down", "tab":
		m.find.input.Blur()
		m.list.focus = focusList
		m.updateBrowseViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.find.input, cmd = m.find.input.Update(msg)
	if q := strings.TrimSpace(m.find.input.Value()); q != m.find.query {
		m.find.query = q
		m.list.listIndex = 0
		m.applyQuickFind()
		m.updateBrowseViewport()
	}
	return m, cmd
}
