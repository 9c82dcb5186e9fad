package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// openDetail switches to the detail screen and requests the event.
func (m Model) openDetail(id int64) (Model, tea.Cmd) {
	m.state = stateDetail
	m.detail.seq++
	m.detail.id = id
	m.detail.loading = true
	m.detail.event = nil
	m.detail.err = ""
	m.detail.imageIdx = 0
	m.viewport.GotoTop()
	m.updateDetailViewport()
	return m, tea.Batch(m.spinner.Tick, m.fetchDetailCmd(m.detail.seq, id))
}

// handleDetailResult applies a detail response unless another event was
// opened in the meantime.
func (m Model) handleDetailResult(msg detailMsg) (Model, tea.Cmd) {
	if msg.seq != m.detail.seq || msg.id != m.detail.id {
		return m, nil
	}
	m.detail.loading = false
	switch {
	case msg.err != nil:
		m.detail.err = msg.err.Error()
	case msg.event == nil:
		m.detail.err = "Event not found"
	default:
		m.detail.event = msg.event
		m.detail.imageIdx = primaryImageIndex(msg.event)
	}
	m.updateDetailViewport()
	return m, nil
}

// handleDetailKey handles keys on the detail screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "b":
		m.state = stateBrowse
		m.detail.seq++ // drop anything still in flight
		m.detail.loading = false
		m.updateBrowseViewport()
		m.ensureCursorInViewport(m.list.listIndex * rowHeight)
		return m, nil
	case "r":
		if m.detail.err != "" && !m.detail.loading {
			return m.openDetail(m.detail.id)
		}
		return m, nil
	case "h", "left":
		if ev := m.detail.event; ev != nil && len(ev.Images) > 1 {
			m.detail.imageIdx = (m.detail.imageIdx - 1 + len(ev.Images)) % len(ev.Images)
			m.updateDetailViewport()
		}
		return m, nil
	case "l", "right":
		if ev := m.detail.event; ev != nil && len(ev.Images) > 1 {
			m.detail.imageIdx = (m.detail.imageIdx + 1) % len(ev.Images)
			m.updateDetailViewport()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}
