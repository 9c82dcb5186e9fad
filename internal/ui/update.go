package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ---------- Update ----------
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		// global shortcuts
		switch msg.String() {
		case "ctrl+c":
			m.state = stateQuit
			m.list.ctl.Close()
			return m, tea.Quit
		case "ctrl+x":
			return m.clearToasts(), nil
		}

		switch m.state {
		case stateBrowse:
			switch m.list.focus {
			case focusSearch:
				return m.handleSearchKey(msg)
			case focusQuickFind:
				return m.handleQuickFindKey(msg)
			}
			return m.handleBrowseListKey(msg)
		case stateDetail:
			return m.handleDetailKey(msg)
		case stateAdmin:
			return m.handleAdminKey(msg)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeViewport()
		switch m.state {
		case stateBrowse:
			m.updateBrowseViewport()
			m.ensureCursorInViewport(m.list.listIndex * rowHeight)
		case stateDetail:
			m.updateDetailViewport()
		}
		return m, nil

	case browseResultMsg:
		return m.handleBrowseResult(msg)

	case detailMsg:
		return m.handleDetailResult(msg)

	case eventCreatedMsg:
		return m.handleEventCreated(msg)
	case categoryAddedMsg:
		return m.handleCategoryAdded(msg)
	case categoryRemovedMsg:
		return m.handleCategoryRemoved(msg)
	case imagesUploadedMsg:
		return m.handleImagesUploaded(msg)
	case imageDeletedMsg:
		return m.handleImageDeleted(msg)
	case adminDetailMsg:
		return m.handleAdminDetail(msg)

	case toastExpireMsg:
		return m.dismissToast(msg.id), nil

	case spinner.TickMsg:
		if !m.spinning() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		switch m.state {
		case stateBrowse:
			m.updateBrowseViewport()
		case stateDetail:
			m.updateDetailViewport()
		}
		return m, cmd
	}

	return m, nil
}

// spinning reports whether something on the current screen is loading.
func (m Model) spinning() bool {
	switch m.state {
	case stateBrowse:
		return m.browseState().Loading()
	case stateDetail:
		return m.detail.loading
	case stateAdmin:
		return m.admin.busy
	}
	return false
}
