package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/core/form"
	"ticket-tix/internal/infra/logx"
)

// openAdmin switches to the admin screen, keeping the tab and forms as they were.
func (m Model) openAdmin() (Model, tea.Cmd) {
	m.state = stateAdmin
	m.statusMsg = ""
	cmd := m.focusAdminTab()
	return m, cmd
}

// leaveAdmin returns to browsing; the list is refreshed when events changed.
func (m Model) leaveAdmin() (Model, tea.Cmd) {
	m.blurAdmin()
	m.state = stateBrowse
	m.statusMsg = ""
	if m.admin.dirty && !m.browseState().InitialLoad {
		m.admin.dirty = false
		return m.startSearch(m.browseState().Criteria)
	}
	m.updateBrowseViewport()
	return m, nil
}

func (m Model) tabEnabled(t adminTab) bool {
	return t == tabCreate || m.admin.created != nil
}

func (m Model) switchTab(t adminTab) (Model, tea.Cmd) {
	if !m.tabEnabled(t) {
		m.statusMsg = "Create an event first."
		return m, nil
	}
	m.blurAdmin()
	m.admin.tab = t
	m.statusMsg = ""
	cmd := m.focusAdminTab()
	return m, cmd
}

func (m *Model) blurAdmin() {
	for i := range m.admin.eventInputs {
		m.admin.eventInputs[i].Blur()
	}
	for i := range m.admin.catInputs {
		m.admin.catInputs[i].Blur()
	}
	m.admin.uploadInput.Blur()
}

// focusAdminTab focuses the current input of the active tab.
func (m *Model) focusAdminTab() tea.Cmd {
	m.blurAdmin()
	switch m.admin.tab {
	case tabCreate:
		return m.admin.eventInputs[m.admin.eventFocus].Focus()
	case tabCategories:
		if in := catInputFor(m.admin.catFocus); in >= 0 {
			return m.admin.catInputs[in].Focus()
		}
	case tabImages:
		if m.admin.uploadFocus {
			return m.admin.uploadInput.Focus()
		}
	}
	return nil
}

// catInputFor maps a category focus position to its text input, or -1.
func catInputFor(focus int) int {
	switch focus {
	case catFocusName:
		return catInputName
	case catFocusPrice:
		return catInputPrice
	case catFocusCapacity:
		return catInputCapacity
	}
	return -1
}

// catFieldFor maps a text input of the category form to its form field.
func catFieldFor(in int) string {
	switch in {
	case catInputPrice:
		return form.CategoryPrice
	case catInputCapacity:
		return form.CategoryCapacity
	default:
		return form.CategoryName
	}
}

// handleAdminKey handles keys on the admin screen.
func (m Model) handleAdminKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.leaveAdmin()
	case "f1":
		return m.switchTab(tabCreate)
	case "f2":
		return m.switchTab(tabCategories)
	case "f3":
		return m.switchTab(tabImages)
	case "ctrl+t":
		next := m.admin.tab
		for range 3 {
			next = (next + 1) % 3
			if m.tabEnabled(next) {
				break
			}
		}
		return m.switchTab(next)
	}

	switch m.admin.tab {
	case tabCategories:
		return m.handleCategoriesKey(msg)
	case tabImages:
		return m.handleImagesKey(msg)
	default:
		return m.handleCreateEventKey(msg)
	}
}

// ---------- Create Event ----------

func (m Model) moveEventFocus(delta int) (Model, tea.Cmd) {
	n := len(m.admin.eventInputs)
	m.admin.eventFocus = (m.admin.eventFocus + delta + n) % n
	cmd := m.focusAdminTab()
	return m, cmd
}

func (m Model) handleCreateEventKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.moveEventFocus(1)
	case "shift+tab", "up":
		return m.moveEventFocus(-1)
	case "ctrl+s":
		return m.submitEvent()
	case "enter":
		if m.admin.eventFocus == len(m.admin.eventInputs)-1 {
			return m.submitEvent()
		}
		return m.moveEventFocus(1)
	}
	i := m.admin.eventFocus
	var cmd tea.Cmd
	m.admin.eventInputs[i], cmd = m.admin.eventInputs[i].Update(msg)
	m.admin.eventForm.Set(eventFields[i], m.admin.eventInputs[i].Value())
	return m, cmd
}

func (m Model) submitEvent() (Model, tea.Cmd) {
	if m.admin.busy {
		return m, nil
	}
	f := m.admin.eventForm
	for i, field := range eventFields {
		f.Set(field, m.admin.eventInputs[i].Value())
	}
	if !f.Validate(form.EventRules()) {
		m.statusMsg = "Please fix the highlighted fields."
		return m, nil
	}
	ev, err := form.NewEvent(f.Values())
	if err != nil {
		return m.failure(err)
	}
	m.admin.busy = true
	m.statusMsg = "Creating event…"
	return m, tea.Batch(m.spinner.Tick, m.createEventCmd(ev, form.ImagePaths(f.Get(form.EventImages))))
}

func (m Model) handleEventCreated(msg eventCreatedMsg) (Model, tea.Cmd) {
	m.admin.busy = false
	m.statusMsg = ""
	if msg.err != nil {
		return m.failure(msg.err)
	}
	ev := msg.event
	logx.Infof("admin: created event id=%d name=%q", ev.ID, ev.Name)
	m.admin.created = ev
	m.admin.dirty = true
	m.admin.categories = append([]catalog.Category(nil), ev.Categories...)
	m.admin.images = append([]catalog.Image(nil), ev.Images...)
	m.admin.catIndex, m.admin.imageIndex = 0, 0

	m.admin.eventForm.Reset()
	for i := range m.admin.eventInputs {
		m.admin.eventInputs[i].SetValue("")
	}
	m.admin.eventFocus = 0

	m.blurAdmin()
	m.admin.tab = tabCategories
	m.admin.catFocus = catFocusName
	focus := m.focusAdminTab()
	m, toastCmd := m.success("Event created!")
	return m, tea.Batch(focus, toastCmd)
}

// ---------- Categories ----------

func (m Model) handleCategoriesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "tab":
		m.admin.catFocus = (m.admin.catFocus + 1) % catFocusCount
		cmd := m.focusAdminTab()
		return m, cmd
	case "shift+tab":
		m.admin.catFocus = (m.admin.catFocus - 1 + catFocusCount) % catFocusCount
		cmd := m.focusAdminTab()
		return m, cmd
	case "ctrl+s":
		return m.submitCategory()
	}

	switch m.admin.catFocus {
	case catFocusList:
		switch key {
		case "j", "down":
			if m.admin.catIndex < len(m.admin.categories)-1 {
				m.admin.catIndex++
			}
		case "k", "up":
			if m.admin.catIndex > 0 {
				m.admin.catIndex--
			}
		case "d", "delete", "x":
			return m.removeCategory()
		}
		return m, nil
	case catFocusType:
		if isToggleKey(key) {
			f := m.admin.catForm
			f.Set(form.CategoryType, flip(f.Get(form.CategoryType), catalog.CategoryStanding, catalog.CategorySeated))
		} else if key == "enter" {
			return m.submitCategory()
		}
		return m, nil
	case catFocusBook:
		if isToggleKey(key) {
			f := m.admin.catForm
			f.Set(form.CategoryBookType, flip(f.Get(form.CategoryBookType), catalog.BookFixed, catalog.BookFlexible))
		} else if key == "enter" {
			return m.submitCategory()
		}
		return m, nil
	}

	if key == "enter" {
		return m.submitCategory()
	}
	in := catInputFor(m.admin.catFocus)
	if in < 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.admin.catInputs[in], cmd = m.admin.catInputs[in].Update(msg)
	m.admin.catForm.Set(catFieldFor(in), m.admin.catInputs[in].Value())
	return m, cmd
}

func isToggleKey(key string) bool {
	switch key {
	case "left", "right", "h", "l", " ", "space":
		return true
	}
	return false
}

func flip(cur, a, b string) string {
	if cur == a {
		return b
	}
	return a
}

func (m Model) submitCategory() (Model, tea.Cmd) {
	if m.admin.busy || m.admin.created == nil {
		return m, nil
	}
	f := m.admin.catForm
	for i := range m.admin.catInputs {
		f.Set(catFieldFor(i), m.admin.catInputs[i].Value())
	}
	if !f.Validate(form.CategoryRules()) {
		m.statusMsg = "Please fix the highlighted fields."
		return m, nil
	}
	nc, err := form.NewCategory(f.Values())
	if err != nil {
		return m.failure(err)
	}
	m.admin.busy = true
	m.statusMsg = "Adding category…"
	return m, tea.Batch(m.spinner.Tick, m.addCategoryCmd(m.admin.created.ID, nc))
}

func (m Model) handleCategoryAdded(msg categoryAddedMsg) (Model, tea.Cmd) {
	if m.admin.created == nil || msg.eventID != m.admin.created.ID {
		return m, nil
	}
	m.admin.busy = false
	m.statusMsg = ""
	if msg.err != nil {
		return m.failure(msg.err)
	}
	var refresh tea.Cmd
	if msg.category != nil {
		m.admin.categories = append(m.admin.categories, *msg.category)
	} else {
		// 204: the server did not echo the category
		refresh = m.refreshAdminCmd(msg.eventID, false)
	}
	m.admin.catForm.Reset()
	for i := range m.admin.catInputs {
		m.admin.catInputs[i].SetValue("")
	}
	m.admin.catFocus = catFocusName
	focus := m.focusAdminTab()
	m, toastCmd := m.success("Category added!")
	return m, tea.Batch(refresh, focus, toastCmd)
}

func (m Model) removeCategory() (Model, tea.Cmd) {
	if m.admin.busy || m.admin.created == nil || len(m.admin.categories) == 0 {
		return m, nil
	}
	c := m.admin.categories[m.admin.catIndex]
	m.admin.busy = true
	return m, m.removeCategoryCmd(m.admin.created.ID, c.ID)
}

func (m Model) handleCategoryRemoved(msg categoryRemovedMsg) (Model, tea.Cmd) {
	if m.admin.created == nil || msg.eventID != m.admin.created.ID {
		return m, nil
	}
	m.admin.busy = false
	if msg.err != nil {
		return m.failure(msg.err)
	}
	if i := indexOfCategory(m.admin.categories, msg.categoryID); i >= 0 {
		m.admin.categories = append(m.admin.categories[:i:i], m.admin.categories[i+1:]...)
	}
	if m.admin.catIndex >= len(m.admin.categories) {
		m.admin.catIndex = max(0, len(m.admin.categories)-1)
	}
	return m.success("Removed")
}

// ---------- Images ----------

func (m Model) handleImagesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "tab" || key == "shift+tab" {
		m.admin.uploadFocus = !m.admin.uploadFocus
		cmd := m.focusAdminTab()
		return m, cmd
	}
	if m.admin.uploadFocus {
		switch key {
		case "enter", "ctrl+s":
			return m.submitUpload()
		}
		var cmd tea.Cmd
		m.admin.uploadInput, cmd = m.admin.uploadInput.Update(msg)
		return m, cmd
	}
	switch key {
	case "j", "down":
		if m.admin.imageIndex < len(m.admin.images)-1 {
			m.admin.imageIndex++
		}
	case "k", "up":
		if m.admin.imageIndex > 0 {
			m.admin.imageIndex--
		}
	case "d", "delete", "x":
		return m.deleteImage()
	case "u", "ctrl+s":
		m.admin.uploadFocus = true
		cmd := m.focusAdminTab()
		return m, cmd
	}
	return m, nil
}

func (m Model) submitUpload() (Model, tea.Cmd) {
	if m.admin.busy || m.admin.created == nil {
		return m, nil
	}
	paths := form.ImagePaths(m.admin.uploadInput.Value())
	if len(paths) == 0 {
		return m.showToast("Select at least one image", toastError)
	}
	m.admin.busy = true
	m.statusMsg = "Uploading " + plural(len(paths), "image") + "…"
	return m, tea.Batch(m.spinner.Tick, m.uploadImagesCmd(m.admin.created.ID, paths))
}

func (m Model) handleImagesUploaded(msg imagesUploadedMsg) (Model, tea.Cmd) {
	if m.admin.created == nil || msg.eventID != m.admin.created.ID {
		return m, nil
	}
	if msg.err != nil {
		m.admin.busy = false
		m.statusMsg = ""
		return m.failure(msg.err)
	}
	logx.Infof("admin: uploaded %d image(s) to event %d", msg.count, msg.eventID)
	m.admin.uploadInput.SetValue("")
	m.admin.dirty = true
	return m, m.refreshAdminCmd(msg.eventID, true)
}

func (m Model) handleAdminDetail(msg adminDetailMsg) (Model, tea.Cmd) {
	if m.admin.created == nil {
		return m, nil
	}
	// only the post-upload refresh owns the busy flag
	if msg.afterUpload {
		m.admin.busy = false
		m.statusMsg = ""
	}
	if msg.err != nil {
		return m.failure(msg.err)
	}
	if msg.event == nil || msg.event.ID != m.admin.created.ID {
		return m, nil
	}
	m.admin.created = msg.event
	m.admin.images = append([]catalog.Image(nil), msg.event.Images...)
	m.admin.categories = append([]catalog.Category(nil), msg.event.Categories...)
	m.admin.imageIndex = min(m.admin.imageIndex, max(0, len(m.admin.images)-1))
	m.admin.catIndex = min(m.admin.catIndex, max(0, len(m.admin.categories)-1))
	if msg.afterUpload {
		return m.success("Images uploaded!")
	}
	return m, nil
}

func (m Model) deleteImage() (Model, tea.Cmd) {
	if m.admin.busy || m.admin.created == nil || len(m.admin.images) == 0 {
		return m, nil
	}
	img := m.admin.images[m.admin.imageIndex]
	m.admin.busy = true
	return m, m.deleteImageCmd(m.admin.created.ID, img.ID)
}

func (m Model) handleImageDeleted(msg imageDeletedMsg) (Model, tea.Cmd) {
	if m.admin.created == nil || msg.eventID != m.admin.created.ID {
		return m, nil
	}
	m.admin.busy = false
	if msg.err != nil {
		return m.failure(msg.err)
	}
	if i := indexOfImage(m.admin.images, msg.imageID); i >= 0 {
		m.admin.images = append(m.admin.images[:i:i], m.admin.images[i+1:]...)
	}
	if m.admin.imageIndex >= len(m.admin.images) {
		m.admin.imageIndex = max(0, len(m.admin.images)-1)
	}
	m.admin.dirty = true
	return m.success("Deleted")
}

// inputView renders a text input with its label and error.
func inputView(label string, in textinput.Model, errMsg string) string {
	line := labelStyle.Render(label) + " " + in.View()
	if errMsg != "" {
		line += "\n  " + errorStyle.Render(errMsg)
	}
	return line
}
