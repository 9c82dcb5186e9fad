package ui

import (
	"testing"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/core/form"
)

func adminModel(t *testing.T) Model {
	t.Helper()
	m := loadedModel(&fakeAPI{pages: []catalog.Page{{Events: sampleEvents}}})
	m, _ = update(m, createKeyMsg("a"))
	if m.state != stateAdmin {
		t.Fatalf("expected admin state, got %v", m.state)
	}
	return m
}

// withCreatedEvent simulates a successful create.
func withCreatedEvent(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(m, eventCreatedMsg{event: &catalog.EventDetail{ID: 7, Name: "Jazz Night"}})
	return m
}

func TestCreateEventValidation(t *testing.T) {
	m := adminModel(t)
	m, cmd := update(m, createKeyMsg("ctrl+s"))
	if cmd != nil || m.admin.busy {
		t.Fatalf("invalid form must not submit")
	}
	f := m.admin.eventForm
	if f.Error(form.EventName) != "Name is required" || f.Error(form.EventStart) != "Start time is required" {
		t.Fatalf("unexpected errors: %v", f.Errors())
	}
	if m.statusMsg != "Please fix the highlighted fields." {
		t.Fatalf("unexpected status %q", m.statusMsg)
	}
}

func TestCreateEventEndBeforeStart(t *testing.T) {
	m := adminModel(t)
	values := []string{"Jazz Night", "Jakarta", "", "2025-11-02 19:00", "2025-11-02 18:00", ""}
	for i, v := range values {
		m.admin.eventInputs[i].SetValue(v)
	}
	m, cmd := m.submitEvent()
	if cmd != nil {
		t.Fatalf("expected no submit")
	}
	if got := m.admin.eventForm.Error(form.EventEnd); got != "End must be after start" {
		t.Fatalf("unexpected end error %q", got)
	}
}

func TestCreateEventSubmits(t *testing.T) {
	m := adminModel(t)
	values := []string{"Jazz Night", "Jakarta", "Live quartet", "2025-11-02 19:00", "2025-11-02 22:00", ""}
	for i, v := range values {
		m.admin.eventInputs[i].SetValue(v)
	}
	m, cmd := m.submitEvent()
	if cmd == nil || !m.admin.busy {
		t.Fatalf("expected create request")
	}
	// a second submit while busy is ignored
	if _, cmd := m.submitEvent(); cmd != nil {
		t.Fatalf("expected busy guard")
	}
}

func TestEventCreatedOpensCategories(t *testing.T) {
	m := withCreatedEvent(t, adminModel(t))
	if m.admin.created == nil || m.admin.created.ID != 7 {
		t.Fatalf("created event not stored")
	}
	if m.admin.tab != tabCategories || m.admin.busy || !m.admin.dirty {
		t.Fatalf("unexpected admin state: tab=%v busy=%v dirty=%v", m.admin.tab, m.admin.busy, m.admin.dirty)
	}
	if len(m.toasts) != 1 || m.toasts[0].text != "Event created!" || m.toasts[0].kind != toastSuccess {
		t.Fatalf("unexpected toasts %+v", m.toasts)
	}
	for i := range m.admin.eventInputs {
		if m.admin.eventInputs[i].Value() != "" {
			t.Fatalf("create form should be reset")
		}
	}
}

func TestCreateEventFailureShowsToast(t *testing.T) {
	m := adminModel(t)
	m.admin.busy = true
	m, _ = update(m, eventCreatedMsg{err: &catalog.APIError{StatusCode: 400, Message: "name taken"}})
	if m.admin.busy || m.admin.created != nil {
		t.Fatalf("unexpected state after failure")
	}
	if len(m.toasts) != 1 || m.toasts[0].text != "name taken" || m.toasts[0].kind != toastError {
		t.Fatalf("unexpected toasts %+v", m.toasts)
	}
}

func TestTabsLockedUntilEventExists(t *testing.T) {
	m := adminModel(t)
	m, _ = update(m, createKeyMsg("f2"))
	if m.admin.tab != tabCreate || m.statusMsg != "Create an event first." {
		t.Fatalf("expected tab to stay locked, tab=%v status=%q", m.admin.tab, m.statusMsg)
	}
}

func TestCategoryValidation(t *testing.T) {
	m := withCreatedEvent(t, adminModel(t))
	m.admin.catInputs[catInputName].SetValue("VIP")
	m.admin.catInputs[catInputPrice].SetValue("0")
	m.admin.catInputs[catInputCapacity].SetValue("1.5")

	m, cmd := m.submitCategory()
	if cmd != nil {
		t.Fatalf("invalid category must not submit")
	}
	if got := m.admin.catForm.Error(form.CategoryPrice); got != "Price must be greater than 0" {
		t.Fatalf("unexpected price error %q", got)
	}
	if got := m.admin.catForm.Error(form.CategoryCapacity); got != "Capacity must be a whole number greater than 0" {
		t.Fatalf("unexpected capacity error %q", got)
	}
}

func TestCategoryTypeToggle(t *testing.T) {
	m := withCreatedEvent(t, adminModel(t))
	m.admin.catFocus = catFocusType
	m, _ = update(m, createKeyMsg("l"))
	if got := m.admin.catForm.Get(form.CategoryType); got != catalog.CategorySeated {
		t.Fatalf("expected SEATED, got %q", got)
	}
}

func TestCategoryAddedAndRemoved(t *testing.T) {
	m := withCreatedEvent(t, adminModel(t))

	// results for another event are ignored
	m, _ = update(m, categoryAddedMsg{eventID: 8, category: &catalog.Category{ID: 1}})
	if len(m.admin.categories) != 0 {
		t.Fatalf("foreign category applied")
	}

	m, _ = update(m, categoryAddedMsg{eventID: 7, category: &catalog.Category{ID: 3, Name: "VIP"}})
	if len(m.admin.categories) != 1 || m.toasts[len(m.toasts)-1].text != "Category added!" {
		t.Fatalf("category not added: %+v", m.admin.categories)
	}

	m.admin.catFocus = catFocusList
	m, cmd := update(m, createKeyMsg("d"))
	if cmd == nil || !m.admin.busy {
		t.Fatalf("expected delete request")
	}
	m, _ = update(m, categoryRemovedMsg{eventID: 7, categoryID: 3})
	if len(m.admin.categories) != 0 || m.admin.busy {
		t.Fatalf("category not removed")
	}
	if m.toasts[len(m.toasts)-1].text != "Removed" {
		t.Fatalf("unexpected toast %+v", m.toasts)
	}
}

func TestRemoveCategoryUsesPrimaryID(t *testing.T) {
	api := &fakeAPI{pages: []catalog.Page{{Events: sampleEvents}}}
	m := loadedModel(api)
	m, _ = update(m, createKeyMsg("a"))
	m = withCreatedEvent(t, m)
	legacy := int64(9)
	m.admin.categories = []catalog.Category{{ID: 4, Name: "VIP"}, {ID: 5, CategoryID: &legacy, Name: "GA"}}
	m.admin.catIndex = 1

	m, cmd := m.removeCategory()
	if cmd == nil || !m.admin.busy {
		t.Fatalf("expected delete request")
	}
	msg, ok := cmd().(categoryRemovedMsg)
	if !ok || msg.categoryID != 5 {
		t.Fatalf("expected removal of category 5, got %+v", msg)
	}
	if len(api.deletedCategories) != 1 || api.deletedCategories[0] != 5 {
		t.Fatalf("unexpected delete calls %v", api.deletedCategories)
	}

	m, _ = update(m, msg)
	if len(m.admin.categories) != 1 || m.admin.categories[0].ID != 4 {
		t.Fatalf("wrong category removed: %+v", m.admin.categories)
	}
}

func TestUploadRequiresImages(t *testing.T) {
	m := withCreatedEvent(t, adminModel(t))
	m.admin.tab = tabImages
	m.admin.uploadFocus = true

	m, cmd := update(m, createKeyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected toast expiry cmd")
	}
	if m.admin.busy {
		t.Fatalf("nothing should be uploading")
	}
	last := m.toasts[len(m.toasts)-1]
	if last.text != "Select at least one image" || last.kind != toastError {
		t.Fatalf("unexpected toast %+v", last)
	}
}

func TestImagesUploadedRefreshesEvent(t *testing.T) {
	m := withCreatedEvent(t, adminModel(t))
	m.admin.busy = true

	m, cmd := update(m, imagesUploadedMsg{eventID: 7, count: 2})
	if cmd == nil || !m.admin.busy {
		t.Fatalf("expected refresh while still busy")
	}
	ev := &catalog.EventDetail{ID: 7, Images: []catalog.Image{{ID: 1, ImageURL: "a"}, {ID: 2, ImageURL: "b"}}}
	m, _ = update(m, adminDetailMsg{event: ev, afterUpload: true})
	if m.admin.busy || len(m.admin.images) != 2 {
		t.Fatalf("images not refreshed: %+v", m.admin.images)
	}
	if m.toasts[len(m.toasts)-1].text != "Images uploaded!" {
		t.Fatalf("unexpected toast %+v", m.toasts)
	}

	m, _ = update(m, imageDeletedMsg{eventID: 7, imageID: 1})
	if len(m.admin.images) != 1 || m.admin.images[0].ID != 2 {
		t.Fatalf("image not removed: %+v", m.admin.images)
	}
}

func TestCategoryRefreshKeepsOtherOperationBusy(t *testing.T) {
	m := withCreatedEvent(t, adminModel(t))
	m.admin.categories = []catalog.Category{{ID: 4, Name: "VIP"}}
	m.admin.catFocus = catFocusList
	m, _ = update(m, createKeyMsg("d"))
	if !m.admin.busy {
		t.Fatalf("expected delete in flight")
	}

	// the refresh after a 204 category create lands first
	ev := &catalog.EventDetail{ID: 7, Categories: []catalog.Category{{ID: 4, Name: "VIP"}, {ID: 6, Name: "GA"}}}
	m, _ = update(m, adminDetailMsg{event: ev})
	if !m.admin.busy {
		t.Fatalf("refresh must not clear the pending delete")
	}
	if len(m.admin.categories) != 2 {
		t.Fatalf("categories not refreshed: %+v", m.admin.categories)
	}

	m, _ = update(m, categoryRemovedMsg{eventID: 7, categoryID: 4})
	if m.admin.busy || len(m.admin.categories) != 1 || m.admin.categories[0].ID != 6 {
		t.Fatalf("unexpected state after delete: busy=%v %+v", m.admin.busy, m.admin.categories)
	}
}

func TestLeaveAdminRefreshesDirtyList(t *testing.T) {
	api := &fakeAPI{pages: []catalog.Page{{Events: sampleEvents}}}
	m := loadedModel(api)
	m, _ = update(m, createKeyMsg("a"))
	m = withCreatedEvent(t, m)

	m, cmd := update(m, createKeyMsg("esc"))
	if m.state != stateBrowse || cmd == nil {
		t.Fatalf("expected browse with refresh")
	}
	if !m.browseState().InitialLoad || m.admin.dirty {
		t.Fatalf("expected a fresh search")
	}
}

func TestLeaveAdminWithoutChanges(t *testing.T) {
	m := adminModel(t)
	gen := m.list.ctl.Generation()
	m, cmd := update(m, createKeyMsg("esc"))
	if m.state != stateBrowse || cmd != nil || m.list.ctl.Generation() != gen {
		t.Fatalf("expected plain return to the list")
	}
}
