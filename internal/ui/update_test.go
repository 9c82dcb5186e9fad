package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ticket-tix/internal/catalog"
)

// TestUpdateGlobalQuit ensures that ctrl+c quits from any screen.
func TestUpdateGlobalQuit(t *testing.T) {
	for _, st := range []state{stateBrowse, stateDetail, stateAdmin} {
		m := newTestModel(&fakeAPI{})
		m.state = st
		m, cmd := update(m, createKeyMsg("ctrl+c"))
		if cmd == nil {
			t.Fatalf("state %v: expected quit cmd", st)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("state %v: expected tea.QuitMsg", st)
		}
		if m.View() != "" {
			t.Fatalf("state %v: expected empty view after quit", st)
		}
	}
}

func TestQuitFromList(t *testing.T) {
	m := loadedModel(&fakeAPI{pages: []catalog.Page{{Events: sampleEvents}}})
	_, cmd := update(m, createKeyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestWindowSizeResizesViewport(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.width != 120 || m.height != 50 {
		t.Fatalf("size not stored")
	}
	if m.viewport.Height != 50-chromeHeight || m.viewport.Width != 120 {
		t.Fatalf("unexpected viewport %dx%d", m.viewport.Width, m.viewport.Height)
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 10, Height: 3})
	if m.viewport.Height != 5 || m.viewport.Width != 20 {
		t.Fatalf("expected minimum viewport, got %dx%d", m.viewport.Width, m.viewport.Height)
	}
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m := loadedModel(&fakeAPI{pages: []catalog.Page{{Events: sampleEvents}}})
	if _, cmd := update(m, spinner.TickMsg{}); cmd != nil {
		t.Fatalf("idle screen should stop the spinner")
	}
}

func TestViewShowsScreenTitle(t *testing.T) {
	m := loadedModel(&fakeAPI{pages: []catalog.Page{{Events: sampleEvents}}})
	out := m.View()
	for _, want := range []string{"ticket-tix", "Browse events", "Jazz Night", "4 events"} {
		if !containsText(out, want) {
			t.Fatalf("expected %q in view", want)
		}
	}

	m, _ = update(m, createKeyMsg("a"))
	if out := m.View(); !containsText(out, "Create Event") {
		t.Fatalf("expected admin tabs in view")
	}
}
