package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/config"
)

// fakeAPI is an in-memory Catalog. Browse replies are served in order; once
// exhausted an empty last page is returned.
type fakeAPI struct {
	mu          sync.Mutex
	pages       []catalog.Page
	errs        []error
	browseCalls []catalog.BrowseQuery

	details map[int64]*catalog.EventDetail
	created *catalog.EventDetail

	deletedCategories []int64
}

func (f *fakeAPI) Browse(_ context.Context, q catalog.BrowseQuery) (catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.browseCalls)
	f.browseCalls = append(f.browseCalls, q)
	if i < len(f.errs) && f.errs[i] != nil {
		return catalog.Page{}, f.errs[i]
	}
	if i < len(f.pages) {
		return f.pages[i], nil
	}
	return catalog.Page{}, nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.browseCalls)
}

func (f *fakeAPI) Detail(_ context.Context, id int64) (*catalog.EventDetail, error) {
	if ev, ok := f.details[id]; ok {
		return ev, nil
	}
	return nil, &catalog.APIError{StatusCode: 404, Message: "event not found"}
}

func (f *fakeAPI) CreateEvent(_ context.Context, ev catalog.NewEvent) (*catalog.EventDetail, error) {
	if f.created == nil {
		return nil, errors.New("create failed")
	}
	return f.created, nil
}

func (f *fakeAPI) UploadImages(context.Context, int64, []catalog.FileUpload) error { return nil }
func (f *fakeAPI) DeleteImage(context.Context, int64, int64) error               { return nil }
func (f *fakeAPI) CreateCategory(_ context.Context, _ int64, nc catalog.NewCategory) (*catalog.Category, error) {
	return &catalog.Category{ID: 99, Name: nc.Name, CategoryType: nc.CategoryType}, nil
}
func (f *fakeAPI) DeleteCategory(_ context.Context, _ int64, categoryID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedCategories = append(f.deletedCategories, categoryID)
	return nil
}

var sampleEvents = []catalog.EventSummary{
	{ID: 1, Name: "Jazz Night", Location: "Jakarta", StartTime: time.Date(2025, 11, 2, 19, 0, 0, 0, time.UTC)},
	{ID: 2, Name: "Rock Fest", Location: "Bandung", StartTime: time.Date(2025, 11, 8, 18, 0, 0, 0, time.UTC)},
	{ID: 3, Name: "Smooth Jazz Brunch", Location: "Bali", StartTime: time.Date(2025, 11, 9, 10, 0, 0, 0, time.UTC)},
	{ID: 4, Name: "Indie Day", Location: "Jakarta", StartTime: time.Date(2025, 11, 15, 13, 0, 0, 0, time.UTC)},
}

// numbered builds n events with ids from+1..from+n.
func numbered(from, n int) []catalog.EventSummary {
	out := make([]catalog.EventSummary, n)
	for i := range out {
		id := from + i + 1
		out[i] = catalog.EventSummary{
			ID:        int64(id),
			Name:      fmt.Sprintf("Event %d", id),
			Location:  "Jakarta",
			StartTime: time.Date(2025, 12, 1, 20, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func newTestModel(api *fakeAPI) Model {
	m := New(api, config.Default())
	m.width, m.height = 100, 40
	m.resizeViewport()
	return m
}

// loadedModel returns a model whose first page has been applied.
func loadedModel(api *fakeAPI) Model {
	m := newTestModel(api)
	req, _ := m.list.ctl.Initialize()
	m, _ = update(m, m.fetchPageCmd(req)())
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// pageResult runs cmd and returns the browse result it produced, if any.
// Only use on commands built from fetches and spinner ticks.
func pageResult(cmd tea.Cmd) (browseResultMsg, bool) {
	if cmd == nil {
		return browseResultMsg{}, false
	}
	switch msg := cmd().(type) {
	case browseResultMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if r, ok := pageResult(c); ok {
				return r, true
			}
		}
	}
	return browseResultMsg{}, false
}

// createKeyMsg creates a KeyMsg from a string representation
func createKeyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	default:
		// Handle single character keys
		if len(key) == 1 {
			return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune(key[0])}}
		}
		// For unhandled multi-character keys, treat as runes
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// containsText reports whether rendered output contains s.
func containsText(rendered, s string) bool { return strings.Contains(rendered, s) }
