package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ticket-tix/internal/config"
	"ticket-tix/internal/core/browse"
	"ticket-tix/internal/core/form"
)

// New builds the root model. The first page is requested by Init.
func New(api Catalog, cfg config.Config) Model {
	cfg.Normalize()
	m := Model{
		state: stateBrowse,
		cfg:   cfg,
		api:   api,
	}
	m.list.ctl = browse.NewController(cfg.PageSize)

	// search bar
	placeholders := [searchFieldCount]string{
		fieldName:     "Event name",
		fieldLocation: "Location",
		fieldFrom:     "From (YYYY-MM-DD)",
		fieldTo:       "To (YYYY-MM-DD)",
	}
	for i, ph := range placeholders {
		ti := textinput.New()
		ti.Placeholder = ph
		ti.CharLimit = 120
		ti.Width = 24
		if i == fieldFrom || i == fieldTo {
			ti.CharLimit = 10
			ti.Width = 12
		}
		m.search.inputs[i] = ti
	}
	m.search.errors = map[string]string{}
	m.search.datesOpen = enableFlag(os.Getenv("TICKETTIX_SHOW_DATES"))

	// quick-find
	qi := textinput.New()
	qi.Placeholder = "Quick find in loaded events…"
	qi.CharLimit = 80
	qi.Width = 32
	m.find.input = qi
	m.filterCfg = FilterConfig{
		MinCoverage: 0.6,
		MaxSpread:   40,
		MaxResults:  200,
	}

	m.admin = newAdminState()

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = subtleStyle
	m.spinner = sp

	// viewport
	m.viewport = viewport.New(80, 20) // resized on WindowSizeMsg

	return m
}

func newAdminState() AdminState {
	a := AdminState{tab: tabCreate}

	a.eventForm = form.New(form.EventDefaults())
	eventPlaceholders := map[string]string{
		form.EventName:        "Event name *",
		form.EventLocation:    "Location *",
		form.EventDescription: "Description",
		form.EventStart:       "Start * (YYYY-MM-DD HH:MM)",
		form.EventEnd:         "End * (YYYY-MM-DD HH:MM)",
		form.EventImages:      "Image files, comma separated (first = cover)",
	}
	a.eventInputs = make([]textinput.Model, len(eventFields))
	for i, f := range eventFields {
		ti := textinput.New()
		ti.Placeholder = eventPlaceholders[f]
		ti.CharLimit = 500
		ti.Width = 48
		a.eventInputs[i] = ti
	}
	a.eventInputs[0].Focus()

	a.catForm = form.New(form.CategoryDefaults())
	for i, ph := range []string{"Category name *", "Price (IDR) *", "Total capacity *"} {
		ti := textinput.New()
		ti.Placeholder = ph
		ti.CharLimit = 64
		ti.Width = 24
		a.catInputs[i] = ti
	}

	up := textinput.New()
	up.Placeholder = "Image files, comma separated"
	up.CharLimit = 1000
	up.Width = 48
	a.uploadInput = up
	return a
}

// Init requests the first page with empty criteria.
func (m Model) Init() tea.Cmd {
	req, ok := m.list.ctl.Initialize()
	if !ok {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetchPageCmd(req))
}

// enableFlag returns true for common truthy values: 1, true, yes (case-insensitive)
func enableFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "enable", "enabled":
		return true
	default:
		return false
	}
}
