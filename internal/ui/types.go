package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/config"
	"ticket-tix/internal/core/browse"
	"ticket-tix/internal/core/form"
)

// Catalog is the remote API the UI talks to. *catalog.Client satisfies it.
type Catalog interface {
	browse.Fetcher
	Detail(ctx context.Context, id int64) (*catalog.EventDetail, error)
	CreateEvent(ctx context.Context, ev catalog.NewEvent) (*catalog.EventDetail, error)
	UploadImages(ctx context.Context, eventID int64, files []catalog.FileUpload) error
	DeleteImage(ctx context.Context, eventID, imageID int64) error
	CreateCategory(ctx context.Context, eventID int64, nc catalog.NewCategory) (*catalog.Category, error)
	DeleteCategory(ctx context.Context, eventID, categoryID int64) error
}

// --- Model / State ---
type state int

const (
	stateBrowse state = iota
	stateDetail
	stateAdmin
	stateQuit
)

// browseFocus is the part of the browse screen receiving keys
type browseFocus int

const (
	focusList browseFocus = iota
	focusSearch
	focusQuickFind
)

// search bar fields, in tab order
const (
	fieldName = iota
	fieldLocation
	fieldFrom
	fieldTo
	searchFieldCount
)

type ListState struct {
	ctl       *browse.Controller
	listIndex int
	focus     browseFocus
}

type SearchState struct {
	inputs    [searchFieldCount]textinput.Model
	focused   int
	datesOpen bool
	errors    map[string]string
}

// QuickFindState narrows the loaded events locally; it never fetches.
type QuickFindState struct {
	input       textinput.Model
	query       string
	filteredIdx []int // visible index -> index into loaded events
}

type DetailState struct {
	seq      uint64 // bumped on every open; older responses are dropped
	id       int64
	loading  bool
	event    *catalog.EventDetail
	err      string
	imageIdx int
}

type adminTab int

const (
	tabCreate adminTab = iota
	tabCategories
	tabImages
)

func (t adminTab) String() string {
	switch t {
	case tabCategories:
		return "Categories"
	case tabImages:
		return "Images"
	default:
		return "Create Event"
	}
}

// create-event fields, in tab order
var eventFields = []string{
	form.EventName,
	form.EventLocation,
	form.EventDescription,
	form.EventStart,
	form.EventEnd,
	form.EventImages,
}

// add-category focus positions; type and book type are toggles
const (
	catFocusName = iota
	catFocusType
	catFocusPrice
	catFocusBook
	catFocusCapacity
	catFocusList
	catFocusCount
)

// text inputs of the add-category form
const (
	catInputName = iota
	catInputPrice
	catInputCapacity
)

type AdminState struct {
	tab     adminTab
	busy    bool
	dirty   bool                 // events changed; refresh the list on leave
	created *catalog.EventDetail // event created in this session

	eventForm   *form.Form
	eventInputs []textinput.Model
	eventFocus  int

	categories []catalog.Category
	catForm    *form.Form
	catInputs  [3]textinput.Model // name, price, capacity
	catFocus   int
	catIndex   int

	images      []catalog.Image
	imageIndex  int
	uploadInput textinput.Model
	uploadFocus bool
}

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	id   int
	text string
	kind toastKind
}

type Model struct {
	state         state
	cfg           config.Config
	api           Catalog
	statusMsg     string
	width, height int

	// viewport for scrollable content
	viewport viewport.Model

	// spinner for loading states
	spinner spinner.Model

	list      ListState
	search    SearchState
	find      QuickFindState
	filterCfg FilterConfig
	detail    DetailState
	admin     AdminState

	toasts      []toast
	nextToastID int
}
