package browse

import (
	"context"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/infra/logx"
)

// DefaultPageSize is the number of events requested per page.
const DefaultPageSize = 12

// Mode tells whether a request starts a result list or extends it.
type Mode int

const (
	ModeReplace Mode = iota // first page of a criteria generation
	ModeAppend              // next page, same criteria
)

func (m Mode) String() string {
	if m == ModeAppend {
		return "append"
	}
	return "replace"
}

// Fetcher loads one page of events. *catalog.Client satisfies it.
type Fetcher interface {
	Browse(ctx context.Context, q catalog.BrowseQuery) (catalog.Page, error)
}

// Request is a ticket for one page fetch. It is produced by the controller and
// must be handed back through Apply after Fetch ran.
type Request struct {
	Generation uint64
	Criteria   Criteria
	Cursor     string
	Limit      int
	Mode       Mode

	ctx context.Context
}

// Context is cancelled once a newer search supersedes the request.
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Query is the catalog query the request stands for.
func (r Request) Query() catalog.BrowseQuery {
	return r.Criteria.Query(r.Cursor, r.Limit)
}

// Result is the outcome of a Request.
type Result struct {
	Request Request
	Page    catalog.Page
	Err     error
}

// State is a read-only snapshot of the browse state.
type State struct {
	Criteria    Criteria
	Cursor      string
	Events      []catalog.EventSummary
	HasMore     bool
	InitialLoad bool
	LoadingMore bool
	Err         string
}

// Loading reports whether any fetch is pending.
func (s State) Loading() bool { return s.InitialLoad || s.LoadingMore }

// Empty reports the settled "no events found" state.
func (s State) Empty() bool {
	return !s.Loading() && s.Err == "" && len(s.Events) == 0
}

// Controller owns filter criteria, the pagination cursor and the accumulated
// results. It performs no I/O: callers run Fetch with the returned Request and
// commit the outcome with Apply. Not safe for concurrent use; the owner
// (a bubbletea model or a CLI loop) serializes calls.
type Controller struct {
	pageSize    int
	generation  uint64
	initialized bool
	state       State

	parent context.Context
	genCtx context.Context
	cancel context.CancelFunc
}

// NewController creates a controller. A non-positive pageSize selects
// DefaultPageSize.
func NewController(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{pageSize: pageSize, parent: context.Background(), state: State{Events: []catalog.EventSummary{}}}
}

// WithContext sets the parent context of every generation.
func (c *Controller) WithContext(ctx context.Context) *Controller {
	if ctx != nil {
		c.parent = ctx
	}
	return c
}

// PageSize returns the page size sent with each request.
func (c *Controller) PageSize() int { return c.pageSize }

// Generation returns the current criteria generation.
func (c *Controller) Generation() uint64 { return c.generation }

// State returns a snapshot. The Events slice is copied.
func (c *Controller) State() State {
	s := c.state
	s.Events = append([]catalog.EventSummary(nil), c.state.Events...)
	return s
}

// Initialize starts the first search with empty criteria. Only the first call
// yields a request.
func (c *Controller) Initialize() (Request, bool) {
	if c.initialized {
		return Request{}, false
	}
	return c.Search(Criteria{}), true
}

// Search replaces the criteria and starts over from the first page. Any fetch
// still in flight belongs to an older generation and will be discarded.
func (c *Controller) Search(cr Criteria) Request {
	c.initialized = true
	if c.cancel != nil {
		c.cancel()
	}
	c.genCtx, c.cancel = context.WithCancel(c.parent)
	c.generation++

	c.state = State{
		Criteria:    cr,
		Cursor:      "",
		Events:      []catalog.EventSummary{},
		InitialLoad: true,
	}
	logx.Debugf("browse: search gen=%d criteria=%s", c.generation, cr)
	return Request{
		Generation: c.generation,
		Criteria:   cr,
		Limit:      c.pageSize,
		Mode:       ModeReplace,
		ctx:        c.genCtx,
	}
}

// LoadMore requests the next page. It is a no-op while a fetch is pending or
// when the last page was already applied.
func (c *Controller) LoadMore() (Request, bool) {
	s := &c.state
	if !s.HasMore || s.LoadingMore || s.InitialLoad {
		return Request{}, false
	}
	s.LoadingMore = true
	return Request{
		Generation: c.generation,
		Criteria:   s.Criteria,
		Cursor:     s.Cursor,
		Limit:      c.pageSize,
		Mode:       ModeAppend,
		ctx:        c.genCtx,
	}, true
}

// Apply commits a result. Results of an older generation, or that do not match
// the pending operation, are dropped and Apply returns false.
func (c *Controller) Apply(res Result) bool {
	req := res.Request
	s := &c.state
	if req.Generation != c.generation {
		logx.Debugf("browse: drop stale result gen=%d current=%d", req.Generation, c.generation)
		return false
	}
	switch req.Mode {
	case ModeReplace:
		if !s.InitialLoad {
			return false
		}
		s.InitialLoad = false
		if res.Err != nil {
			s.Err = res.Err.Error()
			s.Events = []catalog.EventSummary{}
			s.HasMore = false
			s.Cursor = ""
			return true
		}
		s.Events = append([]catalog.EventSummary{}, res.Page.Events...)
	case ModeAppend:
		if !s.LoadingMore || req.Cursor != s.Cursor {
			return false
		}
		s.LoadingMore = false
		if res.Err != nil {
			s.Err = res.Err.Error()
			return true
		}
		s.Events = append(s.Events, res.Page.Events...)
	default:
		return false
	}
	s.HasMore = res.Page.HasMore
	s.Cursor = res.Page.NextCursor
	if !s.HasMore {
		s.Cursor = ""
	}
	s.Err = ""
	return true
}

// Close cancels the context of any request still in flight.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Fetch executes req against f.
func Fetch(ctx context.Context, f Fetcher, req Request) Result {
	page, err := f.Browse(ctx, req.Query())
	if err != nil {
		logx.Warnf("browse: fetch gen=%d mode=%s failed: %v", req.Generation, req.Mode, err)
	}
	return Result{Request: req, Page: page, Err: err}
}
