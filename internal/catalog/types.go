package catalog

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ---------- Events ----------

// EventSummary is one entry of a browse page.
type EventSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	ImageURL  string    `json:"image_url,omitempty"`
}

// EventDetail is the full event as returned by GET /event/{id}.
type EventDetail struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Images      []Image    `json:"images,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
}

// Image belongs to an event; the primary one is used as cover.
type Image struct {
	ID           int64  `json:"id"`
	ImageURL     string `json:"image_url"`
	IsPrimary    bool   `json:"is_primary,omitempty"`
	DisplayOrder int    `json:"display_order,omitempty"`
}

// Category types and booking types accepted by the backend.
const (
	CategoryStanding = "STANDING"
	CategorySeated   = "SEATED"

	BookFixed    = "FIXED"
	BookFlexible = "FLEXIBLE"
)

// Category is a ticket category of an event.
type Category struct {
	ID                int64  `json:"id"`
	CategoryID        *int64 `json:"category_id,omitempty"` // older payloads, never used as a route id
	Name              string `json:"name"`
	CategoryType      string `json:"category_type"`
	Price             Amount `json:"price"`
	BookType          string `json:"book_type,omitempty"`
	TotalCapacity     int    `json:"total_capacity"`
	AvailableCapacity *int   `json:"available_capacity,omitempty"`
	AvailableStock    *int   `json:"available_stock,omitempty"` // older payloads
}

// Available returns the remaining seats: available_capacity, then
// available_stock, then 0.
func (c Category) Available() int {
	if c.AvailableCapacity != nil {
		return *c.AvailableCapacity
	}
	if c.AvailableStock != nil {
		return *c.AvailableStock
	}
	return 0
}

// Amount is a decimal price. The backend sends it as a string; numbers are
// accepted too.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Amount(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// Float parses the amount; invalid or empty amounts yield 0.
func (a Amount) Float() float64 {
	f, err := strconv.ParseFloat(string(a), 64)
	if err != nil {
		return 0
	}
	return f
}

// ---------- Browse ----------

// BrowseQuery are the parameters of GET /events. Empty fields are omitted.
type BrowseQuery struct {
	EventName string
	Location  string
	StartDate string
	EndDate   string
	Cursor    string
	Limit     int
}

// Values encodes the query, dropping empty parameters.
func (q BrowseQuery) Values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("event_name", q.EventName)
	set("location", q.Location)
	set("start_date", q.StartDate)
	set("end_date", q.EndDate)
	set("cursor", q.Cursor)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Page is one cursor page of the catalog.
type Page struct {
	Events     []EventSummary `json:"events"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor"`
}

// ---------- Admin payloads ----------

// FileUpload is one file part of a multipart request.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewEvent is the payload of POST /events.
type NewEvent struct {
	Name        string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Images      []FileUpload // first one becomes the cover
}

// NewCategory is the payload of POST /events/{id}/categories.
type NewCategory struct {
	Name           string `json:"name"`
	CategoryType   string `json:"category_type"`
	Price          string `json:"price"`
	BookType       string `json:"book_type"`
	TotalCapacity  int    `json:"total_capacity"`
	AvailableStock int    `json:"available_stock"`
}

type errorBody struct {
	Error string `json:"error"`
}
