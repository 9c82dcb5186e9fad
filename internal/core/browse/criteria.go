package browse

import (
	"fmt"
	"strings"
	"time"

	"ticket-tix/internal/catalog"
)

// DateLayout is how dates are typed in the search bar and on the command line.
const DateLayout = "2006-01-02"

// Criteria is an immutable filter snapshot. Empty fields mean no constraint.
// Dates are ISO-8601 timestamps.
type Criteria struct {
	EventName string
	Location  string
	StartDate string
	EndDate   string
}

// IsZero reports whether no filter is set.
func (c Criteria) IsZero() bool { return c == Criteria{} }

// Query builds the catalog query for the given cursor and page size.
func (c Criteria) Query(cursor string, limit int) catalog.BrowseQuery {
	return catalog.BrowseQuery{
		EventName: c.EventName,
		Location:  c.Location,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Cursor:    cursor,
		Limit:     limit,
	}
}

func (c Criteria) String() string {
	if c.IsZero() {
		return "{}"
	}
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("event_name", c.EventName)
	add("location", c.Location)
	add("start_date", c.StartDate)
	add("end_date", c.EndDate)
	return "{" + strings.Join(parts, " ") + "}"
}

// Tags renders the active filters for display.
func (c Criteria) Tags() []string {
	var tags []string
	if c.EventName != "" {
		tags = append(tags, fmt.Sprintf("%q", c.EventName))
	}
	if c.Location != "" {
		tags = append(tags, c.Location)
	}
	if c.StartDate != "" {
		tags = append(tags, "From "+dayOf(c.StartDate))
	}
	if c.EndDate != "" {
		tags = append(tags, "To "+dayOf(c.EndDate))
	}
	return tags
}

func dayOf(iso string) string {
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.UTC().Format(DateLayout)
	}
	return iso
}

// Input is the raw text of the search fields.
type Input struct {
	EventName string
	Location  string
	From      string
	To        string
}

// Field names used as keys of Input.Criteria errors.
const (
	FieldFrom = "from"
	FieldTo   = "to"
)

// Criteria trims the text fields and converts the dates to ISO-8601 at
// midnight UTC. Unparseable dates are reported per field and the criteria must
// not be submitted. Date order is left to the server.
func (in Input) Criteria() (Criteria, map[string]string) {
	errs := map[string]string{}
	cr := Criteria{
		EventName: strings.TrimSpace(in.EventName),
		Location:  strings.TrimSpace(in.Location),
	}
	var err error
	if cr.StartDate, err = DateToISO(in.From); err != nil {
		errs[FieldFrom] = "Use YYYY-MM-DD"
	}
	if cr.EndDate, err = DateToISO(in.To); err != nil {
		errs[FieldTo] = "Use YYYY-MM-DD"
	}
	if len(errs) > 0 {
		return Criteria{}, errs
	}
	return cr, nil
}

// DateToISO converts a YYYY-MM-DD date to an RFC 3339 timestamp at 00:00 UTC.
// Blank input yields "".
func DateToISO(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC().Format(time.RFC3339), nil
}
