package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ticket-tix/internal/catalog"
)

// DateTimeLayout is how event start and end times are typed, in local time.
const DateTimeLayout = "2006-01-02 15:04"

// Event form fields.
const (
	EventName        = "name"
	EventLocation    = "location"
	EventDescription = "description"
	EventStart       = "start_time"
	EventEnd         = "end_time"
	EventImages      = "images"
)

// Category form fields.
const (
	CategoryName     = "name"
	CategoryType     = "category_type"
	CategoryPrice    = "price"
	CategoryBookType = "book_type"
	CategoryCapacity = "total_capacity"
)

// Required rejects blank values.
func Required(msg string) Rule {
	return func(v string, _ Values) string {
		if strings.TrimSpace(v) == "" {
			return msg
		}
		return ""
	}
}

// DateTime rejects values that do not parse with DateTimeLayout.
func DateTime(v string, _ Values) string {
	if _, err := parseLocal(v); err != nil {
		return "Use YYYY-MM-DD HH:MM"
	}
	return ""
}

// After requires the value to be later than the time in field other.
func After(other, msg string) Rule {
	return func(v string, all Values) string {
		end, err := parseLocal(v)
		if err != nil {
			return ""
		}
		start, err := parseLocal(all[other])
		if err != nil {
			return ""
		}
		if !end.After(start) {
			return msg
		}
		return ""
	}
}

// PositiveNumber requires a number greater than zero.
func PositiveNumber(msg string) Rule {
	return func(v string, _ Values) string {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || f <= 0 {
			return msg
		}
		return ""
	}
}

// PositiveInt requires a whole number greater than zero.
func PositiveInt(msg string) Rule {
	return func(v string, _ Values) string {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return msg
		}
		return ""
	}
}

// OneOf requires one of the allowed values.
func OneOf(msg string, allowed ...string) Rule {
	return func(v string, _ Values) string {
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return msg
	}
}

// EventRules validates the create-event form.
func EventRules() Rules {
	return Rules{
		EventName:     Required("Name is required"),
		EventLocation: Required("Location is required"),
		EventStart:    All(Required("Start time is required"), DateTime),
		EventEnd:      All(Required("End time is required"), DateTime, After(EventStart, "End must be after start")),
	}
}

// CategoryRules validates the add-category form.
func CategoryRules() Rules {
	return Rules{
		CategoryName:     Required("Name is required"),
		CategoryType:     OneOf("Pick STANDING or SEATED", catalog.CategoryStanding, catalog.CategorySeated),
		CategoryPrice:    All(Required("Price is required"), PositiveNumber("Price must be greater than 0")),
		CategoryBookType: OneOf("Pick FIXED or FLEXIBLE", catalog.BookFixed, catalog.BookFlexible),
		CategoryCapacity: All(Required("Capacity is required"), PositiveInt("Capacity must be a whole number greater than 0")),
	}
}

// EventDefaults are the initial values of the create-event form.
func EventDefaults() Values {
	return Values{EventName: "", EventLocation: "", EventDescription: "", EventStart: "", EventEnd: "", EventImages: ""}
}

// CategoryDefaults are the initial values of the add-category form.
func CategoryDefaults() Values {
	return Values{
		CategoryName:     "",
		CategoryType:     catalog.CategoryStanding,
		CategoryPrice:    "",
		CategoryBookType: catalog.BookFixed,
		CategoryCapacity: "",
	}
}

// ImagePaths splits the comma separated image list, dropping blanks.
func ImagePaths(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewEvent builds the request payload from validated values. Images are
// attached by the caller.
func NewEvent(v Values) (catalog.NewEvent, error) {
	start, err := parseLocal(v[EventStart])
	if err != nil {
		return catalog.NewEvent{}, fmt.Errorf("start time: %w", err)
	}
	end, err := parseLocal(v[EventEnd])
	if err != nil {
		return catalog.NewEvent{}, fmt.Errorf("end time: %w", err)
	}
	if !end.After(start) {
		return catalog.NewEvent{}, errors.New("end must be after start")
	}
	return catalog.NewEvent{
		Name:        strings.TrimSpace(v[EventName]),
		Description: strings.TrimSpace(v[EventDescription]),
		Location:    strings.TrimSpace(v[EventLocation]),
		StartTime:   start,
		EndTime:     end,
	}, nil
}

// NewCategory builds the request payload from validated values. The
// available stock starts at the total capacity.
func NewCategory(v Values) (catalog.NewCategory, error) {
	capacity, err := strconv.Atoi(strings.TrimSpace(v[CategoryCapacity]))
	if err != nil {
		return catalog.NewCategory{}, fmt.Errorf("capacity: %w", err)
	}
	price := strings.TrimSpace(v[CategoryPrice])
	if _, err := strconv.ParseFloat(price, 64); err != nil {
		return catalog.NewCategory{}, fmt.Errorf("price: %w", err)
	}
	return catalog.NewCategory{
		Name:           strings.TrimSpace(v[CategoryName]),
		CategoryType:   v[CategoryType],
		Price:          price,
		BookType:       v[CategoryBookType],
		TotalCapacity:  capacity,
		AvailableStock: capacity,
	}, nil
}

func parseLocal(v string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(v), time.Local)
}
