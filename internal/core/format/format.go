// Package format renders dates, times, prices and availability for display.
package format

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ticket-tix/internal/catalog"
)

var idr = message.NewPrinter(language.Indonesian)

// Date renders "2 Nov 2026" in local time. Zero times render as "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2 Jan 2006")
}

// Time renders the 24h clock, e.g. "19:00".
func Time(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("15:04")
}

// DateTime renders "2 Nov 2026 · 19:00".
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return Date(t) + " · " + Time(t)
}

// Badge is the short day/month label of an event card, e.g. "2 NOV".
func Badge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2 ") + strings.ToUpper(t.Local().Format("Jan"))
}

// Currency renders an IDR amount without decimals, e.g. "Rp 250.000".
func Currency(a catalog.Amount) string {
	return CurrencyValue(a.Float())
}

// CurrencyValue renders v as rupiah.
func CurrencyValue(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return "-Rp " + idr.Sprintf("%d", -n)
	}
	return "Rp " + idr.Sprintf("%d", n)
}

// Level is the availability band of a category.
type Level int

const (
	LevelLow    Level = iota // 20% or less
	LevelMedium              // above 20%
	LevelHigh                // above 50%
)

// Availability is the remaining share of a category.
type Availability struct {
	Available int
	Total     int
	Percent   float64
}

// AvailabilityOf computes the remaining share of c. A zero total counts as 0%.
func AvailabilityOf(c catalog.Category) Availability {
	a := Availability{Available: c.Available(), Total: c.TotalCapacity}
	if a.Total > 0 {
		a.Percent = float64(a.Available) / float64(a.Total) * 100
	}
	return a
}

// Level returns the colour band.
func (a Availability) Level() Level {
	switch {
	case a.Percent > 50:
		return LevelHigh
	case a.Percent > 20:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Bar draws a fixed-width bar filled proportionally, clamped to [0, width].
func (a Availability) Bar(width int) (filled, empty string) {
	if width <= 0 {
		return "", ""
	}
	n := int(math.Round(a.Percent / 100 * float64(width)))
	n = min(max(n, 0), width)
	return strings.Repeat("█", n), strings.Repeat("░", width-n)
}
