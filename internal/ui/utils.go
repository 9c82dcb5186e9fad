package ui

import (
	"fmt"
	"strings"

	"ticket-tix/internal/catalog"
)

// ------ utils -------

// primaryImageIndex returns the index of the cover image: the one flagged
// primary, else the lowest display order, else 0.
func primaryImageIndex(ev *catalog.EventDetail) int {
	if ev == nil || len(ev.Images) == 0 {
		return 0
	}
	best := 0
	for i, img := range ev.Images {
		if img.IsPrimary {
			return i
		}
		if img.DisplayOrder < ev.Images[best].DisplayOrder {
			best = i
		}
	}
	return best
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// indexOfCategory finds a category by its primary id.
func indexOfCategory(cats []catalog.Category, id int64) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func indexOfImage(imgs []catalog.Image, id int64) int {
	for i, img := range imgs {
		if img.ID == id {
			return i
		}
	}
	return -1
}

// plural renders "1 event" / "3 events".
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
