package ui

import (
	"strings"
	"testing"
)

func TestEnsureCursorInViewportScrollsUp(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m.viewport.Height = 10 // margin is one row
	m.viewport.SetContent(strings.Repeat("x\n", 100))
	m.viewport.SetYOffset(20)

	m.ensureCursorInViewport(20)
	if m.viewport.YOffset != 18 {
		t.Fatalf("expected YOffset 18, got %d", m.viewport.YOffset)
	}
}

func TestEnsureCursorInViewportScrollsDown(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m.viewport.Height = 10
	m.viewport.SetContent(strings.Repeat("x\n", 100))
	m.viewport.SetYOffset(0)

	// row at lines 10-11 plus a one-row margin must fit in 0..9
	m.ensureCursorInViewport(10)
	if m.viewport.YOffset != 4 {
		t.Fatalf("expected YOffset 4, got %d", m.viewport.YOffset)
	}
}

func TestEnsureCursorInViewportSmallHeightHasNoMargin(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m.viewport.Height = 5
	m.viewport.SetContent(strings.Repeat("x\n", 100))
	m.viewport.SetYOffset(0)

	m.ensureCursorInViewport(4)
	if m.viewport.YOffset != 1 {
		t.Fatalf("expected YOffset 1, got %d", m.viewport.YOffset)
	}
}
