package ui

// ensureCursorInViewport scrolls the viewport so the list row starting at
// cursorLine is fully visible, keeping a margin of one row when possible.
func (m *Model) ensureCursorInViewport(cursorLine int) {
	top := m.viewport.YOffset
	height := m.viewport.Height
	if height <= 0 {
		return
	}

	margin := rowHeight
	if height < 4*rowHeight {
		margin = 0
	}

	// cursor row plus its margin must fit below top
	if cursorLine < top+margin {
		m.viewport.SetYOffset(max(0, cursorLine-margin))
		return
	}
	last := cursorLine + rowHeight - 1
	if last > top+height-1-margin {
		m.viewport.SetYOffset(max(0, last-height+1+margin))
	}
}
