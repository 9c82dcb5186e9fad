package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ticket-tix/internal/infra/logx"
)

// maxToasts bounds the stack; the oldest toast is dropped first.
const maxToasts = 4

// showToast pushes a toast and schedules its expiry. IDs come from the
// model's own counter.
func (m Model) showToast(text string, kind toastKind) (Model, tea.Cmd) {
	m.nextToastID++
	id := m.nextToastID
	m.toasts = append(m.toasts, toast{id: id, text: text, kind: kind})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	if kind == toastError {
		logx.Warnf("ui: %s", text)
	}
	return m, expireToastCmd(id)
}

func (m Model) success(text string) (Model, tea.Cmd) { return m.showToast(text, toastSuccess) }

func (m Model) failure(err error) (Model, tea.Cmd) { return m.showToast(err.Error(), toastError) }

// dismissToast removes the toast with the given id, if still shown.
func (m Model) dismissToast(id int) Model {
	out := m.toasts[:0:0]
	for _, t := range m.toasts {
		if t.id != id {
			out = append(out, t)
		}
	}
	m.toasts = out
	return m
}

func (m Model) clearToasts() Model {
	m.toasts = nil
	return m
}
