package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/core/browse"
)

// toastTTL is how long a toast stays on screen.
const toastTTL = 3500 * time.Millisecond

// ---------- Messages / Cmds ----------

// browseResultMsg carries one fetched page back to the controller.
type browseResultMsg struct {
	res browse.Result
}

type detailMsg struct {
	seq   uint64
	id    int64
	event *catalog.EventDetail
	err   error
}

type eventCreatedMsg struct {
	event *catalog.EventDetail
	err   error
}

type categoryAddedMsg struct {
	eventID  int64
	category *catalog.Category
	err      error
}

type categoryRemovedMsg struct {
	eventID    int64
	categoryID int64
	err        error
}

type imagesUploadedMsg struct {
	eventID int64
	count   int
	err     error
}

type imageDeletedMsg struct {
	eventID int64
	imageID int64
	err     error
}

// adminDetailMsg refreshes the admin tabs from the server.
type adminDetailMsg struct {
	event       *catalog.EventDetail
	afterUpload bool
	err         error
}

type toastExpireMsg struct {
	id int
}

func (m Model) fetchPageCmd(req browse.Request) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return browseResultMsg{res: browse.Fetch(req.Context(), api, req)}
	}
}

func (m Model) fetchDetailCmd(seq uint64, id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ev, err := api.Detail(context.Background(), id)
		return detailMsg{seq: seq, id: id, event: ev, err: err}
	}
}

func (m Model) createEventCmd(ev catalog.NewEvent, paths []string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx := context.Background()
		files, err := catalog.LoadFiles(ctx, paths)
		if err != nil {
			return eventCreatedMsg{err: err}
		}
		ev.Images = files
		created, err := api.CreateEvent(ctx, ev)
		if err == nil && created == nil {
			err = errors.New("server returned no event")
		}
		return eventCreatedMsg{event: created, err: err}
	}
}

func (m Model) addCategoryCmd(eventID int64, nc catalog.NewCategory) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		cat, err := api.CreateCategory(context.Background(), eventID, nc)
		return categoryAddedMsg{eventID: eventID, category: cat, err: err}
	}
}

func (m Model) removeCategoryCmd(eventID, categoryID int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		err := api.DeleteCategory(context.Background(), eventID, categoryID)
		return categoryRemovedMsg{eventID: eventID, categoryID: categoryID, err: err}
	}
}

func (m Model) uploadImagesCmd(eventID int64, paths []string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx := context.Background()
		files, err := catalog.LoadFiles(ctx, paths)
		if err != nil {
			return imagesUploadedMsg{eventID: eventID, err: err}
		}
		err = api.UploadImages(ctx, eventID, files)
		return imagesUploadedMsg{eventID: eventID, count: len(files), err: err}
	}
}

func (m Model) deleteImageCmd(eventID, imageID int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		err := api.DeleteImage(context.Background(), eventID, imageID)
		return imageDeletedMsg{eventID: eventID, imageID: imageID, err: err}
	}
}

func (m Model) refreshAdminCmd(eventID int64, afterUpload bool) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ev, err := api.Detail(context.Background(), eventID)
		return adminDetailMsg{event: ev, afterUpload: afterUpload, err: err}
	}
}

func expireToastCmd(id int) tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpireMsg{id: id} })
}
