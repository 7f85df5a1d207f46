// Package tui implements the terminal interface: a zones screen that
// aggregates every configured server, a per-zone records screen, and modal
// forms for the mutating operations. All network calls run off the event
// loop and re-enter it through QueueUpdateDraw.
package tui

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rivo/tview"

	"github.com/pdns-tui/pdns-tui/internal/pdns"
)

const (
	pageZones   = "zones"
	pageRecords = "records"
	pageModal   = "modal"
)

// App owns the tview application and the page stack.
type App struct {
	app      *tview.Application
	pages    *tview.Pages
	registry *pdns.Registry
	ctx      context.Context

	zones   *zonesScreen
	records *recordsScreen
}

// New builds the interface for the given registry. The context bounds every
// network call issued by the screens.
func New(ctx context.Context, registry *pdns.Registry) *App {
	a := &App{
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		registry: registry,
		ctx:      ctx,
	}

	a.zones = newZonesScreen(a)
	a.pages.AddPage(pageZones, a.zones.root, true, true)

	return a
}

// Run starts the event loop and blocks until the user quits.
func (a *App) Run() error {
	a.zones.refresh()

	if err := a.app.SetRoot(a.pages, true).EnableMouse(true).Run(); err != nil {
		return errors.Wrap(err, "terminal ui failed")
	}

	return nil
}

// openRecords pushes the records screen for one zone.
func (a *App) openRecords(zone pdns.Zone) {
	client, err := a.registry.ClientFor(zone.Server)
	if err != nil {
		a.zones.setError(err)
		return
	}

	a.records = newRecordsScreen(a, client, zone)
	a.pages.AddPage(pageRecords, a.records.root, true, true)
	a.app.SetFocus(a.records.table)
	a.records.refresh()
}

// closeRecords pops back to the zones screen and reloads it, so zone
// serials and record counts reflect any edits made on the records screen.
func (a *App) closeRecords() {
	if a.records != nil {
		a.records.leave()
		a.records = nil
	}

	a.pages.RemovePage(pageRecords)
	a.app.SetFocus(a.zones.table)
	a.zones.refresh()
}

// showModal centers p on top of the current page.
func (a *App) showModal(p tview.Primitive, width, height int) {
	a.pages.AddPage(pageModal, center(p, width, height), true, true)
}

// closeModal removes the modal page and restores focus.
func (a *App) closeModal(focus tview.Primitive) {
	a.pages.RemovePage(pageModal)
	a.app.SetFocus(focus)
}

// center wraps p in a flex so it floats at the given size.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
