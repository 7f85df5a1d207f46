package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/pdns-tui/pdns-tui/internal/catalog"
	"github.com/pdns-tui/pdns-tui/internal/pdns"
)

var zoneColumns = []string{"Server", "Host", "Zone", "Kind", "Serial", "Records", "Notified"}

const zonesHint = " q quit  enter records  c create  d delete  r refresh  / search"

// zonesScreen lists the zones of every configured server in one table.
type zonesScreen struct {
	ui *App

	root   *tview.Flex
	search *tview.InputField
	table  *tview.Table
	status *tview.TextView

	catalog catalog.Zones
	visible []pdns.Zone

	// loadSeq tags the in-flight load; results carrying an older tag are
	// dropped when they arrive.
	loadSeq int
}

func newZonesScreen(ui *App) *zonesScreen {
	s := &zonesScreen{ui: ui}

	s.search = tview.NewInputField().
		SetLabel(" / ").
		SetFieldWidth(0)
	s.search.SetChangedFunc(func(string) { s.render() })
	s.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			s.search.SetText("")
		}
		s.ui.app.SetFocus(s.table)
	})

	s.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	s.table.SetBorder(true).SetTitle(" Zones ")
	s.table.SetSelectedFunc(func(row, _ int) {
		if zone, ok := s.zoneAt(row); ok {
			s.ui.openRecords(zone)
		}
	})
	s.table.SetInputCapture(s.handleKey)

	s.status = tview.NewTextView().SetDynamicColors(true)

	hint := tview.NewTextView().SetText(zonesHint).SetTextColor(tcell.ColorGray)

	s.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.search, 1, 0, false).
		AddItem(s.table, 0, 1, true).
		AddItem(s.status, 1, 0, false).
		AddItem(hint, 1, 0, false)

	s.render()

	return s
}

func (s *zonesScreen) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch event.Rune() {
	case 'q':
		s.ui.app.Stop()
	case 'r':
		s.refresh()
	case 'c':
		s.showCreateZone()
	case 'd':
		if zone, ok := s.selectedZone(); ok {
			s.confirmDeleteZone(zone)
		}
	case '/':
		s.ui.app.SetFocus(s.search)
	default:
		return event
	}

	return nil
}

// refresh reloads every server in the background and replaces the catalog
// when the results arrive.
func (s *zonesScreen) refresh() {
	s.loadSeq++
	seq := s.loadSeq
	s.setStatus(fmt.Sprintf("loading zones from %d servers...", s.ui.registry.Len()))

	go func() {
		listings := s.ui.registry.ListAllZones(s.ui.ctx)

		s.ui.app.QueueUpdateDraw(func() {
			if seq != s.loadSeq {
				return
			}
			s.catalog.Rebuild(listings)
			s.render()
		})
	}()
}

// render rebuilds the table from the catalog and the current search query.
func (s *zonesScreen) render() {
	s.visible = s.catalog.Filter(s.search.GetText())

	s.table.Clear()
	for col, name := range zoneColumns {
		s.table.SetCell(0, col, headerCell(name))
	}

	for i, zone := range s.visible {
		row := i + 1
		s.table.SetCell(row, 0, tview.NewTableCell(zone.Server))
		s.table.SetCell(row, 1, tview.NewTableCell(zone.Host))
		s.table.SetCell(row, 2, tview.NewTableCell(zone.Name).SetExpansion(1))
		s.table.SetCell(row, 3, tview.NewTableCell(zone.Kind))
		s.table.SetCell(row, 4, tview.NewTableCell(formatSerial(zone.Serial)))
		s.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("%d", zone.RecordCount)))
		s.table.SetCell(row, 6, tview.NewTableCell(formatSerial(zone.NotifiedSerial)))
	}

	for i, se := range s.catalog.Errors() {
		row := len(s.visible) + 1 + i
		s.table.SetCell(row, 0, tview.NewTableCell(se.Server).SetTextColor(tcell.ColorRed))
		s.table.SetCell(row, 1, tview.NewTableCell("-"))
		s.table.SetCell(row, 2, tview.NewTableCell(tview.Escape(se.Err.Error())).
			SetTextColor(tcell.ColorRed).
			SetExpansion(1))
	}

	s.clampSelection()
	s.setStatus(zoneCountText(len(s.visible), s.catalog.Errors()))
}

func (s *zonesScreen) clampSelection() {
	row, _ := s.table.GetSelection()
	if last := s.table.GetRowCount() - 1; row > last {
		row = last
	}
	if row < 1 {
		row = 1
	}
	s.table.Select(row, 0)
}

// zoneAt maps a table row back to its zone. Header and server-error rows
// carry no zone.
func (s *zonesScreen) zoneAt(row int) (pdns.Zone, bool) {
	i := row - 1
	if i < 0 || i >= len(s.visible) {
		return pdns.Zone{}, false
	}
	return s.visible[i], true
}

func (s *zonesScreen) selectedZone() (pdns.Zone, bool) {
	row, _ := s.table.GetSelection()
	return s.zoneAt(row)
}

func (s *zonesScreen) setStatus(text string) {
	s.status.SetText(text)
}

func (s *zonesScreen) setError(err error) {
	s.status.SetText("[red]" + tview.Escape(err.Error()) + "[-]")
}

func (s *zonesScreen) confirmDeleteZone(zone pdns.Zone) {
	confirm(s.ui, s.table,
		fmt.Sprintf("Delete zone %s on %s?", zone.Name, zone.Server),
		"Delete",
		func() { s.deleteZone(zone) })
}

func (s *zonesScreen) deleteZone(zone pdns.Zone) {
	client, err := s.ui.registry.ClientFor(zone.Server)
	if err != nil {
		s.setError(err)
		return
	}

	s.setStatus("deleting zone " + zone.Name + "...")

	go func() {
		err := client.DeleteZone(s.ui.ctx, zone.ID)

		s.ui.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Error().Err(err).Str("server", zone.Server).Str("zone_name", zone.Name).
					Msg("failed to delete zone")
				s.setError(err)
				return
			}

			log.Info().Str("server", zone.Server).Str("zone_name", zone.Name).Msg("zone deleted")
			s.catalog.Remove(zone.Server, zone.Name)
			s.render()
			s.setStatus("deleted zone " + zone.Name)
		})
	}()
}

func (s *zonesScreen) createZone(server string, spec pdns.ZoneSpec) {
	client, err := s.ui.registry.ClientFor(server)
	if err != nil {
		s.setError(err)
		return
	}

	s.setStatus("creating zone " + spec.Name + "...")

	go func() {
		zone, err := client.CreateZone(s.ui.ctx, spec)

		s.ui.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Error().Err(err).Str("server", server).Str("zone_name", spec.Name).
					Msg("failed to create zone")
				s.setError(err)
				return
			}

			log.Info().Str("server", server).Str("zone_name", zone.Name).Msg("zone created")
			s.catalog.Add(zone)
			s.render()
			s.setStatus("created zone " + zone.Name + " on " + server)
		})
	}()
}

func headerCell(name string) *tview.TableCell {
	return tview.NewTableCell(name).
		SetTextColor(tcell.ColorYellow).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false)
}
