package tui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/pdns-tui/pdns-tui/internal/catalog"
	"github.com/pdns-tui/pdns-tui/internal/pdns"
)

var recordColumns = []string{"Name", "Type", "Content", "TTL", "Disabled"}

const recordsHint = " esc back  c create  e edit  d delete  r refresh  / search"

// recordsScreen lists the record sets of one zone on one server.
type recordsScreen struct {
	ui     *App
	client *pdns.Client
	zone   pdns.Zone

	root   *tview.Flex
	search *tview.InputField
	table  *tview.Table
	status *tview.TextView

	catalog catalog.Records
	visible []pdns.Record

	loadSeq int
}

func newRecordsScreen(ui *App, client *pdns.Client, zone pdns.Zone) *recordsScreen {
	s := &recordsScreen{ui: ui, client: client, zone: zone}

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
	s.table.SetBorder(true).
		SetTitle(fmt.Sprintf(" Records: %s (%s) ", zone.Name, zone.Server))
	s.table.SetInputCapture(s.handleKey)

	s.status = tview.NewTextView().SetDynamicColors(true)

	hint := tview.NewTextView().SetText(recordsHint).SetTextColor(tcell.ColorGray)

	s.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.search, 1, 0, false).
		AddItem(s.table, 0, 1, true).
		AddItem(s.status, 1, 0, false).
		AddItem(hint, 1, 0, false)

	s.render()

	return s
}

func (s *recordsScreen) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		s.ui.closeRecords()
		return nil
	}
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch event.Rune() {
	case 'r':
		s.refresh()
	case 'c':
		s.showCreateRecord()
	case 'e':
		if rec, ok := s.selectedRecord(); ok {
			s.showEditRecord(rec)
		}
	case 'd':
		if rec, ok := s.selectedRecord(); ok {
			s.confirmDeleteRecord(rec)
		}
	case '/':
		s.ui.app.SetFocus(s.search)
	default:
		return event
	}

	return nil
}

// leave invalidates any in-flight load so a late result cannot repaint a
// screen the user already left.
func (s *recordsScreen) leave() {
	s.loadSeq++
}

func (s *recordsScreen) refresh() {
	s.loadSeq++
	seq := s.loadSeq
	s.setStatus("loading records for " + s.zone.Name + "...")

	go func() {
		records, err := s.client.ListRecords(s.ui.ctx, s.zone.ID)

		s.ui.app.QueueUpdateDraw(func() {
			if seq != s.loadSeq {
				return
			}
			if err != nil {
				log.Error().Err(err).Str("server", s.zone.Server).Str("zone_name", s.zone.Name).
					Msg("failed to load records")
				s.setError(err)
				return
			}
			s.catalog.Rebuild(s.zone.Name, records)
			s.render()
		})
	}()
}

func (s *recordsScreen) render() {
	s.visible = s.catalog.Filter(s.search.GetText())

	s.table.Clear()
	for col, name := range recordColumns {
		s.table.SetCell(0, col, headerCell(name))
	}

	for i, rec := range s.visible {
		row := i + 1
		s.table.SetCell(row, 0, tview.NewTableCell(rec.DisplayName()))
		s.table.SetCell(row, 1, tview.NewTableCell(rec.Type))
		s.table.SetCell(row, 2, tview.NewTableCell(tview.Escape(formatContents(rec.Contents))).
			SetExpansion(1))
		s.table.SetCell(row, 3, tview.NewTableCell(strconv.FormatUint(uint64(rec.TTL), 10)))
		s.table.SetCell(row, 4, tview.NewTableCell(strconv.FormatBool(rec.Disabled)))
	}

	s.clampSelection()
	s.setStatus(recordCountText(len(s.visible)))
}

func (s *recordsScreen) clampSelection() {
	row, _ := s.table.GetSelection()
	if last := s.table.GetRowCount() - 1; row > last {
		row = last
	}
	if row < 1 {
		row = 1
	}
	s.table.Select(row, 0)
}

func (s *recordsScreen) selectedRecord() (pdns.Record, bool) {
	row, _ := s.table.GetSelection()
	i := row - 1
	if i < 0 || i >= len(s.visible) {
		return pdns.Record{}, false
	}
	return s.visible[i], true
}

func (s *recordsScreen) setStatus(text string) {
	s.status.SetText(text)
}

func (s *recordsScreen) setError(err error) {
	s.status.SetText("[red]" + tview.Escape(err.Error()) + "[-]")
}

func (s *recordsScreen) confirmDeleteRecord(rec pdns.Record) {
	confirm(s.ui, s.table,
		fmt.Sprintf("Delete record %s %s in %s?", rec.DisplayName(), rec.Type, s.zone.Name),
		"Delete",
		func() { s.deleteRecord(rec) })
}

func (s *recordsScreen) deleteRecord(rec pdns.Record) {
	s.setStatus("deleting record " + rec.DisplayName() + "...")

	go func() {
		err := s.client.DeleteRecord(s.ui.ctx, s.zone.ID, rec.Name, rec.Type)

		s.ui.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Error().Err(err).Str("server", s.zone.Server).Str("zone_name", s.zone.Name).
					Str("record_name", rec.Name).Str("record_type", rec.Type).
					Msg("failed to delete record")
				s.setError(err)
				return
			}

			log.Info().Str("server", s.zone.Server).Str("zone_name", s.zone.Name).
				Str("record_name", rec.Name).Str("record_type", rec.Type).Msg("record deleted")
			s.catalog.Remove(rec.Name, rec.Type)
			s.render()
			s.setStatus("deleted record " + rec.DisplayName() + " " + rec.Type)
		})
	}()
}

// upsertRecord runs the remote replace and folds the result into the
// catalog once it is confirmed.
func (s *recordsScreen) upsertRecord(spec pdns.RecordSpec) {
	s.setStatus("saving record " + spec.Name + "...")

	go func() {
		rec, err := s.client.UpsertRecord(s.ui.ctx, s.zone.ID, spec)

		s.ui.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Error().Err(err).Str("server", s.zone.Server).Str("zone_name", s.zone.Name).
					Str("record_name", spec.Name).Str("record_type", spec.Type).
					Msg("failed to save record")
				s.setError(err)
				return
			}

			log.Info().Str("server", s.zone.Server).Str("zone_name", s.zone.Name).
				Str("record_name", rec.Name).Str("record_type", rec.Type).Msg("record saved")
			s.catalog.Upsert(rec)
			s.render()
			s.setStatus("saved record " + rec.DisplayName() + " " + rec.Type)
		})
	}()
}
