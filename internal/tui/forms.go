package tui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rivo/tview"

	"github.com/pdns-tui/pdns-tui/internal/pdns"
)

// RecordTypeOption is one record type offered by the create form. The
// Forward and Reverse flags state which zone flavor the type applies to.
type RecordTypeOption struct {
	Type        string
	Description string
	Forward     bool
	Reverse     bool
}

var recordTypeOptions = []RecordTypeOption{
	{Type: "A", Description: "IPv4 address", Forward: true},
	{Type: "AAAA", Description: "IPv6 address", Forward: true},
	{Type: "CNAME", Description: "Alias to another name", Forward: true, Reverse: true},
	{Type: "MX", Description: "Mail exchange, content is \"priority host\"", Forward: true},
	{Type: "TXT", Description: "Text record, quoting is added when missing", Forward: true, Reverse: true},
	{Type: "NS", Description: "Delegation name server", Forward: true, Reverse: true},
	{Type: "SRV", Description: "Service locator, content is \"priority weight port target\"", Forward: true},
	{Type: "PTR", Description: "Reverse pointer, content is the target name", Forward: true, Reverse: true},
}

var zoneKinds = []string{pdns.ZoneKindNative, pdns.ZoneKindMaster, pdns.ZoneKindSlave}

// recordTypeOptionsFor returns the record types that apply to the zone
// flavor, in their listed order.
func recordTypeOptionsFor(reverse bool) []RecordTypeOption {
	var opts []RecordTypeOption
	for _, opt := range recordTypeOptions {
		if opt.Forward && !reverse || opt.Reverse && reverse {
			opts = append(opts, opt)
		}
	}
	return opts
}

func recordTypeNames(opts []RecordTypeOption) []string {
	names := make([]string, len(opts))
	for i, opt := range opts {
		names[i] = opt.Type
	}
	return names
}

// recordSpecFromForm validates the raw form input and builds the spec for
// the client call. An empty name addresses the zone apex.
func recordSpecFromForm(name, rtype, content, ttlText string, disabled bool) (pdns.RecordSpec, error) {
	spec := pdns.RecordSpec{
		Name:     strings.TrimSpace(name),
		Type:     rtype,
		Contents: splitContents(content),
		Disabled: disabled,
	}

	if len(spec.Contents) == 0 {
		return pdns.RecordSpec{}, errors.New("record content must not be empty")
	}

	ttlText = strings.TrimSpace(ttlText)
	if ttlText == "" {
		spec.TTL = pdns.DefaultRecordTTL
		return spec, nil
	}

	ttl, err := strconv.ParseUint(ttlText, 10, 32)
	if err != nil || ttl == 0 {
		return pdns.RecordSpec{}, errors.New("ttl must be a positive number")
	}
	spec.TTL = uint32(ttl)

	return spec, nil
}

// splitList turns a comma separated input into its non-empty entries.
func splitList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func newFormError() *tview.TextView {
	return tview.NewTextView().SetDynamicColors(true)
}

func setFormError(line *tview.TextView, text string) {
	line.SetText("[red]" + tview.Escape(text) + "[-]")
}

// formModal frames a form with a title border and a message line at the
// bottom for validation errors.
func formModal(title string, form *tview.Form, lines ...*tview.TextView) tview.Primitive {
	wrap := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true)
	for _, line := range lines {
		wrap.AddItem(line, 1, 0, false)
	}
	wrap.SetBorder(true).SetTitle(title)
	return wrap
}

// confirm shows a yes/no dialog and runs onConfirm only on the affirmative
// button.
func confirm(ui *App, focus tview.Primitive, text, action string, onConfirm func()) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{action, "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			ui.closeModal(focus)
			if label == action {
				onConfirm()
			}
		})

	ui.pages.AddPage(pageModal, modal, true, true)
}

func (s *zonesScreen) showCreateZone() {
	servers := s.ui.registry.Names()
	if len(servers) == 0 {
		return
	}

	server := servers[0]
	kind := pdns.ZoneKindNative

	name := tview.NewInputField().SetLabel("Name").SetFieldWidth(0).
		SetPlaceholder("example.com")
	nameservers := tview.NewInputField().SetLabel("Nameservers").SetFieldWidth(0).
		SetPlaceholder("comma separated, optional")
	masters := tview.NewInputField().SetLabel("Masters").SetFieldWidth(0).
		SetPlaceholder("comma separated, Slave zones only")

	form := tview.NewForm()
	if len(servers) > 1 {
		form.AddDropDown("Server", servers, 0, func(option string, _ int) { server = option })
	}
	form.AddFormItem(name)
	form.AddDropDown("Kind", zoneKinds, 0, func(option string, _ int) { kind = option })
	form.AddFormItem(nameservers)
	form.AddFormItem(masters)

	errLine := newFormError()

	form.AddButton("Create", func() {
		spec := pdns.ZoneSpec{
			Name:        strings.TrimSpace(name.GetText()),
			Kind:        kind,
			Nameservers: splitList(nameservers.GetText()),
			Masters:     splitList(masters.GetText()),
		}
		if spec.Name == "" {
			setFormError(errLine, "zone name must not be empty")
			return
		}

		s.ui.closeModal(s.table)
		s.createZone(server, spec)
	})
	form.AddButton("Cancel", func() { s.ui.closeModal(s.table) })
	form.SetCancelFunc(func() { s.ui.closeModal(s.table) })

	s.ui.showModal(formModal(" Create Zone ", form, errLine), 64, 17)
}

func (s *recordsScreen) showCreateRecord() {
	opts := recordTypeOptionsFor(pdns.IsReverse(s.zone.Name))
	typ := opts[0]

	name := tview.NewInputField().SetLabel("Name").SetFieldWidth(0).
		SetPlaceholder("relative to the zone, @ or empty for the apex")
	content := tview.NewTextArea().SetLabel("Content").
		SetPlaceholder("one value per line")
	content.SetSize(3, 0)
	ttl := tview.NewInputField().SetLabel("TTL").SetFieldWidth(8).
		SetText(strconv.FormatUint(uint64(pdns.DefaultRecordTTL), 10)).
		SetAcceptanceFunc(tview.InputFieldInteger)
	disabled := tview.NewCheckbox().SetLabel("Disabled")

	help := tview.NewTextView().SetTextColor(tcell.ColorGray).
		SetText(" " + typ.Description)

	form := tview.NewForm()
	form.AddFormItem(name)
	form.AddDropDown("Type", recordTypeNames(opts), 0, func(_ string, index int) {
		typ = opts[index]
		help.SetText(" " + typ.Description)
	})
	form.AddFormItem(content)
	form.AddFormItem(ttl)
	form.AddFormItem(disabled)

	errLine := newFormError()

	form.AddButton("Create", func() {
		spec, err := recordSpecFromForm(
			name.GetText(), typ.Type, content.GetText(), ttl.GetText(), disabled.IsChecked())
		if err != nil {
			setFormError(errLine, err.Error())
			return
		}

		s.ui.closeModal(s.table)
		s.upsertRecord(spec)
	})
	form.AddButton("Cancel", func() { s.ui.closeModal(s.table) })
	form.SetCancelFunc(func() { s.ui.closeModal(s.table) })

	s.ui.showModal(formModal(" Create Record: "+s.zone.Name+" ", form, help, errLine), 64, 19)
}

func (s *recordsScreen) showEditRecord(rec pdns.Record) {
	content := tview.NewTextArea().SetLabel("Content").
		SetText(strings.Join(rec.Contents, "\n"), false)
	content.SetSize(3, 0)
	ttl := tview.NewInputField().SetLabel("TTL").SetFieldWidth(8).
		SetText(strconv.FormatUint(uint64(rec.TTL), 10)).
		SetAcceptanceFunc(tview.InputFieldInteger)
	disabled := tview.NewCheckbox().SetLabel("Disabled").SetChecked(rec.Disabled)

	form := tview.NewForm()
	form.AddFormItem(content)
	form.AddFormItem(ttl)
	form.AddFormItem(disabled)

	errLine := newFormError()

	form.AddButton("Save", func() {
		spec, err := recordSpecFromForm(
			rec.Name, rec.Type, content.GetText(), ttl.GetText(), disabled.IsChecked())
		if err != nil {
			setFormError(errLine, err.Error())
			return
		}

		s.ui.closeModal(s.table)
		s.upsertRecord(spec)
	})
	form.AddButton("Cancel", func() { s.ui.closeModal(s.table) })
	form.SetCancelFunc(func() { s.ui.closeModal(s.table) })

	title := " Edit " + rec.DisplayName() + " " + rec.Type + " "
	s.ui.showModal(formModal(title, form, errLine), 64, 14)
}
