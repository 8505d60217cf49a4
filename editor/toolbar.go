package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/surface"
)

type toolbarItem struct {
	label  string
	cmd    surface.Command
	picker PickerKind
	dialog dialogKind
}

type dialogKind int

const (
	noDialog dialogKind = iota
	linkDialogKind
	imageDialogKind
)

var toolbarItems = []toolbarItem{
	{label: "B", cmd: surface.Bold},
	{label: "I", cmd: surface.Italic},
	{label: "U", cmd: surface.Underline},
	{label: "S", cmd: surface.StrikeThrough},
	{label: "x₂", cmd: surface.Subscript},
	{label: "x²", cmd: surface.Superscript},
	{label: "Tx", cmd: surface.RemoveFormat},
	{label: "L", cmd: surface.JustifyLeft},
	{label: "C", cmd: surface.JustifyCenter},
	{label: "R", cmd: surface.JustifyRight},
	{label: "J", cmd: surface.JustifyFull},
	{label: "1.", cmd: surface.InsertOrderedList},
	{label: "•", cmd: surface.InsertUnorderedList},
	{label: "»", cmd: surface.Indent},
	{label: "«", cmd: surface.Outdent},
	{label: "P", cmd: surface.FormatParagraph},
	{label: "Q", cmd: surface.FormatBlockquote},
	{label: "{}", cmd: surface.FormatCodeBlock},
	{label: "Font", picker: PickFont},
	{label: "Size", picker: PickSize},
	{label: "Fg", picker: PickColor},
	{label: "Bg", picker: PickBackground},
	{label: "Link", dialog: linkDialogKind},
	{label: "Image", dialog: imageDialogKind},
	{label: "Undo", cmd: surface.Undo},
	{label: "Redo", cmd: surface.Redo},
}

// activate performs a toolbar item: a command goes straight to the
// executor, the rest open their overlay.
func (m Model) activate(it toolbarItem) Model {
	switch {
	case it.cmd != "":
		return m.Exec(it.cmd, "")
	case it.picker != 0:
		return m.OpenPicker(it.picker)
	case it.dialog == linkDialogKind:
		return m.OpenLinkDialog()
	case it.dialog == imageDialogKind:
		return m.OpenImageDialog()
	}
	return m
}

func (m Model) toolbarActive(it toolbarItem) bool {
	switch {
	case it.picker != 0:
		return m.picker != nil && m.picker.kind == it.picker
	case it.dialog == linkDialogKind:
		return m.link != nil
	case it.dialog == imageDialogKind:
		return m.image != nil
	}
	return false
}

// toolbar renders the toolbar row and its clickable items.
func (m Model) toolbar() (string, []hotspot) {
	st := m.cfg.Style
	var b lineBuilder
	for _, it := range toolbarItems {
		style := st.ToolbarItem
		if m.toolbarActive(it) {
			style = st.ToolbarActive
		}
		it := it
		b.button(style.Render(it.label), func(m Model) (Model, tea.Cmd) { return m.activate(it), nil })
	}
	bar := st.Toolbar
	if m.width > 0 {
		bar = bar.MaxWidth(m.width)
	}
	return bar.Render(b.String()), b.spots
}
