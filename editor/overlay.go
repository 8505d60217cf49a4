package editor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// hotspot is a clickable cell range on one overlay row.
type hotspot struct {
	row    int
	x0, x1 int
	act    func(Model) (Model, tea.Cmd)
}

func hitSpot(spots []hotspot, x, row int) (hotspot, bool) {
	for _, s := range spots {
		if s.row == row && x >= s.x0 && x < s.x1 {
			return s, true
		}
	}
	return hotspot{}, false
}

// lineBuilder assembles one row while tracking clickable ranges.
type lineBuilder struct {
	sb    strings.Builder
	x     int
	row   int
	spots []hotspot
}

func (b *lineBuilder) text(s string) {
	b.sb.WriteString(s)
	b.x += lipgloss.Width(s)
}

func (b *lineBuilder) button(s string, act func(Model) (Model, tea.Cmd)) {
	w := lipgloss.Width(s)
	b.spots = append(b.spots, hotspot{row: b.row, x0: b.x, x1: b.x + w, act: act})
	b.text(s)
}

func (b *lineBuilder) String() string { return b.sb.String() }

// overlay renders the active overlay, if any, as rows below the document.
func (m Model) overlay() ([]string, []hotspot) {
	switch {
	case m.closed:
		return nil, nil
	case m.link != nil:
		return m.linkView()
	case m.image != nil:
		return m.imageDialogView()
	case m.picker != nil:
		return m.pickerView()
	case m.imageSelected():
		return m.imageSettingsView()
	}
	return nil, nil
}

// closeOverlays drops dialogs and pickers; the image selection stays.
func (m Model) closeOverlays() Model {
	m.picker = nil
	m.link = nil
	m.image = nil
	return m
}

func stepper(b *lineBuilder, st Style, label string, value int, focused bool,
	dec, inc func(Model) (Model, tea.Cmd),
) {
	l := st.Label
	if focused {
		l = st.Focused
	}
	b.text(l.Render(label + " "))
	b.button("[-]", dec)
	b.text(" " + padNumber(value) + " ")
	b.button("[+]", inc)
}

// padNumber shows an unset size as a dash.
func padNumber(v int) string {
	if v <= 0 {
		return "  -"
	}
	return fmt.Sprintf("%3d", v)
}
