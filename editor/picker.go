package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/surface"
)

// PickerKind selects one of the toolbar popovers.
type PickerKind int

const (
	PickFont PickerKind = iota + 1
	PickSize
	PickColor
	PickBackground
)

func (k PickerKind) command() surface.Command {
	switch k {
	case PickFont:
		return surface.FontName
	case PickSize:
		return surface.FontSize
	case PickColor:
		return surface.ForeColor
	default:
		return surface.HiliteColor
	}
}

func (k PickerKind) title() string {
	switch k {
	case PickFont:
		return "Font"
	case PickSize:
		return "Size"
	case PickColor:
		return "Text color"
	default:
		return "Background"
	}
}

type picker struct {
	kind  PickerKind
	index int
}

func (m Model) pickerOptions(k PickerKind) []string {
	switch k {
	case PickFont:
		return m.cfg.Palette.Fonts
	case PickSize:
		return m.cfg.Palette.Sizes
	default:
		return m.cfg.Palette.Colors
	}
}

// OpenPicker shows the font, size or color popover. Picking an option
// applies it to the current selection.
func (m Model) OpenPicker(k PickerKind) Model {
	if m.closed {
		return m
	}
	m = m.closeOverlays()
	m.picker = &picker{kind: k}
	m.refresh()
	return m
}

// Pick applies option i of the open picker and closes it.
func (m Model) Pick(i int) Model {
	if m.picker == nil {
		return m
	}
	opts := m.pickerOptions(m.picker.kind)
	cmd := m.picker.kind.command()
	m.picker = nil
	if i < 0 || i >= len(opts) {
		m.refresh()
		return m
	}
	return m.Exec(cmd, opts[i])
}

func (m Model) updatePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	n := len(m.pickerOptions(m.picker.kind))
	switch {
	case key.Matches(msg, km.Dismiss):
		m.picker = nil
	case key.Matches(msg, km.Confirm):
		return m.Pick(m.picker.index), nil
	case key.Matches(msg, km.Left), key.Matches(msg, km.Up), key.Matches(msg, km.Prev):
		if n > 0 {
			m.picker.index = (m.picker.index - 1 + n) % n
		}
	case key.Matches(msg, km.Right), key.Matches(msg, km.Down), key.Matches(msg, km.Next):
		if n > 0 {
			m.picker.index = (m.picker.index + 1) % n
		}
	}
	return m, nil
}

func (m Model) pickerView() ([]string, []hotspot) {
	st := m.cfg.Style
	k := m.picker.kind
	title := st.Label.Render(k.title() + "  (←/→ choose, enter apply, esc close)")

	b := lineBuilder{row: 1}
	for i, opt := range m.pickerOptions(k) {
		if i > 0 {
			b.text(" ")
		}
		focused := i == m.picker.index
		label := opt
		style := st.Text
		switch k {
		case PickColor, PickBackground:
			label = " A "
			if focused {
				label = "[A]"
			}
			style = swatchStyle(opt)
		case PickSize:
			label = opt + " " + sizeNames[opt]
		}
		if focused && k != PickColor && k != PickBackground {
			style = st.Focused
		}
		i := i
		b.button(style.Render(label), func(m Model) (Model, tea.Cmd) { return m.Pick(i), nil })
	}
	return []string{title, b.String()}, b.spots
}
