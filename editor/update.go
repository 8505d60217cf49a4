package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/surface"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.surf.InsertText(string(msg.Runes))
		return m, nil
	}

	km := m.cfg.KeyMap
	sel := m.surf.Selection()

	switch {
	case key.Matches(msg, km.Left):
		m.moveCaret(sel, -1)
	case key.Matches(msg, km.Right):
		m.moveCaret(sel, 1)
	case key.Matches(msg, km.Up):
		m.surf.SetSelection(surface.Caret(m.verticalOffset(sel.Head, -1)))
	case key.Matches(msg, km.Down):
		m.surf.SetSelection(surface.Caret(m.verticalOffset(sel.Head, 1)))

	case key.Matches(msg, km.ShiftLeft):
		m.surf.SetSelection(surface.Range{Anchor: sel.Anchor, Head: sel.Head - 1})
	case key.Matches(msg, km.ShiftRight):
		m.surf.SetSelection(surface.Range{Anchor: sel.Anchor, Head: sel.Head + 1})
	case key.Matches(msg, km.ShiftUp):
		m.surf.SetSelection(surface.Range{Anchor: sel.Anchor, Head: m.verticalOffset(sel.Head, -1)})
	case key.Matches(msg, km.ShiftDown):
		m.surf.SetSelection(surface.Range{Anchor: sel.Anchor, Head: m.verticalOffset(sel.Head, 1)})

	case key.Matches(msg, km.Home):
		r := m.rows[m.caretRow(sel.Head)]
		m.surf.SetSelection(surface.Caret(r.start))
	case key.Matches(msg, km.End):
		r := m.rows[m.caretRow(sel.Head)]
		m.surf.SetSelection(surface.Caret(r.end))
	case key.Matches(msg, km.SelectAll):
		m.surf.SetSelection(surface.Range{Anchor: 0, Head: m.surf.Len()})

	case key.Matches(msg, km.Backspace):
		m.surf.DeleteBackward()
	case key.Matches(msg, km.Delete):
		m.surf.DeleteForward()
	case key.Matches(msg, km.Enter):
		m.surf.SplitBlock()

	case key.Matches(msg, km.Undo):
		return m.Exec(surface.Undo, ""), nil
	case key.Matches(msg, km.Redo):
		return m.Exec(surface.Redo, ""), nil

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.cutSelection()
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	case key.Matches(msg, km.Bold):
		return m.Exec(surface.Bold, ""), nil
	case key.Matches(msg, km.Italic):
		return m.Exec(surface.Italic, ""), nil
	case key.Matches(msg, km.Underline):
		return m.Exec(surface.Underline, ""), nil
	case key.Matches(msg, km.Strike):
		return m.Exec(surface.StrikeThrough, ""), nil
	case key.Matches(msg, km.InsertLink):
		return m.OpenLinkDialog(), nil
	case key.Matches(msg, km.InsertImage):
		return m.OpenImageDialog(), nil

	default:
		switch msg.Type {
		case tea.KeyTab:
			return m.Exec(surface.Indent, ""), nil
		case tea.KeyShiftTab:
			return m.Exec(surface.Outdent, ""), nil
		case tea.KeySpace:
			m.surf.InsertText(" ")
		case tea.KeyRunes:
			if len(msg.Runes) > 0 && !msg.Alt {
				m.surf.InsertText(string(msg.Runes))
			}
		}
	}

	return m, nil
}

// moveCaret collapses a selection toward dir, or steps the caret by one.
func (m Model) moveCaret(sel surface.Range, dir int) {
	if !sel.Collapsed() {
		start, end := sel.Normalize()
		if dir < 0 {
			m.surf.SetSelection(surface.Caret(start))
		} else {
			m.surf.SetSelection(surface.Caret(end))
		}
		return
	}
	m.surf.SetSelection(surface.Caret(sel.Head + dir))
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.surf.SelectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Debug().Err(err).Msg("clipboard write failed")
	}
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.surf.SelectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Debug().Err(err).Msg("clipboard write failed")
		return
	}
	m.surf.DeleteBackward()
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.log.Debug().Err(err).Msg("clipboard read failed")
		return
	}
	if s != "" {
		m.surf.InsertText(s)
	}
}
