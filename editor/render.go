package editor

import (
	"strings"

	"github.com/iw2rmb/inkwell/surface"
)

// renderContent draws every row of the document, or the placeholder.
func (m Model) renderContent() string {
	st := m.cfg.Style
	if m.sync.placeholderVisible() {
		return st.Placeholder.Render(m.cfg.Placeholder)
	}

	sel := m.surf.Selection()
	start, end := sel.Normalize()
	caret := sel.Head
	showCaret := m.focused && start == end && !m.imageSelected()
	caretRow := m.caretRow(caret)

	var selected surface.ImageID
	if m.imageSelected() {
		selected = m.imgSel.id
	}

	var sb strings.Builder
	for i, r := range m.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(r.prefix)
		sb.WriteString(strings.Repeat(" ", r.pad))
		drawn := false
		for _, c := range r.cells {
			style := c.style
			switch {
			case !selected.IsZero() && c.image == selected:
				style = st.ImageSelected
			case c.offset >= start && c.offset < end:
				style = st.Selection.Inherit(style)
			}
			if showCaret && i == caretRow && !drawn && c.offset == caret {
				style = st.Cursor.Inherit(style)
				drawn = true
			}
			sb.WriteString(style.Render(c.text))
		}
		if showCaret && i == caretRow && !drawn {
			sb.WriteString(st.Cursor.Render(" "))
		}
	}
	return sb.String()
}
