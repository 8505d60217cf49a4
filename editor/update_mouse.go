package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/surface"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if isWheel(msg) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if !m.focused {
		return m, nil
	}

	// Only handle selection/cursor changes for left button interactions.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.press(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y-toolbarRows)
		t := m.targetAt(x, y)
		m.surf.SetSelection(surface.Range{Anchor: m.mouseAnchor, Head: t.Offset})

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, nil
}

// press routes a left click to the toolbar, the document or the overlay.
func (m Model) press(x, y int) (Model, tea.Cmd) {
	if y < toolbarRows {
		_, spots := m.toolbar()
		if s, ok := hitSpot(spots, x, y); ok {
			m.imgSel = nil
			return s.act(m)
		}
		return m, nil
	}

	vy := y - toolbarRows
	if vy < m.viewport.Height {
		if x < 0 || x >= m.viewport.Width {
			return m, nil
		}
		t := m.targetAt(x, vy)
		m = m.Click(t)
		if t.Kind == surface.TargetText {
			m.mouseAnchor = t.Offset
			m.mouseDragging = true
		}
		return m, nil
	}

	_, spots := m.overlay()
	if s, ok := hitSpot(spots, x, vy-m.viewport.Height); ok {
		return s.act(m)
	}
	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		if x < 0 {
			x = 0
		}
		if x >= m.viewport.Width {
			x = m.viewport.Width - 1
		}
	}
	if m.viewport.Height > 0 {
		if y < 0 {
			y = 0
		}
		if y >= m.viewport.Height {
			y = m.viewport.Height - 1
		}
	}
	return x, y
}
